package referee

import "time"

// DateLayout is the calendar-date format used throughout the pipeline.
const DateLayout = "2006-01-02"

// ParseDate parses a game's ISO calendar date into a UTC midnight time.Time.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(date string) time.Time {
	if date == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}
