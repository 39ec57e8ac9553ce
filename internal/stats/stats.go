// Package stats derives travel and workload statistics from a referee's
// game list. All functions are pure: they read the games slice, never
// reorder or mutate it, and depend only on their inputs.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/pfrederiksen/ref-stats/internal/referee"
)

// earthRadiusMiles is the mean Earth radius used for great-circle distances.
const earthRadiusMiles = 3958.8

// TopTeams is how many opposing teams the most-common-teams ranking keeps.
const TopTeams = 3

// Haversine returns the great-circle distance in miles between two points.
func Haversine(a, b referee.Coordinates) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	deltaLat := radians(b.Lat - a.Lat)
	deltaLon := radians(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// TotalMiles sums the distances between consecutive games in date order,
// rounded to the nearest mile. The input order is irrelevant (a copy is
// sorted; ties keep their relative order) and is never mutated. Referees
// with fewer than two located games travel zero miles.
func TotalMiles(games []referee.Game) int {
	ordered := make([]referee.Game, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	total := 0.0
	var previous *referee.Coordinates
	for i := range ordered {
		current := ordered[i].Coordinates
		if current == nil {
			continue
		}
		if previous != nil {
			total += Haversine(*previous, *current)
		}
		previous = current
	}
	return int(math.Round(total))
}

// MostCommonTeams counts how often each team name appears across both home
// and away roles and returns the topN by descending count. Ties rank by
// first appearance in the given (unsorted) game list; empty names are
// ignored. Fewer than topN distinct teams yields a shorter list.
func MostCommonTeams(games []referee.Game, topN int) []referee.TeamCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	tally := func(name string) {
		if name == "" {
			return
		}
		if _, seen := counts[name]; !seen {
			firstSeen[name] = order
			order++
		}
		counts[name]++
	}

	for _, game := range games {
		tally(game.HomeTeam.Name)
		tally(game.AwayTeam.Name)
	}

	ranked := make([]referee.TeamCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, referee.TeamCount{Name: name, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Name] < firstSeen[ranked[j].Name]
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// DaysWorkedStreak returns the longest run of consecutive calendar days on
// which the referee worked at least one game. Duplicate dates collapse;
// unparseable dates are ignored; no games yields 0.
func DaysWorkedStreak(games []referee.Game) int {
	unique := make(map[time.Time]struct{})
	for _, game := range games {
		day := referee.ParseDate(game.Date)
		if day.IsZero() {
			continue
		}
		unique[day] = struct{}{}
	}

	days := make([]time.Time, 0, len(unique))
	for day := range unique {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	if len(days) == 0 {
		return 0
	}

	maxStreak := 1
	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 1
		}
	}
	return maxStreak
}
