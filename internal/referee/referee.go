package referee

import (
	"encoding/json"
	"fmt"
)

// Team identifies one side of a game.
type Team struct {
	Name string `json:"name"`
}

// TeamCount pairs a team name with how many times the referee saw it.
type TeamCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Coordinates is a geographic point. It serializes as a two-element
// [lat, lon] array to stay compatible with downstream consumers of the
// referee snapshot.
type Coordinates struct {
	Lat float64
	Lon float64
}

// MarshalJSON encodes the point as [lat, lon].
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

// UnmarshalJSON decodes a [lat, lon] array.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: expected [lat, lon], got %d elements", len(pair))
	}
	c.Lat = pair[0]
	c.Lon = pair[1]
	return nil
}

// Game represents one officiated event. Coordinates is nil until the
// enrichment pass resolves the location.
type Game struct {
	Date        string       `json:"date"` // ISO calendar date, YYYY-MM-DD
	Location    string       `json:"location"`
	HomeTeam    Team         `json:"homeTeam"`
	AwayTeam    Team         `json:"awayTeam"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Referee is the per-referee output record. The extractor populates ID,
// Name, and Games; the enrichment pass fills in the three derived fields.
// Games keeps document order; duplicates of (date, location) are legal
// (doubleheaders).
type Referee struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Games               []Game      `json:"games"`
	TotalMilesTravelled int         `json:"totalMilesTravelled"`
	MostCommonTeams     []TeamCount `json:"mostCommonTeams"`
	DaysWorkedStreak    int         `json:"daysWorkedStreak"`
}

// New creates a Referee with empty derived statistics.
func New(id, name string, games []Game) *Referee {
	return &Referee{
		ID:    id,
		Name:  name,
		Games: games,
	}
}
