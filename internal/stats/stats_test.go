package stats

import (
	"math"
	"testing"

	"github.com/pfrederiksen/ref-stats/internal/referee"
)

func located(date string, lat, lon float64) referee.Game {
	return referee.Game{Date: date, Coordinates: &referee.Coordinates{Lat: lat, Lon: lon}}
}

func TestHaversine(t *testing.T) {
	a := referee.Coordinates{Lat: 40.0, Lon: -75.0}
	b := referee.Coordinates{Lat: 41.0, Lon: -74.0}

	if d := Haversine(a, a); d != 0 {
		t.Errorf("distance to self = %f, expected 0", d)
	}

	ab := Haversine(a, b)
	ba := Haversine(b, a)
	if ab != ba {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("expected positive distance, got %f", ab)
	}

	// Philadelphia to Lawrence is a bit over 1000 miles.
	philly := referee.Coordinates{Lat: 39.9526, Lon: -75.1652}
	lawrence := referee.Coordinates{Lat: 38.9717, Lon: -95.2353}
	if d := Haversine(philly, lawrence); math.Abs(d-1070.5) > 1 {
		t.Errorf("Philadelphia-Lawrence = %f miles, expected ~1070.5", d)
	}
}

func TestTotalMiles(t *testing.T) {
	t.Run("zero or one game", func(t *testing.T) {
		if got := TotalMiles(nil); got != 0 {
			t.Errorf("no games: got %d, expected 0", got)
		}
		if got := TotalMiles([]referee.Game{located("2024-01-01", 40, -75)}); got != 0 {
			t.Errorf("one game: got %d, expected 0", got)
		}
	})

	t.Run("single hop", func(t *testing.T) {
		games := []referee.Game{
			located("2024-01-01", 40.0, -75.0),
			located("2024-01-03", 41.0, -74.0),
		}
		got := TotalMiles(games)
		want := int(math.Round(Haversine(
			referee.Coordinates{Lat: 40.0, Lon: -75.0},
			referee.Coordinates{Lat: 41.0, Lon: -74.0},
		)))
		if got != want || got == 0 {
			t.Errorf("got %d, expected %d (nonzero)", got, want)
		}
	})

	t.Run("input order does not matter", func(t *testing.T) {
		forward := []referee.Game{
			located("2024-01-01", 40.0, -75.0),
			located("2024-01-02", 41.0, -74.0),
			located("2024-01-03", 39.0, -76.0),
		}
		shuffled := []referee.Game{forward[2], forward[0], forward[1]}
		if TotalMiles(forward) != TotalMiles(shuffled) {
			t.Errorf("reordering input changed total: %d vs %d", TotalMiles(forward), TotalMiles(shuffled))
		}
	})

	t.Run("does not mutate input order", func(t *testing.T) {
		games := []referee.Game{
			located("2024-01-03", 39.0, -76.0),
			located("2024-01-01", 40.0, -75.0),
		}
		TotalMiles(games)
		if games[0].Date != "2024-01-03" || games[1].Date != "2024-01-01" {
			t.Errorf("input slice was reordered: %+v", games)
		}
	})

	t.Run("same-day doubleheader at same venue adds nothing", func(t *testing.T) {
		games := []referee.Game{
			located("2024-01-01", 40.0, -75.0),
			located("2024-01-01", 40.0, -75.0),
		}
		if got := TotalMiles(games); got != 0 {
			t.Errorf("got %d, expected 0", got)
		}
	})
}

func matchup(home, away string) referee.Game {
	return referee.Game{HomeTeam: referee.Team{Name: home}, AwayTeam: referee.Team{Name: away}}
}

func TestMostCommonTeams(t *testing.T) {
	t.Run("ranked by count", func(t *testing.T) {
		games := []referee.Game{
			matchup("Lakers", "Celtics"),
			matchup("Lakers", "Bulls"),
			matchup("Celtics", "Lakers"),
		}
		got := MostCommonTeams(games, TopTeams)
		want := []referee.TeamCount{{Name: "Lakers", Count: 3}, {Name: "Celtics", Count: 2}, {Name: "Bulls", Count: 1}}
		if len(got) != len(want) {
			t.Fatalf("got %+v, expected %+v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("rank %d = %+v, expected %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("ties break by first appearance", func(t *testing.T) {
		games := []referee.Game{
			matchup("Hoyas", "Wildcats"),
			matchup("Wildcats", "Hoyas"),
			matchup("Tigers", "Bears"),
		}
		got := MostCommonTeams(games, TopTeams)
		want := []referee.TeamCount{{Name: "Hoyas", Count: 2}, {Name: "Wildcats", Count: 2}, {Name: "Tigers", Count: 1}}
		for i := range want {
			if i >= len(got) || got[i] != want[i] {
				t.Fatalf("got %+v, expected %+v", got, want)
			}
		}
	})

	t.Run("fewer distinct teams than topN", func(t *testing.T) {
		got := MostCommonTeams([]referee.Game{matchup("Lakers", "Celtics")}, TopTeams)
		if len(got) != 2 {
			t.Errorf("expected 2 entries, got %+v", got)
		}
	})

	t.Run("empty names are absent", func(t *testing.T) {
		got := MostCommonTeams([]referee.Game{matchup("", "Celtics"), matchup("Celtics", "")}, TopTeams)
		if len(got) != 1 || got[0] != (referee.TeamCount{Name: "Celtics", Count: 2}) {
			t.Errorf("got %+v, expected only Celtics x2", got)
		}
	})

	t.Run("no games", func(t *testing.T) {
		if got := MostCommonTeams(nil, TopTeams); len(got) != 0 {
			t.Errorf("expected empty ranking, got %+v", got)
		}
	})
}

func TestDaysWorkedStreak(t *testing.T) {
	dated := func(dates ...string) []referee.Game {
		games := make([]referee.Game, len(dates))
		for i, d := range dates {
			games[i] = referee.Game{Date: d}
		}
		return games
	}

	tests := []struct {
		name     string
		games    []referee.Game
		expected int
	}{
		{"empty", nil, 0},
		{"single date", dated("2024-01-01"), 1},
		{"run of three with gap", dated("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"), 3},
		{"duplicates collapse", dated("2024-01-01", "2024-01-01", "2024-01-02"), 2},
		{"unsorted input", dated("2024-01-03", "2024-01-01", "2024-01-02"), 3},
		{"gap resets", dated("2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05", "2024-01-06"), 3},
		{"month boundary", dated("2024-01-31", "2024-02-01"), 2},
		{"unparseable dates ignored", dated("not-a-date", "2024-01-01"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysWorkedStreak(tt.games); got != tt.expected {
				t.Errorf("got %d, expected %d", got, tt.expected)
			}
		})
	}
}
