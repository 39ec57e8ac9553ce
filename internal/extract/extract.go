package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ref-stats/internal/htmltext"
	"github.com/pfrederiksen/ref-stats/internal/referee"
)

// Document-level extraction failures. The batch runner matches on these to
// log which precondition a file failed before skipping it.
var (
	ErrMissingID    = errors.New("no referee id (referee.php?r=...) in document")
	ErrMissingName  = errors.New("no referee name in first <h5> heading")
	ErrMissingTable = errors.New("no ratings-table body in document")
)

// minGameCells is the smallest row that can carry a game: the matchup lives
// in the 4th cell and the location in the 5th.
const minGameCells = 5

var (
	refereeIDPattern = regexp.MustCompile(`referee\.php\?r=(\d+)`)
	gameDatePattern  = regexp.MustCompile(`fanmatch\.php\?d=(\d{4}-\d{2}-\d{2})`)
	leadingRank      = regexp.MustCompile(`^\d+\s+`)
)

// Document parses one referee page into a Referee record with an unsorted
// game list and empty derived statistics. Document-level failures return one
// of the sentinel errors above; malformed rows are skipped silently.
func Document(contents string) (*referee.Referee, error) {
	id, ok := refereeID(contents)
	if !ok {
		return nil, ErrMissingID
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		return nil, err
	}

	name, ok := refereeName(doc)
	if !ok {
		return nil, ErrMissingName
	}

	body := doc.Find("table#ratings-table tbody").First()
	if body.Length() == 0 {
		return nil, ErrMissingTable
	}

	games := make([]referee.Game, 0)
	body.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if game, ok := gameRow(row); ok {
			games = append(games, game)
		}
	})

	return referee.New(id, name, games), nil
}

// refereeID finds the first referee.php?r=<digits> token anywhere in the
// raw document.
func refereeID(contents string) (string, bool) {
	match := refereeIDPattern.FindStringSubmatch(contents)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// refereeName takes the first <h5> heading, normalizes it, and strips a
// leading rank number (some headings are prefixed with the referee's rank).
func refereeName(doc *goquery.Document) (string, bool) {
	heading := doc.Find("h5").First()
	if heading.Length() == 0 {
		return "", false
	}

	name := htmltext.Normalize(heading.Text())
	name = leadingRank.ReplaceAllString(name, "")
	if name == "" {
		return "", false
	}
	return name, true
}

// gameRow parses one table row into a Game. Rows that don't look like games
// (header rows, spacer rows, rows without a date link or two team links) are
// reported as not-a-game rather than an error.
func gameRow(row *goquery.Selection) (referee.Game, bool) {
	cells := row.Find("td")
	if cells.Length() < minGameCells {
		return referee.Game{}, false
	}

	date, ok := gameDate(row)
	if !ok {
		return referee.Game{}, false
	}

	home, away, ok := matchupTeams(cells.Eq(3))
	if !ok {
		return referee.Game{}, false
	}

	return referee.Game{
		Date:     date,
		Location: htmltext.Normalize(cells.Eq(4).Text()),
		HomeTeam: referee.Team{Name: home},
		AwayTeam: referee.Team{Name: away},
	}, true
}

// gameDate finds a fanmatch.php?d=YYYY-MM-DD token in any link in the row.
func gameDate(row *goquery.Selection) (string, bool) {
	date := ""
	row.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, exists := link.Attr("href")
		if !exists {
			return true
		}
		if match := gameDatePattern.FindStringSubmatch(href); match != nil {
			date = match[1]
			return false
		}
		return true
	})
	return date, date != ""
}

// matchupTeams pulls the home and away team names from the matchup cell.
// Team links carry a team=<id> query parameter; the first link is the home
// team and the second the away team.
func matchupTeams(cell *goquery.Selection) (home, away string, ok bool) {
	names := make([]string, 0, 2)
	cell.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists || !strings.Contains(href, "team.php?team=") {
			return
		}
		names = append(names, htmltext.Normalize(link.Text()))
	})

	if len(names) < 2 {
		return "", "", false
	}
	return names[0], names[1], true
}
