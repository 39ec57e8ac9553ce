package cli

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/ref-stats/internal/referee"
)

// writeSummary prints a human-readable per-referee recap, used with
// --verbose. The JSON snapshot is the machine-readable output; this is for
// the operator watching the run.
func writeSummary(w io.Writer, refs []*referee.Referee) {
	for _, ref := range refs {
		fmt.Fprintf(w, "%s (%s): %d games, %d miles, %d-day streak\n",
			ref.Name, ref.ID, len(ref.Games), ref.TotalMilesTravelled, ref.DaysWorkedStreak)
		for _, team := range ref.MostCommonTeams {
			fmt.Fprintf(w, "    %s x%d\n", team.Name, team.Count)
		}
	}
	fmt.Fprintf(w, "Total: %d referees\n", len(refs))
}
