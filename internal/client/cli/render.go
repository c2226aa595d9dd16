package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/client/tracking"
)

const dateLayout = "2006-01-02"

func renderChecklist(w io.Writer, groups []tracking.Group) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderGroup(w, g)
	}
}

func renderGroup(w io.Writer, g tracking.Group) {
	done := 0
	for _, r := range g.Records {
		if r.Completed() {
			done++
		}
	}
	fmt.Fprintf(w, "%s [%s] %d/%d\n", g.Label, g.ID, done, len(g.Records))

	for _, r := range g.Records {
		mark := " "
		if r.Completed() {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %-14s %s", mark, r.ID, r.Title)
		if r.OccurredAt != nil {
			line += "  (" + r.OccurredAt.Format(dateLayout) + ")"
		}
		fmt.Fprintln(w, line)

		if md := r.Metadata; md != (tracking.Metadata{}) {
			if md.AdministeredBy != "" || md.AdministeredAt != "" {
				fmt.Fprintf(w, "        by %s at %s\n", orDash(md.AdministeredBy), orDash(md.AdministeredAt))
			}
			if md.Notes != "" {
				fmt.Fprintf(w, "        note: %s\n", md.Notes)
			}
		}
	}
}

func renderGrowth(w io.Writer, records []models.GrowthRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No growth records yet. Type 'addgrowth' to add one.")
		return
	}

	fmt.Fprintf(w, "%-10s  %7s  %7s  %7s  %s\n", "DATE", "HEIGHT", "WEIGHT", "HEAD", "NOTES")
	for _, r := range records {
		line := fmt.Sprintf("%-10s  %7.1f  %7.2f  %7.1f  %s",
			r.MeasuredAt.Format(dateLayout), r.Height, r.Weight, r.HeadSize, r.Notes)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
