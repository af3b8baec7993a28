package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/mattn/go-runewidth"
)

// MaxCellWidth truncates long cells in tabular output.
const MaxCellWidth = 32

// Truncate shortens s to width terminal cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// RenderView prints one page of a screen with its totals row.
func RenderView(w io.Writer, v screen.View) error {
	summary := fmt.Sprintf("page %d/%d · %d of %d records", v.Page, v.TotalPages, v.VisibleCount, v.TotalCount)
	if v.SelectionCount > 0 {
		summary += fmt.Sprintf(" · %d selected", v.SelectionCount)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", FormatTitle(v.Title), SubtleStyle.Render(summary)); err != nil {
		return err
	}

	if v.VisibleCount == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No records match"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, 0, len(v.Columns)+1)
	headers = append(headers, " ")
	for _, c := range v.Columns {
		headers = append(headers, headerText(c, v.Sort))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	for i, r := range v.Records {
		marker := " "
		if v.Selected[v.Keys[i]] {
			marker = "*"
		}
		cells := make([]string, 0, len(v.Columns)+1)
		cells = append(cells, marker)
		for _, c := range v.Columns {
			cells = append(cells, Truncate(c.Display(r), MaxCellWidth))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	if row, ok := totalsRow(v); ok {
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func headerText(c model.ColumnSpec, sort *grid.SortSpec) string {
	title := strings.ToUpper(c.Title())
	if sort == nil || sort.Key != c.Key {
		return title
	}
	if sort.Direction == grid.Desc {
		return title + " ▼"
	}
	return title + " ▲"
}

func totalsRow(v screen.View) (string, bool) {
	if len(v.Totals) == 0 {
		return "", false
	}
	cells := make([]string, 0, len(v.Columns)+1)
	cells = append(cells, " ")
	for i, c := range v.Columns {
		total, ok := v.Totals[c.Key]
		switch {
		case ok:
			cells = append(cells, grid.FormatAmount(total))
		case i == 0:
			cells = append(cells, "TOTAL")
		default:
			cells = append(cells, "")
		}
	}
	return strings.Join(cells, "\t"), true
}

// RenderScreens lists screen definitions and their actions.
func RenderScreens(w io.Writer, defs []screen.Definition) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SCREEN\tDESCRIPTION\tACTIONS"); err != nil {
		return err
	}
	for _, d := range defs {
		names := make([]string, 0, len(d.Actions))
		for _, a := range d.Actions {
			name := a.Name
			if a.Destructive {
				name += "!"
			}
			names = append(names, name)
		}
		actions := strings.Join(names, ", ")
		if d.ReadOnly() {
			actions = "(read-only)"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Description, actions); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderAudit lists audit log entries.
func RenderAudit(w io.Writer, entries []model.AuditEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No actions recorded"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TIME\tSCREEN\tACTION\tUSER\tRECORDS\tRESULT\tMESSAGE"); err != nil {
		return err
	}
	for _, e := range entries {
		result := "ok"
		if !e.OK {
			result = "failed"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Screen,
			e.Action,
			e.User,
			Truncate(strings.Join(e.RecordKeys, ","), MaxCellWidth),
			result,
			Truncate(e.Message, MaxCellWidth*2)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
