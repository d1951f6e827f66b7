// Package report renders comparison results as text tables, HTML or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tsawler/golden/model"
)

// Named pairs a result with the documents it compared
type Named struct {
	Golden string
	Target string
	Result *model.ComparisonResult
}

var (
	passColor       = color.New(color.FgGreen, color.Bold)
	failColor       = color.New(color.FgRed, color.Bold)
	incompleteColor = color.New(color.FgYellow, color.Bold)
)

// Status returns the upper-case status of a result, coloured when colour
// output is enabled
func Status(r *model.ComparisonResult) string {
	s := r.Status()
	label := strings.ToUpper(s)
	switch s {
	case "pass":
		return passColor.Sprint(label)
	case "fail":
		return failColor.Sprint(label)
	default:
		return incompleteColor.Sprint(label)
	}
}

func kindHeader() table.Row {
	row := table.Row{}
	for _, k := range model.DiffKinds {
		row = append(row, k.Label())
	}
	return row
}

func kindCounts(counts map[model.DiffKind]int) table.Row {
	row := table.Row{}
	for _, k := range model.DiffKinds {
		row = append(row, counts[k])
	}
	return row
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func render(w io.Writer, t table.Writer) error {
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Summary writes one row per compared pair
func Summary(w io.Writer, results ...Named) error {
	t := newTable()
	header := table.Row{"Golden", "Target", "Status", "Pages"}
	t.AppendHeader(append(header, kindHeader()...))

	for _, n := range results {
		row := table.Row{n.Golden, n.Target, Status(n.Result), len(n.Result.Pages)}
		t.AppendRow(append(row, kindCounts(n.Result.Totals)...))
	}
	return render(w, t)
}

// Pages writes one row per compared page
func Pages(w io.Writer, r *model.ComparisonResult) error {
	t := newTable()
	header := table.Row{"Page"}
	header = append(header, kindHeader()...)
	t.AppendHeader(append(header, "Status"))

	for _, p := range r.Pages {
		status := passColor.Sprint("PASS")
		if p.HasDifferences() {
			status = failColor.Sprint("FAIL")
		}
		row := table.Row{p.PageIndex + 1}
		row = append(row, kindCounts(p.Counts)...)
		t.AppendRow(append(row, status))
	}
	return render(w, t)
}

// Details writes one row per diff, followed by any warnings
func Details(w io.Writer, r *model.ComparisonResult) error {
	t := newTable()
	t.AppendHeader(table.Row{"Page", "Kind", "Severity", "Box", "Detail"})

	for _, d := range r.Diffs() {
		box := "-"
		if b, ok := d.Box(); ok {
			box = b.String()
		}
		t.AppendRow(table.Row{d.PageIndex + 1, d.Kind.Label(), fmt.Sprintf("%.2f", d.Severity), box, d.Detail})
	}
	if err := render(w, t); err != nil {
		return err
	}

	if len(r.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "Warnings:\n%s\n", model.FormatWarnings(r.Warnings)); err != nil {
			return err
		}
	}
	return nil
}

// Text writes the summary followed by page and diff tables for each pair
func Text(w io.Writer, results ...Named) error {
	if err := Summary(w, results...); err != nil {
		return err
	}
	for _, n := range results {
		if _, err := fmt.Fprintf(w, "\n%s -> %s\n", n.Golden, n.Target); err != nil {
			return err
		}
		if err := Pages(w, n.Result); err != nil {
			return err
		}
		if n.Result.HasDifferences() || len(n.Result.Warnings) > 0 {
			if err := Details(w, n.Result); err != nil {
				return err
			}
		}
	}
	return nil
}
