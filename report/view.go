package report

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/tsawler/golden/model"
)

// View is a flat, serializable summary of one comparison
type View struct {
	Golden      string         `yaml:"golden" json:"golden"`
	Target      string         `yaml:"target" json:"target"`
	Status      string         `yaml:"status" json:"status"`
	GoldenPages int            `yaml:"golden_pages" json:"golden_pages"`
	TargetPages int            `yaml:"target_pages" json:"target_pages"`
	StartPage   int            `yaml:"start_page" json:"start_page"`
	EndPage     int            `yaml:"end_page" json:"end_page"`
	Totals      map[string]int `yaml:"totals" json:"totals"`
	MaxSeverity float64        `yaml:"max_severity" json:"max_severity"`
	Pages       []PageView     `yaml:"pages,omitempty" json:"pages,omitempty"`
	Warnings    []string       `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// PageView summarizes one page
type PageView struct {
	Page    int            `yaml:"page" json:"page"`
	Status  string         `yaml:"status" json:"status"`
	Matches int            `yaml:"matches" json:"matches"`
	Counts  map[string]int `yaml:"counts,omitempty" json:"counts,omitempty"`
	Diffs   []DiffView     `yaml:"diffs,omitempty" json:"diffs,omitempty"`
}

// DiffView is one diff with boxes as [left, top, right, bottom]
type DiffView struct {
	Kind       string    `yaml:"kind" json:"kind"`
	Severity   float64   `yaml:"severity" json:"severity"`
	GoldenText string    `yaml:"golden_text,omitempty" json:"golden_text,omitempty"`
	TargetText string    `yaml:"target_text,omitempty" json:"target_text,omitempty"`
	GoldenBox  []float64 `yaml:"golden_box,omitempty,flow" json:"golden_box,omitempty"`
	TargetBox  []float64 `yaml:"target_box,omitempty,flow" json:"target_box,omitempty"`
	Detail     string    `yaml:"detail,omitempty" json:"detail,omitempty"`
	PageLevel  bool      `yaml:"page_level,omitempty" json:"page_level,omitempty"`
}

// NewView flattens a named result. Page numbers are 0-based.
func NewView(n Named) View {
	r := n.Result
	v := View{
		Golden:      n.Golden,
		Target:      n.Target,
		Status:      r.Status(),
		GoldenPages: r.GoldenPageCount,
		TargetPages: r.TargetPageCount,
		StartPage:   r.StartPage,
		EndPage:     r.EndPage,
		Totals:      countsByName(r.Totals),
		MaxSeverity: r.MaxSeverity(),
	}
	for _, p := range r.Pages {
		pv := PageView{
			Page:    p.PageIndex,
			Status:  "pass",
			Matches: p.Matches,
			Counts:  countsByName(p.Counts),
		}
		if p.HasDifferences() {
			pv.Status = "fail"
		}
		for _, d := range p.Diffs {
			pv.Diffs = append(pv.Diffs, newDiffView(d))
		}
		v.Pages = append(v.Pages, pv)
	}
	for _, w := range r.Warnings {
		v.Warnings = append(v.Warnings, w.String())
	}
	return v
}

func newDiffView(d model.PageDiff) DiffView {
	g, t := d.Texts()
	return DiffView{
		Kind:       d.Kind.String(),
		Severity:   d.Severity,
		GoldenText: g,
		TargetText: t,
		GoldenBox:  boxSlice(d.GoldenBox),
		TargetBox:  boxSlice(d.TargetBox),
		Detail:     d.Detail,
		PageLevel:  d.PageLevel,
	}
}

func boxSlice(b *model.BBox) []float64 {
	if b == nil {
		return nil
	}
	return []float64{b.Left, b.Top, b.Right, b.Bottom}
}

// countsByName keys counts by kind name, keeping zero counts out
func countsByName(counts map[model.DiffKind]int) map[string]int {
	out := make(map[string]int)
	for _, k := range model.DiffKinds {
		if n := counts[k]; n > 0 {
			out[k.String()] = n
		}
	}
	return out
}

// YAML writes the results as a YAML sequence of views
func YAML(w io.Writer, results ...Named) error {
	views := make([]View, len(results))
	for i, n := range results {
		views[i] = NewView(n)
	}
	data, err := yaml.Marshal(views)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
