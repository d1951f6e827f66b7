package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/golden/annotate"
	"github.com/tsawler/golden/model"
)

const stylesheet = `
body { font-family: sans-serif; margin: 2em; color: #1f2937; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #d1d5db; padding: 4px 8px; text-align: left; }
.status { font-weight: bold; }
.status-pass { color: #16a34a; }
.status-fail { color: #dc2626; }
.status-incomplete { color: #ca8a04; }
.tag { display: inline-block; color: #fff; border-radius: 3px; padding: 0 6px; margin-right: 6px; }
.warning { color: #92400e; }
`

// HTML writes a standalone HTML report covering every result
func HTML(w io.Writer, title string, results ...Named) error {
	palette := annotate.DefaultPalette()

	body := el(atom.Body)
	body.AppendChild(textEl(atom.H1, title))
	body.AppendChild(summaryTable(results))

	for i, n := range results {
		body.AppendChild(resultSection(i, n, palette))
	}

	head := el(atom.Head)
	head.AppendChild(el(atom.Meta, "charset", "utf-8"))
	head.AppendChild(textEl(atom.Title, title))
	head.AppendChild(textEl(atom.Style, stylesheet))

	root := el(atom.Html, "lang", "en")
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return html.Render(w, doc)
}

func summaryTable(results []Named) *html.Node {
	t := el(atom.Table, "class", "summary")
	header := []string{"Golden", "Target", "Status", "Pages"}
	for _, k := range model.DiffKinds {
		header = append(header, k.Label())
	}
	t.AppendChild(row(atom.Th, header...))

	for i, n := range results {
		tr := el(atom.Tr)
		tr.AppendChild(textEl(atom.Td, n.Golden))
		link := el(atom.A, "href", fmt.Sprintf("#result-%d", i))
		link.AppendChild(text(n.Target))
		td := el(atom.Td)
		td.AppendChild(link)
		tr.AppendChild(td)
		tr.AppendChild(statusCell(n.Result.Status()))
		tr.AppendChild(textEl(atom.Td, fmt.Sprint(len(n.Result.Pages))))
		for _, k := range model.DiffKinds {
			tr.AppendChild(textEl(atom.Td, fmt.Sprint(n.Result.Totals[k])))
		}
		t.AppendChild(tr)
	}
	return t
}

func resultSection(i int, n Named, palette annotate.Palette) *html.Node {
	sec := el(atom.Section, "id", fmt.Sprintf("result-%d", i))
	sec.AppendChild(textEl(atom.H2, n.Golden+" → "+n.Target))

	r := n.Result
	if len(r.Warnings) > 0 {
		ul := el(atom.Ul, "class", "warnings")
		for _, w := range r.Warnings {
			ul.AppendChild(textEl(atom.Li, w.String(), "class", "warning"))
		}
		sec.AppendChild(ul)
	}

	if !r.HasDifferences() {
		sec.AppendChild(textEl(atom.P, "No differences detected."))
		return sec
	}

	for _, p := range r.Pages {
		if !p.HasDifferences() {
			continue
		}
		sec.AppendChild(textEl(atom.H3, fmt.Sprintf("Page %d", p.PageIndex+1)))
		t := el(atom.Table, "class", "diffs")
		t.AppendChild(row(atom.Th, "Kind", "Severity", "Golden", "Target", "Detail"))
		for _, d := range p.Diffs {
			g, tg := d.Texts()
			tr := el(atom.Tr)
			kind := el(atom.Td)
			kind.AppendChild(textEl(atom.Span, d.Kind.Label(),
				"class", "tag", "style", "background:"+palette.Hex(d.Kind)))
			tr.AppendChild(kind)
			tr.AppendChild(textEl(atom.Td, fmt.Sprintf("%.2f", d.Severity)))
			tr.AppendChild(textEl(atom.Td, g))
			tr.AppendChild(textEl(atom.Td, tg))
			tr.AppendChild(textEl(atom.Td, d.Detail))
			t.AppendChild(tr)
		}
		sec.AppendChild(t)
	}
	return sec
}

func statusCell(status string) *html.Node {
	return textEl(atom.Td, strings.ToUpper(status), "class", "status status-"+status)
}

// el creates an element with attributes given as key, value pairs
func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func textEl(a atom.Atom, s string, attrs ...string) *html.Node {
	n := el(a, attrs...)
	n.AppendChild(text(s))
	return n
}

func row(cell atom.Atom, values ...string) *html.Node {
	tr := el(atom.Tr)
	for _, v := range values {
		tr.AppendChild(textEl(cell, v))
	}
	return tr
}
