package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/tsawler/golden/model"
)

// ErrUnsupportedFormat is returned for inputs that are neither PDF nor a
// fragment file
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrInvalidDocument is returned when a fragment file fails validation
var ErrInvalidDocument = errors.New("invalid fragment document")

// Document is a named set of extracted pages
type Document struct {
	Name   string
	Format Format
	Pages  []model.PageFragments
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FragmentCount returns the number of fragments across all pages
func (d *Document) FragmentCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Fragments)
	}
	return n
}

// fragment file schema

type fileDocument struct {
	Pages []filePage `yaml:"pages"`
}

type filePage struct {
	Index     *int           `yaml:"index,omitempty"`
	Width     float64        `yaml:"width,omitempty"`
	Height    float64        `yaml:"height,omitempty"`
	Fragments []fileFragment `yaml:"fragments"`
}

type fileFragment struct {
	Text     string    `yaml:"text"`
	BBox     []float64 `yaml:"bbox,flow"`
	Font     string    `yaml:"font,omitempty"`
	Size     float64   `yaml:"size,omitempty"`
	Flags    []string  `yaml:"flags,omitempty,flow"`
	Order    *int      `yaml:"order,omitempty"`
	Variable bool      `yaml:"variable,omitempty"`
}

// LoadFile reads a PDF or fragment file, choosing the loader from the
// content and extension.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	format := DetectFormat(path, head[:n])

	var doc *Document
	switch format {
	case PDF:
		doc, err = ExtractPDF(path)
	case YAML, JSON:
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		doc, err = Load(f, format)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Name = filepath.Base(path)
	return doc, nil
}

// Load decodes a fragment file. Both YAML and JSON are accepted for either
// format value since JSON is valid YAML.
func Load(r io.Reader, format Format) (*Document, error) {
	if format != YAML && format != JSON {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var fd fileDocument
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	pages, err := fd.toPages()
	if err != nil {
		return nil, err
	}
	return &Document{Format: format, Pages: pages}, nil
}

// toPages converts and validates the decoded file. Missing page indices
// default to the page position and missing reading orders to the fragment
// position.
func (fd fileDocument) toPages() ([]model.PageFragments, error) {
	pages := make([]model.PageFragments, len(fd.Pages))
	for i, fp := range fd.Pages {
		index := i
		if fp.Index != nil {
			index = *fp.Index
		}
		if fp.Width < 0 || fp.Height < 0 {
			return nil, fmt.Errorf("%w: page %d has negative dimensions", ErrInvalidDocument, index)
		}

		page := model.PageFragments{
			PageIndex: index,
			Width:     fp.Width,
			Height:    fp.Height,
			Fragments: make([]model.TextFragment, len(fp.Fragments)),
		}
		for j, ff := range fp.Fragments {
			if len(ff.BBox) != 4 {
				return nil, fmt.Errorf("%w: page %d fragment %d: bbox needs 4 values, got %d",
					ErrInvalidDocument, index, j, len(ff.BBox))
			}
			order := j
			if ff.Order != nil {
				order = *ff.Order
			}
			page.Fragments[j] = model.TextFragment{
				PageIndex:    index,
				Text:         ff.Text,
				BBox:         model.NewBBox(ff.BBox[0], ff.BBox[1], ff.BBox[2], ff.BBox[3]),
				FontName:     ff.Font,
				FontSize:     ff.Size,
				FontFlags:    model.ParseFontFlags(ff.Flags...),
				ReadingOrder: order,
				IsVariable:   ff.Variable,
			}
		}
		pages[i] = page
	}
	return pages, nil
}

// Encode writes pages as a YAML fragment file that Load reads back.
func Encode(w io.Writer, pages []model.PageFragments) error {
	fd := fileDocument{Pages: make([]filePage, len(pages))}
	for i, p := range pages {
		index := p.PageIndex
		fp := filePage{
			Index:     &index,
			Width:     p.Width,
			Height:    p.Height,
			Fragments: make([]fileFragment, len(p.Fragments)),
		}
		for j, f := range p.Fragments {
			order := f.ReadingOrder
			fp.Fragments[j] = fileFragment{
				Text:     f.Text,
				BBox:     []float64{f.BBox.Left, f.BBox.Top, f.BBox.Right, f.BBox.Bottom},
				Font:     f.FontName,
				Size:     f.FontSize,
				Flags:    f.FontFlags.Names(),
				Order:    &order,
				Variable: f.IsVariable,
			}
		}
		fd.Pages[i] = fp
	}

	data, err := yaml.Marshal(fd)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}
