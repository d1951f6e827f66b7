package golden_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tsawler/golden"
	"github.com/tsawler/golden/mask"
	"github.com/tsawler/golden/model"
)

func frag(order int, text string, left, top float64) model.TextFragment {
	return model.TextFragment{
		Text:         text,
		BBox:         model.NewBBox(left, top, left+200, top+12),
		FontName:     "Helvetica",
		FontSize:     10,
		ReadingOrder: order,
	}
}

func page(frags ...model.TextFragment) []model.PageFragments {
	return []model.PageFragments{{PageIndex: 0, Width: 612, Height: 792, Fragments: frags}}
}

func Example_compare() {
	g := page(
		frag(0, "Invoice", 72, 50),
		frag(1, "Total: 100", 72, 80),
	)
	t := page(
		frag(0, "Invoice", 72, 50),
		frag(1, "Total: 120", 72, 80),
	)

	result, err := golden.Compare(g, t).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Status())
	for _, d := range result.Diffs() {
		before, after := d.Texts()
		fmt.Printf("page %d: %s %q -> %q\n", d.PageIndex+1, d.Kind, before, after)
	}
	// Output:
	// fail
	// page 1: text_changed "Total: 100" -> "Total: 120"
}

func Example_masking() {
	g := page(
		frag(0, "Certificate of Insurance", 72, 50),
		frag(1, "Policy Number: AB12345", 72, 80),
	)
	t := page(
		frag(0, "Certificate of Insurance", 72, 50),
		frag(1, "Policy Number: ZZ99999", 72, 80),
	)

	detector := golden.Must(mask.NewHeuristic())
	result := golden.Compare(g, t).
		WithDetector(detector).
		MustRun(context.Background())

	fmt.Println(result.Status())
	// Output:
	// pass
}

func Example_pageRange() {
	g := page(frag(0, "Invoice", 72, 50))

	_, err := golden.Compare(g, g).PageRange(0, 4).Run(context.Background())

	var rangeErr *golden.PageRangeError
	if errors.As(err, &rangeErr) {
		fmt.Println(rangeErr.GoldenPages, rangeErr.TargetPages)
	}
	fmt.Println(errors.Is(err, golden.ErrPageRangeOutOfBounds))
	// Output:
	// 1 1
	// true
}
