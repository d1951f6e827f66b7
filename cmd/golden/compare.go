package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/golden"
	"github.com/tsawler/golden/annotate"
	"github.com/tsawler/golden/config"
	"github.com/tsawler/golden/model"
	"github.com/tsawler/golden/report"
	"github.com/tsawler/golden/source"
	"github.com/tsawler/golden/store"
)

type compareOptions struct {
	pages       string
	ignoreStyle bool
	tolerance   float64
	threshold   float64
	union       bool
	strict      bool
	workers     int
	mask        bool
	patterns    []string
	format      string
	out         string
	store       string
	overlayDir  string
	scale       float64
}

func newCompareCmd(a *app) *cobra.Command {
	o := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare GOLDEN TARGET...",
		Short: "Compare one or more targets against a golden document",
		Long: `Compare one or more target documents against a golden document.

Documents are PDF files or YAML/JSON fragment files. The exit status is 1
when any target differs from the golden document.`,
		Example: `  golden compare golden.pdf generated.pdf
  golden compare golden.pdf a.pdf b.pdf --pages 1-2 --mask --format html --out report.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, o, args[0], args[1:])
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.pages, "pages", "", "pages to compare, 1-based, e.g. 2 or 1-3")
	f.BoolVar(&o.ignoreStyle, "ignore-style", false, "ignore font differences")
	f.Float64Var(&o.tolerance, "tolerance", 0, "position tolerance in points")
	f.Float64Var(&o.threshold, "threshold", 0, "text similarity threshold between 0 and 1")
	f.BoolVar(&o.union, "union", true, "compare every page of the longer document; --union=false compares shared pages only")
	f.BoolVar(&o.strict, "strict", false, "report unmatched text as missing and extra instead of changed")
	f.IntVar(&o.workers, "workers", 0, "pages compared in parallel (default GOMAXPROCS)")
	f.BoolVar(&o.mask, "mask", false, "skip variable fields such as policy numbers and dates")
	f.StringSliceVar(&o.patterns, "mask-pattern", nil, "extra regular expression for variable fields")
	f.StringVar(&o.format, "format", "", "report format: text, html or yaml")
	f.StringVarP(&o.out, "out", "o", "", "write the report to a file instead of stdout")
	f.StringVar(&o.store, "store", "", "directory of the run history database")
	f.StringVar(&o.overlayDir, "overlay-dir", "", "write PNG overlays of differing pages to this directory")
	f.Float64Var(&o.scale, "overlay-scale", 1.5, "pixels per point for overlays")

	return cmd
}

// apply overrides the loaded configuration with flags that were set
func (o *compareOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("ignore-style") {
		cfg.Comparison.IgnoreStyle = o.ignoreStyle
	}
	if f.Changed("tolerance") {
		cfg.Comparison.PositionTolerancePx = o.tolerance
	}
	if f.Changed("threshold") {
		cfg.Comparison.TextSimilarityThreshold = o.threshold
	}
	if f.Changed("union") {
		cfg.IncludeUnpairedPages = o.union
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("mask") {
		cfg.Mask.Heuristics = o.mask
	}
	if len(o.patterns) > 0 {
		cfg.Mask.Patterns = append(cfg.Mask.Patterns, o.patterns...)
	}
	if f.Changed("format") {
		cfg.Report.Format = o.format
	}
	if f.Changed("store") {
		cfg.Store.Path = o.store
	}
}

// fingerprintParams lists the run parameters that change a result besides
// the documents and thresholds
func (o *compareOptions) fingerprintParams(cfg config.Config) []string {
	return []string{
		"pages=" + o.pages,
		"union=" + strconv.FormatBool(cfg.IncludeUnpairedPages),
		"strict=" + strconv.FormatBool(o.strict),
		"mask=" + strconv.FormatBool(cfg.Mask.Heuristics),
		"patterns=" + strings.Join(cfg.Mask.Patterns, "\x00"),
	}
}

func (a *app) runCompare(cmd *cobra.Command, o *compareOptions, goldenPath string, targetPaths []string) error {
	ctx := cmd.Context()
	cfg := a.cfg
	o.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng, err := parsePages(o.pages)
	if err != nil {
		return err
	}
	detector, err := cfg.Detector()
	if err != nil {
		return err
	}

	goldenDoc, err := source.LoadFile(goldenPath)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"document":  goldenDoc.Name,
		"pages":     goldenDoc.PageCount(),
		"fragments": goldenDoc.FragmentCount(),
	}).Debug("loaded golden")

	var history *store.Store
	if cfg.Store.Path != "" {
		history, err = store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	var results []report.Named
	for _, path := range targetPaths {
		targetDoc, err := source.LoadFile(path)
		if err != nil {
			return err
		}
		log := a.log.WithField("target", targetDoc.Name)

		cmp := golden.Compare(goldenDoc.Pages, targetDoc.Pages).
			WithConfig(cfg.ClassifyConfig()).
			Logger(log)
		if rng != nil {
			cmp = cmp.PageRange(rng.Start, rng.End)
		}
		if cfg.IncludeUnpairedPages {
			cmp = cmp.IncludeUnpairedPages()
		}
		if o.strict {
			cmp = cmp.StrictAlignment()
		}
		if cfg.Workers > 0 {
			cmp = cmp.Workers(cfg.Workers)
		}
		if detector != nil {
			cmp = cmp.WithDetector(detector)
		}

		result, err := cmp.Run(ctx)
		if err != nil && !(result != nil && errors.Is(err, ctx.Err())) {
			return fmt.Errorf("compare %s: %w", targetDoc.Name, err)
		}
		log.WithFields(logrus.Fields{
			"status": result.Status(),
			"diffs":  result.DiffCount(),
		}).Info("compared")

		named := report.Named{Golden: goldenDoc.Name, Target: targetDoc.Name, Result: result}
		results = append(results, named)

		if history != nil && !result.Incomplete {
			if err := a.record(ctx, history, named, goldenDoc, targetDoc, cfg, o); err != nil {
				return err
			}
		}
		if o.overlayDir != "" {
			if err := writeOverlays(o.overlayDir, goldenDoc, targetDoc, result, o.scale); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	if err := a.writeReport(cmd, cfg.Report.Format, o.out, results); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, n := range results {
		if n.Result.Status() != "pass" {
			return errDifferences
		}
	}
	return nil
}

// record saves a run and logs when the previous identical run had another
// status
func (a *app) record(ctx context.Context, history *store.Store, n report.Named, g, t *source.Document, cfg config.Config, o *compareOptions) error {
	fp, err := store.Fingerprint(g.Pages, t.Pages, cfg.ClassifyConfig(), o.fingerprintParams(cfg)...)
	if err != nil {
		return err
	}

	prev, err := history.Lookup(fp)
	switch {
	case err == nil && prev.Status != n.Result.Status():
		a.log.WithFields(logrus.Fields{
			"target":   n.Target,
			"previous": prev.ID,
			"was":      prev.Status,
			"now":      n.Result.Status(),
		}).Warn("status changed since last identical run")
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return err
	}

	id, err := history.Save(ctx, store.Record{
		Golden:      n.Golden,
		Target:      n.Target,
		Fingerprint: fp,
		Result:      n.Result,
	})
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"target": n.Target, "id": id}).Debug("run saved")
	return nil
}

func (a *app) writeReport(cmd *cobra.Command, format, out string, results []report.Named) error {
	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case config.FormatHTML:
		return report.HTML(w, "Golden comparison", results...)
	case config.FormatYAML:
		return report.YAML(w, results...)
	default:
		return report.Text(w, results...)
	}
}

// writeOverlays draws the diffs of every differing page onto a wireframe
// of each side and writes them as PNG files
func writeOverlays(dir string, g, t *source.Document, result *model.ComparisonResult, scale float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	goldenPages := pagesByIndex(g.Pages)
	targetPages := pagesByIndex(t.Pages)
	base := strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
	opts := annotate.Options{Scale: scale, FillAlpha: 48}

	for _, pr := range result.Pages {
		if !pr.HasDifferences() {
			continue
		}
		sides := []struct {
			side annotate.Side
			page *model.PageFragments
		}{
			{annotate.Golden, goldenPages[pr.PageIndex]},
			{annotate.Target, targetPages[pr.PageIndex]},
		}
		for _, s := range sides {
			if s.page == nil {
				continue
			}
			img := annotate.Overlay(annotate.Page(*s.page, scale), pr, s.side, opts)
			name := filepath.Join(dir, fmt.Sprintf("%s-p%d-%s.png", base, pr.PageIndex+1, s.side))
			if err := writePNG(name, img); err != nil {
				return err
			}
		}
	}
	return nil
}

func pagesByIndex(pages []model.PageFragments) map[int]*model.PageFragments {
	m := make(map[int]*model.PageFragments, len(pages))
	for i := range pages {
		m[pages[i].PageIndex] = &pages[i]
	}
	return m
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := annotate.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
