package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/golden/report"
	"github.com/tsawler/golden/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		path  string
		limit int
		id    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored comparison runs",
		Example: `  golden history --store .golden --limit 10
  golden history --store .golden --id 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("store") {
				a.cfg.Store.Path = path
			}
			if a.cfg.Store.Path == "" {
				return fmt.Errorf("no store configured: pass --store or set store.path")
			}

			history, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer history.Close()

			if id != "" {
				rec, err := history.Get(id)
				if err != nil {
					return err
				}
				return report.Text(cmd.OutOrStdout(), report.Named{
					Golden: rec.Golden,
					Target: rec.Target,
					Result: rec.Result,
				})
			}

			records, err := history.List(limit)
			if err != nil {
				return err
			}
			return historyTable(cmd, records)
		},
	}

	cmd.Flags().StringVar(&path, "store", "", "directory of the run history database")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show, 0 for all")
	cmd.Flags().StringVar(&id, "id", "", "show the full report of one run")
	return cmd
}

func historyTable(cmd *cobra.Command, records []store.Record) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Golden", "Target", "Status", "Diffs"})
	for _, r := range records {
		diffs := 0
		if r.Result != nil {
			diffs = r.Result.DiffCount()
		}
		t.AppendRow(table.Row{r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Golden, r.Target, r.Status, diffs})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
