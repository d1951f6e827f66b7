package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/golden/source"
)

func newExtractCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Write the text fragments of a document as a YAML fragment file",
		Long: `Extract positioned text fragments from a PDF (or normalise an existing
fragment file) and write them as YAML. The output can be edited, for
example to mark variable fields, and used as a golden document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := source.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.log.WithField("document", doc.Name).
				WithField("pages", doc.PageCount()).
				WithField("fragments", doc.FragmentCount()).
				Debug("extracted")

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return source.Encode(w, doc.Pages)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
