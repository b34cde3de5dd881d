/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/orgsdb/internal/ioetl"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load organisation records into the database",
		Long: `Load reads records from a CSV or JSON file, maps them onto the
organisations table and upserts them by slug.

Existing organisations get only the values present in the file, stored
values are never replaced with NULL. New organisations get all values
and defaults. The whole file is loaded in one transaction, nothing is
written if any record fails. With --batch-size every batch is committed
on its own, and a failure leaves earlier batches in the database.

Sources:
  raw    columns already use mapping names (name, slug_value, ...)
  assoc  NSW associations register results
  acnc   ACNC charity register results

Without --source it is guessed from the file name.

Examples:
  orgsdb load fair_trading_incorporation_register_results_20250801_1200.csv
  orgsdb load orgs.json --source raw --editor data-team
  orgsdb load acnc_register_results_20250801_1200.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}

	loadCmd.Flags().String("source", "",
		"source of records: "+strings.Join(ioetl.Sources(), ", "))
	loadCmd.Flags().String("editor", "",
		"editor UUID or name recorded as inserted_by/last_edited_by")
	loadCmd.Flags().Int("batch-size", 0,
		"commit every N records, earlier batches stay after a failure "+
			"(default: whole file in one transaction)")
	loadCmd.Flags().Bool("dry-run", false,
		"print transformed rows as JSON instead of loading them")

	return loadCmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]

	src, _ := cmd.Flags().GetString("source")
	if src == "" {
		src = sourceFromPath(path)
	}
	editor, _ := cmd.Flags().GetString("editor")

	recs, err := ioetl.ReadRecords(path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rows, err := ioetl.Rows(src, recs, editor)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Transformed <em>%s</em> %s records",
		humanize.Comma(int64(len(rows))), src)
	if err = ioetl.CheckSlugs(rows); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		enc := gnfmt.GNjson{Pretty: true}
		bs, err := enc.Encode(rows)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bs))
		return nil
	}

	ctx, stop := signalContext()
	defer stop()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	size, _ := cmd.Flags().GetInt("batch-size")
	total, err := ioetl.LoadBatches(ctx, ioetl.New(op), rows, size)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Inserted <em>%s</em>, updated <em>%s</em> organisations",
		humanize.Comma(int64(total.Inserted)),
		humanize.Comma(int64(total.Updated)))
	return nil
}

// sourceFromPath guesses the record source by the harvest artifact name.
func sourceFromPath(path string) string {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, harvest.FileAssoc):
		return ioetl.SourceAssoc
	case strings.HasPrefix(base, harvest.FileACNC):
		return ioetl.SourceACNC
	}
	return ioetl.SourceRaw
}
