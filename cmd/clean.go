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
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/ioclean"
	"github.com/spf13/cobra"
)

// getCleanCmd returns the clean command.
func getCleanCmd() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean <abn_register_results.csv>",
		Short: "Clean ABN register results and report duplicate ABNs",
		Long: `Clean prepares ABN register results for loading.

This command:
  1. Checks that all ABN columns are present
  2. Replaces placeholder dates (0001-01-01) with empty values
  3. Empties JSON columns without data
  4. Renames columns to snake_case
  5. Reports ABNs found more than once

Rows are never dropped. Without --output the result is written next to
the input file with a _cleaned suffix.

Examples:
  orgsdb clean abn_register_results_20250801_1200.csv
  orgsdb clean abn.csv -o abn_clean.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}

	cleanCmd.Flags().StringP("output", "o", "", "path of the cleaned CSV file")

	return cleanCmd
}

func runClean(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cleanedPath(input)
	}

	rep, err := ioclean.New().Clean(input, output)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Cleaned <em>%d</em> rows into <em>%s</em>", rep.Rows, output)
	return nil
}

// cleanedPath adds _cleaned suffix to the file name.
func cleanedPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_cleaned.csv"
}
