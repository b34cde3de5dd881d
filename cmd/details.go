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

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/orgsdb/internal/ioassoc"
	"github.com/spf13/cobra"
)

// getDetailsCmd returns the details command.
func getDetailsCmd() *cobra.Command {
	detailsCmd := &cobra.Command{
		Use:   "details <organisation_id>",
		Short: "Show the public register details of an association",
		Long: `Details fetches the public register page of an incorporated
association and prints its fields as JSON. The organisation id is the
organisation_id column of the associations register results.

Examples:
  orgsdb details 1234567`,
		Args: cobra.ExactArgs(1),
		RunE: runDetails,
	}
	return detailsCmd
}

func runDetails(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	sc, err := ioassoc.New(cfg.Assoc)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rec, ok := sc.FetchOrgDetails(ctx, args[0])
	if !ok {
		gn.Info("No details for organisation <em>%s</em>", args[0])
		return nil
	}

	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bs))
	return nil
}
