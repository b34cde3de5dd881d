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
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/ioabn"
	"github.com/gnames/orgsdb/internal/ioacnc"
	"github.com/gnames/orgsdb/internal/ioassoc"
	"github.com/gnames/orgsdb/internal/ioharvest"
	"github.com/gnames/orgsdb/internal/iooutput"
	"github.com/gnames/orgsdb/internal/iotargets"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/lifecycle"
	"github.com/gnames/orgsdb/pkg/target"
	"github.com/spf13/cobra"
)

// getHarvestCmd returns the harvest command.
func getHarvestCmd() *cobra.Command {
	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest organisation records for target localities",
		Long: `Harvest organisation records for every locality of targets.yaml.

For each target the command:
  1. Walks all result pages of the NSW associations register
  2. Queries the ACNC charity register by town, state and postcode
Then, for each distinct postcode:
  3. Searches the ABN Lookup service for charities and fetches
     details of every ABN found

Results are written to the output directory:
  fair_trading_incorporation_register_results_<ts>.csv
  acnc_register_results_<ts>.csv
  abn_register_results_<ts>.csv
  missing_results_summary_<ts>.json
  suburb_errors_<ts>.log

The ABN source requires an authentication GUID, usually kept in .env
as PRIVATE_ABN_SEARCH_GUID.

Press Ctrl-C to stop, records gathered so far are still written.

Examples:
  orgsdb harvest
  orgsdb harvest --sources assoc,acnc
  orgsdb harvest -t ./targets.yaml -o ./out --delay 2s`,
		RunE: runHarvest,
	}

	harvestCmd.Flags().StringSliceP("sources", "s", nil,
		"harvest only given sources (assoc, acnc, abn)")
	harvestCmd.Flags().StringP("targets", "t", "",
		"targets file (default ~/.config/orgsdb/targets.yaml)")
	harvestCmd.Flags().StringP("output", "o", "",
		"directory for harvest artifacts")
	harvestCmd.Flags().Duration("delay", 4*time.Second,
		"pause between result pages of the associations register")
	harvestCmd.Flags().Int("max-results", 0,
		"limit the number of ABNs per postcode (0 means no limit)")

	return harvestCmd
}

func runHarvest(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, sourcesFlag, delayFlag, outputDirFlag, maxResultsFlag)

	if cfg.HasSource(harvest.IDABN) && cfg.ABN.GUID == "" {
		err := ioabn.MissingGUIDError()
		gn.PrintErrorMessage(err)
		return err
	}

	targets, err := loadTargets(cmd, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	h, err := newHarvester(cfg, time.Now())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	gn.Info("Harvesting <em>%d</em> targets into <em>%s</em>",
		len(targets), cfg.OutputDir())
	if _, err = h.Harvest(ctx, targets); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func loadTargets(
	cmd *cobra.Command,
	cfg *config.Config,
) ([]target.SearchTarget, error) {
	tl := iotargets.New(cfg)
	if path, _ := cmd.Flags().GetString("targets"); path != "" {
		tl = iotargets.NewFromFile(path)
	}
	tc, err := tl.Load()
	if err != nil {
		return nil, err
	}
	return tc.Targets, nil
}

// newHarvester builds clients of the selected sources. The ABN client is
// created by the harvester when the ABN phase starts.
func newHarvester(
	cfg *config.Config,
	now time.Time,
) (lifecycle.Harvester, error) {
	var err error
	var assoc harvest.AssocSearcher
	var charity harvest.CharitySearcher
	var abn harvest.ABNFactory

	if cfg.HasSource(harvest.IDAssoc) {
		if assoc, err = ioassoc.New(cfg.Assoc); err != nil {
			return nil, err
		}
	}
	if cfg.HasSource(harvest.IDACNC) {
		charity = ioacnc.New(cfg.ACNC)
	}
	if cfg.HasSource(harvest.IDABN) {
		abnCfg := cfg.ABN
		abn = func() (harvest.ABNSearcher, error) {
			return ioabn.New(abnCfg)
		}
	}

	out, err := iooutput.New(cfg.OutputDir(), now)
	if err != nil {
		return nil, err
	}

	return ioharvest.New(cfg, assoc, charity, abn, out), nil
}
