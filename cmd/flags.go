package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/iodb"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/db"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

// applyFlags converts command flags into options and updates cfg.
func applyFlags(cmd *cobra.Command, fns ...funcFlag) {
	var res []config.Option
	for _, fn := range fns {
		res = append(res, fn(cmd)...)
	}
	opts = append(opts, res...)
	cfg.Update(res)
}

func sourcesFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("sources") {
		return nil
	}
	ss, _ := cmd.Flags().GetStringSlice("sources")
	return []config.Option{config.OptHarvestSources(ss)}
}

func delayFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("delay") {
		return nil
	}
	d, _ := cmd.Flags().GetDuration("delay")
	return []config.Option{config.OptHarvestScraperDelay(d)}
}

func outputDirFlag(cmd *cobra.Command) []config.Option {
	s, _ := cmd.Flags().GetString("output")
	if s == "" {
		return nil
	}
	return []config.Option{config.OptHarvestOutputDir(s)}
}

func maxResultsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("max-results") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("max-results")
	return []config.Option{config.OptABNMaxResults(i)}
}

// signalContext returns a context cancelled by Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}

// connect opens the database and prints where it is connected.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	if cfg.Database.URL != "" {
		gn.Info("Connected to database from <em>ORGSDB_DATABASE_URL</em>")
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}
