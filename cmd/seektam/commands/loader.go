package commands

import (
	"log/slog"
	"time"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/scrapers/koreafood"
	"seektam-backend/lib/restyutil"
	"seektam-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	loaderPolicy  *string
	loaderBaseUrl *string
	loaderDumpDir *string
)

func init() {
	loaderPolicy = loaderCmd.Flags().String("policy", "", "What to do with aliments that are already stored, 'reuse' or 'overwrite'. Defaults to the config.")
	loaderBaseUrl = loaderCmd.Flags().String("base-url", "", "The base url of the source site. Defaults to the config.")
	loaderDumpDir = loaderCmd.Flags().String("dump-dir", "", "Write every http exchange with the source site to this directory, which must be empty or missing.")
	rootCmd.AddCommand(loaderCmd)
}

var loaderCmd = &cobra.Command{
	Use:   "loader <database-url>",
	Short: "Scrapes every food of the source site into the database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		shutdown := setupTelemetry(ctx, cfg)
		defer shutdown()

		if *loaderPolicy != "" {
			cfg.AlimentPolicy = *loaderPolicy
		}
		policy, err := cfg.Policy()
		if err != nil {
			serviceutil.Fatal("parse policy", err)
		}
		opts := cfg.ClientOptions()
		if *loaderBaseUrl != "" {
			opts.BaseUrl = *loaderBaseUrl
		}
		if *loaderDumpDir != "" {
			out, err := restyutil.NewDirOutput(*loaderDumpDir)
			if err != nil {
				serviceutil.Fatal("create dump directory", err)
			}
			opts.Dump = out
		}

		store := openStore(ctx, args[0], policy)
		client, err := koreafood.NewClient(opts, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("create client", err)
		}

		start := time.Now()
		stats, err := catalog.NewLoader(client, store, telemetry.SlogAPI{}).Run(ctx)
		if err != nil {
			shutdown()
			serviceutil.Fatal("load foods", err)
		}

		slog.Info(
			"loaded foods",
			"seen", stats.FoodsSeen,
			"added", stats.FoodsAdded,
			"seconds", time.Since(start).Seconds(),
		)
	},
}
