package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/config"
	"seektam-backend/internal/db"
	"seektam-backend/lib/serviceutil"
	"seektam-backend/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	verbose    *bool
	configPath *string
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging.")
	configPath = rootCmd.PersistentFlags().String("config", "", fmt.Sprintf(
		"The config file to use, defaults to $%s or the closest %s.",
		config.EnvPath, config.DefaultName,
	))
}

var rootCmd = &cobra.Command{
	Use:   "seektam",
	Short: "seektam scrapes and serves the nutrient composition of korean foods.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load(*configPath)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	return cfg
}

// setupTelemetry installs the tracer provider and returns a function
// flushing it.
func setupTelemetry(ctx context.Context, cfg config.Config) func() {
	tel, err := telemetry.Setup(ctx, "seektam", cfg.Telemetry)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	return func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("shutdown telemetry", "err", err)
		}
	}
}

func openStore(ctx context.Context, dburl string, policy catalog.Policy) catalog.Store {
	database, err := sqliteutil.OpenDB(ctx, db.Schema, dburl)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}
	return catalog.NewStore(database, policy, telemetry.SlogAPI{})
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
