package commands

import (
	"context"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/components/chrono"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/config"
	"seektam-backend/internal/scrapers/koreafood"
	"seektam-backend/internal/server"
	"seektam-backend/lib/serviceutil"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--config <path>]",
	Short: "Serves the foods of the configured database over http.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		shutdown := setupTelemetry(ctx, cfg)
		defer shutdown()

		policy, err := cfg.Policy()
		if err != nil {
			serviceutil.Fatal("parse policy", err)
		}
		store := openStore(ctx, cfg.Database, policy)

		if cfg.Source.RefreshCron != "" {
			cron, err := scheduleRefresh(ctx, cfg, store)
			if err != nil {
				serviceutil.Fatal("schedule refresh", err)
			}
			defer func() {
				<-cron.Stop().Done()
			}()
		}

		if !*verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		router := server.New(store, telemetry.SlogAPI{}).Router()

		err = serviceutil.StartHttpServer(ctx, cfg.Server.Port, router)
		if err != nil {
			shutdown()
			serviceutil.Fatal("serve http", err)
		}
	},
}

const report_serve_refresh = "serve.refresh"

// scheduleRefresh reloads the source site into store on the configured
// schedule.
func scheduleRefresh(ctx context.Context, cfg config.Config, store catalog.Store) (chrono.StandardCron, error) {
	tel := telemetry.SlogAPI{}

	client, err := koreafood.NewClient(cfg.ClientOptions(), tel)
	if err != nil {
		return chrono.StandardCron{}, err
	}
	loader := catalog.NewLoader(client, store, tel)

	cron := chrono.NewStandardCron(tel)
	err = cron.Cron(cfg.Source.RefreshCron, func() {
		stats, err := loader.Run(ctx)
		if err != nil {
			tel.ReportBroken(report_serve_refresh, err, stats.FoodsSeen)
			return
		}
		tel.ReportInfo("refreshed foods", stats.FoodsSeen, stats.FoodsAdded)
	})
	if err != nil {
		<-cron.Stop().Done()
		return chrono.StandardCron{}, err
	}
	return cron, nil
}
