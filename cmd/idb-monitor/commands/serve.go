package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"idb-monitor/internal/api"

	"github.com/pkg/browser"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveCron   string
	openBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard engine over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		if serveAddr != "" {
			cfg.HTTPAddr = serveAddr
		}
		if serveCron != "" {
			cfg.RefreshCron = serveCron
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mustLoad(ctx)

		if cfg.RefreshCron != "" {
			c := cron.New(cron.WithLogger(cronLogger{}))
			if _, err := c.AddFunc(cfg.RefreshCron, func() { _ = holder.Refresh(ctx) }); err != nil {
				log.Fatal().Err(err).Str("schedule", cfg.RefreshCron).Msg("Invalid refresh schedule")
			}
			c.Start()
			defer c.Stop()
			log.Info().Str("schedule", cfg.RefreshCron).Msg("Scheduled dataset refresh")
		}

		if openBrowser {
			browser.Stdout = os.Stderr
			if err := browser.OpenURL(overviewURL(cfg.HTTPAddr)); err != nil {
				log.Warn().Err(err).Msg("Failed to open browser")
			}
		}

		if err := api.NewServer(cfg, holder).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("HTTP server stopped")
		}
	},
}

func overviewURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("http://%s/api/overview", addr)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/api/overview", net.JoinHostPort(host, port))
}

// cronLogger routes scheduler messages into the global logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().StringVar(&serveCron, "cron", "", "refresh schedule in cron syntax (overrides REFRESH_CRON)")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "open the overview in a browser once listening")
}
