package commands

import (
	"idb-monitor/internal/config"
	"idb-monitor/internal/dashboard"
	"idb-monitor/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	holder *dashboard.Holder
)

var rootCmd = &cobra.Command{
	Use:   "idb-monitor",
	Short: "IDB Monitor tracks field-survey progress against the BOQ",
	Long: `IDB Monitor loads the pole survey and the bill of quantities, and serves
filtered KPIs, DT/feeder reconciliation, variance and vendor recommendations
over MCP (stdio) or an HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		holder = dashboard.NewHolder(newLoader(cfg))

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("IDB Monitor starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		runMCP(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(mcpCmd, serveCmd, exportCmd, summaryCmd)
}
