package gymbro

import (
	"database/sql"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/di"
)

var (
	serveAddr   string
	serveOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the offline-first proxy in front of the web app",
	Long: "serve precaches the app shell, then proxies every request to --origin, answering from the\n" +
		"offline cache when the network fails. It also exposes /lookup/foods, /lookup/exercises,\n" +
		"/healthz and /metrics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			conf.Serve.Addr = serveAddr
		}
		if cmd.Flags().Changed("origin") {
			conf.Serve.Origin = serveOrigin
		}
		logger := newLogger(cmd, conf)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return withDB(func(sqldb *sql.DB) error {
			srv, err := di.InitServer(conf, sqldb, logger)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides serve.addr)")
	serveCmd.Flags().StringVar(&serveOrigin, "origin", "", "Upstream web app origin (overrides serve.origin)")
}
