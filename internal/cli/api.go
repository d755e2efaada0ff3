package cli

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"tasktime/internal/backend"
	"tasktime/internal/config"
	"tasktime/internal/storage/sqlite"
)

// APICmd returns the command that runs the REST backend.
func APICmd(envFile *string) *cobra.Command {
	var (
		addr     string
		dbPath   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the tasks and operations REST API",
		Long: `Serve /tasks and /operations backed by a SQLite file.

Examples:
  tasktime api
  tasktime api --addr :3000 --db data/tasktime.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Backend.Addr = addr
			}
			if flags.Changed("db") {
				cfg.Backend.DBPath = dbPath
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log.Level)

			store, err := sqlite.Open(cfg.Backend.DBPath, logger)
			if err != nil {
				logger.Error("unable to open database", slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			srv := backend.New(store, logger)
			httpServer := &http.Server{
				Addr:    cfg.Backend.Addr,
				Handler: srv.Engine(),
			}
			return serve(logger, httpServer, cfg.Web.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "HTTP listen address (TASKTIME_API_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "data/tasktime.db", "Path to sqlite database file (TASKTIME_DB_PATH)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (TASKTIME_LOG_LEVEL)")
	return cmd
}
