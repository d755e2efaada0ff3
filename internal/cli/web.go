package cli

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"tasktime/internal/apiclient"
	"tasktime/internal/app"
	"tasktime/internal/config"
	"tasktime/internal/server"
)

// WebCmd returns the command that runs the HTML front end.
func WebCmd(envFile *string) *cobra.Command {
	var (
		addr          string
		apiURL        string
		cascadeDelete bool
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the task view",
		Long: `Serve the task view on --addr. All data lives in the backend at --api-url;
the view loads it once at start-up and again on "Reload tasks".

Examples:
  tasktime web
  tasktime web --addr :9090 --api-url http://localhost:3000 --cascade-delete`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Web.Addr = addr
			}
			if flags.Changed("api-url") {
				cfg.Web.APIURL = apiURL
			}
			if flags.Changed("cascade-delete") {
				cfg.Web.CascadeDelete = cascadeDelete
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log.Level)

			policy := app.CascadeNone
			if cfg.Web.CascadeDelete {
				policy = app.CascadeOperations
			}

			client := apiclient.New(cfg.Web.APIURL, apiclient.WithLogger(logger))
			application := app.New(client,
				app.WithLogger(logger),
				app.WithCascade(policy),
				app.WithRequestTimeout(cfg.Web.RequestTimeout))

			logger.Info("loading tasks",
				slog.String("api_url", client.BaseURL()),
				slog.String("cascade", policy.String()))
			if err := application.Load(context.Background()); err != nil {
				logger.Warn("starting with an empty task list", slog.String("error", err.Error()))
			}

			srv := server.New(application, logger)
			httpServer := &http.Server{
				Addr:    cfg.Web.Addr,
				Handler: srv.Engine(),
			}
			return serve(logger, httpServer, cfg.Web.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address (TASKTIME_ADDR)")
	cmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:3000", "Backend base URL (TASKTIME_API_URL)")
	cmd.Flags().BoolVar(&cascadeDelete, "cascade-delete", false, "Delete a task's operations along with it (TASKTIME_CASCADE_DELETE)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (TASKTIME_LOG_LEVEL)")
	return cmd
}
