// Package cli defines the tasktime command tree.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tasktime/internal/config"
)

// RootCmd returns the tasktime root command with all subcommands attached.
func RootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "tasktime",
		Short: "Track tasks, their operations and the time spent on them",
		Long: `tasktime is a small task and time tracker.

  tasktime api    runs the REST backend that stores tasks and operations
  tasktime web    runs the HTML front end that talks to the backend
  tasktime tasks  prints the task tree from the backend`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file read before the environment")

	cmd.AddCommand(WebCmd(&envFile))
	cmd.AddCommand(APICmd(&envFile))
	cmd.AddCommand(TasksCmd(&envFile))
	return cmd
}

func newLogger(level string) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	if err != nil {
		logger.Warn("falling back to info level", slog.String("error", err.Error()))
	}
	return logger
}

// serve runs httpServer until SIGINT/SIGTERM and then shuts it down gracefully.
func serve(logger *slog.Logger, httpServer *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
