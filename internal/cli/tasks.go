package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tasktime/internal/apiclient"
	"tasktime/internal/app"
	"tasktime/internal/config"
	"tasktime/internal/models"
	"tasktime/internal/timecalc"
)

// TasksCmd returns the command that prints the task tree.
func TasksCmd(envFile *string) *cobra.Command {
	var (
		apiURL string
		status string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print tasks with their operations and spent time",
		Long: `Fetch tasks and operations from the backend and print them as a tree.

Examples:
  tasktime tasks
  tasktime tasks --status open
  tasktime tasks --api-url http://localhost:3000 --status closed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.Web.APIURL = apiURL
			}

			filter, err := parseStatusFilter(status)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			tasks, err := fetchTasks(cmd.Context(), apiclient.New(cfg.Web.APIURL, apiclient.WithLogger(logger)), logger)
			if err != nil {
				return err
			}

			printTasks(cmd.OutOrStdout(), filterTasks(tasks, filter))
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:3000", "Backend base URL (TASKTIME_API_URL)")
	cmd.Flags().StringVar(&status, "status", "all", "Show only open, closed or all tasks")
	return cmd
}

func parseStatusFilter(raw string) (models.Status, error) {
	switch raw {
	case "", "all":
		return "", nil
	case string(models.StatusOpen), string(models.StatusClosed):
		return models.Status(raw), nil
	default:
		return "", fmt.Errorf("unknown status %q: use open, closed or all", raw)
	}
}

// fetchTasks loads and joins both collections the same way the web view does.
func fetchTasks(ctx context.Context, client *apiclient.Client, logger *slog.Logger) ([]models.Task, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	application := app.New(client, app.WithLogger(logger))
	if err := application.Load(ctx); err != nil {
		return nil, err
	}
	return application.State().Tasks, nil
}

func filterTasks(tasks []models.Task, status models.Status) []models.Task {
	if status == "" {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func printTasks(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	for _, t := range tasks {
		marker := color.New(color.FgGreen).Sprint("open  ")
		if !t.IsOpen() {
			marker = color.New(color.FgHiBlack).Sprint("closed")
		}
		fmt.Fprintf(w, "%s #%d %s  %s\n", marker, t.ID, t.Name,
			color.New(color.FgCyan).Sprint(timecalc.Format(t.Operations)))
		if t.Description != "" {
			fmt.Fprintf(w, "        %s\n", t.Description)
		}
		for _, op := range t.Operations {
			fmt.Fprintf(w, "        - #%d %s (%s)\n", op.ID, op.Description, timecalc.FormatMinutes(op.SpentTime))
		}
	}
}
