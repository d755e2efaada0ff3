package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
	"tasktime/internal/state"
)

// Load fetches tasks and operations concurrently and joins them. Both
// requests must succeed; on any failure the current state is kept.
func (a *App) Load(ctx context.Context) error {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	var (
		tasks []models.Task
		ops   []models.Operation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = a.api.ListTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ops, err = a.api.ListOperations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("initial load failed", slog.String("error", err.Error()))
		a.store.Dispatch(state.LoadFailed{Message: "Tasks could not be loaded: " + apperr.UserMessage(err)})
		return err
	}

	if orphans := state.Orphans(tasks, ops); len(orphans) > 0 {
		a.logger.Warn("operations reference unknown tasks", slog.Int("count", len(orphans)))
	}

	a.store.Dispatch(state.Loaded{Tasks: state.Join(tasks, ops)})
	a.logger.Info("state loaded", slog.Int("tasks", len(tasks)), slog.Int("operations", len(ops)))
	return nil
}
