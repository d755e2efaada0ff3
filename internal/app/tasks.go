package app

import (
	"context"
	"log/slog"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
	"tasktime/internal/state"
)

// CreateTask posts a new open task. The inputs are kept in the state until
// the server confirms the task.
func (a *App) CreateTask(ctx context.Context, name, description string) (models.Task, error) {
	a.store.Dispatch(state.InputChanged{Name: name, Description: description})

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	created, err := a.api.CreateTask(ctx, models.NewTask{
		Name:        name,
		Description: description,
		AddedDate:   a.now(),
		Status:      models.StatusOpen,
	})
	if err != nil {
		return models.Task{}, a.fail("create task", err)
	}
	if created.Status == "" {
		created.Status = models.StatusOpen
	}

	a.store.Dispatch(state.TaskCreated{Task: created})
	a.logger.Info("task created", slog.Int64("id", created.ID))
	return created, nil
}

// FinishTask closes a task once the server has accepted the change. Fields
// present in the server's reply override the local copy.
func (a *App) FinishTask(ctx context.Context, id int64) (models.Task, error) {
	task, ok := a.State().FindTask(id)
	if !ok {
		return models.Task{}, a.fail("finish task", apperr.NewNotFoundError("task", id))
	}
	if !task.IsOpen() {
		return models.Task{}, a.fail("finish task", apperr.NewConflictError("task is already closed"))
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	closed := models.StatusClosed
	reply, err := a.api.PatchTask(ctx, id, models.TaskPatch{Status: &closed})
	if err != nil {
		return models.Task{}, a.fail("finish task", err)
	}

	// The requested change stands unless the reply says otherwise.
	task.Status = closed
	updated := reply.Apply(task)

	next := a.store.Dispatch(state.TaskFinished{Task: updated})
	finished, _ := next.FindTask(id)
	a.logger.Info("task finished", slog.Int64("id", id), slog.String("status", string(finished.Status)))
	return finished, nil
}

// DeleteTask removes a task. With CascadeOperations its operations are
// deleted first, one by one; the first failure stops before the task is touched.
func (a *App) DeleteTask(ctx context.Context, id int64) error {
	task, ok := a.State().FindTask(id)
	if !ok {
		return a.fail("delete task", apperr.NewNotFoundError("task", id))
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	if a.cascade == CascadeOperations {
		for _, op := range task.Operations {
			if err := a.api.DeleteOperation(ctx, op.ID); err != nil {
				return a.fail("delete task", err)
			}
			a.store.Dispatch(state.OperationDeleted{ID: op.ID})
		}
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		return a.fail("delete task", err)
	}

	a.store.Dispatch(state.TaskDeleted{ID: id})
	a.logger.Info("task deleted",
		slog.Int64("id", id),
		slog.String("cascade", a.cascade.String()),
		slog.Int("operations", len(task.Operations)))
	return nil
}
