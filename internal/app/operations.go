package app

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
	"tasktime/internal/state"
)

func (a *App) openTask(id int64) (models.Task, error) {
	task, ok := a.State().FindTask(id)
	if !ok {
		return models.Task{}, apperr.NewNotFoundError("task", id)
	}
	if !task.IsOpen() {
		return models.Task{}, apperr.NewConflictError("task is closed")
	}
	return task, nil
}

func (a *App) openOperation(id int64) (models.Operation, error) {
	op, task, ok := a.State().FindOperation(id)
	if !ok {
		return models.Operation{}, apperr.NewNotFoundError("operation", id)
	}
	if !task.IsOpen() {
		return models.Operation{}, apperr.NewConflictError("task is closed")
	}
	return op, nil
}

// AddOperation posts a new operation with no spent time under an open task.
func (a *App) AddOperation(ctx context.Context, taskID int64, description string) (models.Operation, error) {
	a.store.Dispatch(state.OperationDraftChanged{Value: description})

	if _, err := a.openTask(taskID); err != nil {
		return models.Operation{}, a.fail("add operation", err)
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	created, err := a.api.CreateOperation(ctx, models.NewOperation{
		Description: description,
		AddedDate:   a.now(),
		SpentTime:   0,
		TaskID:      taskID,
	})
	if err != nil {
		return models.Operation{}, a.fail("add operation", err)
	}
	if created.TaskID == 0 {
		created.TaskID = taskID
	}

	a.store.Dispatch(state.OperationAdded{Operation: created})
	a.logger.Info("operation added", slog.Int64("id", created.ID), slog.Int64("task_id", taskID))
	return created, nil
}

// LogSpentTime parses raw as whole minutes and adds them to an operation.
func (a *App) LogSpentTime(ctx context.Context, operationID int64, raw string) (models.Operation, error) {
	a.store.Dispatch(state.SpentTimeDraftChanged{Value: raw})

	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.Operation{}, a.fail("add spent time",
			apperr.NewInputError("spent time", raw, "not a whole number of minutes"))
	}
	return a.AddSpentTime(ctx, operationID, minutes)
}

// AddSpentTime adds minutes to an operation's spent time.
func (a *App) AddSpentTime(ctx context.Context, operationID int64, minutes int) (models.Operation, error) {
	op, err := a.openOperation(operationID)
	if err != nil {
		return models.Operation{}, a.fail("add spent time", err)
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	total := op.SpentTime + minutes
	reply, err := a.api.PatchOperation(ctx, operationID, models.OperationPatch{SpentTime: &total})
	if err != nil {
		return models.Operation{}, a.fail("add spent time", err)
	}

	op.SpentTime = total
	updated := reply.Apply(op)

	a.store.Dispatch(state.OperationUpdated{Operation: updated})
	a.logger.Info("spent time added", slog.Int64("id", operationID), slog.Int("minutes", minutes))
	return updated, nil
}

// DeleteOperation removes one operation of an open task.
func (a *App) DeleteOperation(ctx context.Context, operationID int64) error {
	if _, err := a.openOperation(operationID); err != nil {
		return a.fail("delete operation", err)
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	if err := a.api.DeleteOperation(ctx, operationID); err != nil {
		return a.fail("delete operation", err)
	}

	a.store.Dispatch(state.OperationDeleted{ID: operationID})
	a.logger.Info("operation deleted", slog.Int64("id", operationID))
	return nil
}
