// Package app is the controller behind the task view: it owns the state
// store, talks to the backend and turns every outcome into a state action.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
	"tasktime/internal/state"
)

// API is the backend surface the controller needs. *apiclient.Client satisfies it.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.NewTask) (models.Task, error)
	PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (models.TaskReply, error)
	DeleteTask(ctx context.Context, id int64) error
	ListOperations(ctx context.Context) ([]models.Operation, error)
	CreateOperation(ctx context.Context, op models.NewOperation) (models.Operation, error)
	PatchOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.OperationReply, error)
	DeleteOperation(ctx context.Context, id int64) error
}

// CascadePolicy decides what happens to a task's operations when the task is deleted.
type CascadePolicy int

const (
	// CascadeNone leaves operations on the backend.
	CascadeNone CascadePolicy = iota
	// CascadeOperations deletes every operation of the task before the task.
	CascadeOperations
)

// String returns the policy name used in logs.
func (p CascadePolicy) String() string {
	if p == CascadeOperations {
		return "operations"
	}
	return "none"
}

// App owns the application state and performs user actions against the backend.
type App struct {
	api     API
	store   *state.Store
	logger  *slog.Logger
	cascade CascadePolicy
	timeout time.Duration
	now     func() time.Time
}

// Option customises an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCascade sets the task deletion policy.
func WithCascade(p CascadePolicy) Option {
	return func(a *App) { a.cascade = p }
}

// WithRequestTimeout bounds every backend call. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *App) { a.timeout = d }
}

// WithClock replaces time.Now for addedDate stamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// New constructs an App with an empty state.
func New(api API, opts ...Option) *App {
	a := &App{
		api:    api,
		store:  state.NewStore(state.State{}),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a snapshot of the current state.
func (a *App) State() state.State {
	return a.store.Snapshot()
}

func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// fail reports err in the state and returns it wrapped with the action name.
func (a *App) fail(action string, err error) error {
	attrs := []any{slog.String("action", action), slog.String("error", err.Error())}
	if appErr, ok := apperr.As(err); ok {
		if body, ok := appErr.GetContext("body"); ok && body != "" {
			attrs = append(attrs, slog.Any("body", body))
		}
	}
	if apperr.ShouldLog(err) {
		a.logger.Error("action failed", attrs...)
	} else {
		a.logger.Warn("action rejected", attrs...)
	}
	a.store.Dispatch(state.Failed{Message: apperr.UserMessage(err)})
	return fmt.Errorf("%s: %w", action, err)
}

// DismissError clears the error banner.
func (a *App) DismissError() {
	a.store.Dispatch(state.ErrorDismissed{})
}

// SelectTask opens the add-operation form of an open task.
func (a *App) SelectTask(id int64) {
	a.store.Dispatch(state.TaskSelected{ID: id})
}

// CancelTask closes the add-operation form.
func (a *App) CancelTask() {
	a.store.Dispatch(state.SelectionCleared{Kind: state.SelectionTask})
}

// SelectOperation opens the add-spent-time form of an operation of an open task.
func (a *App) SelectOperation(id int64) {
	a.store.Dispatch(state.OperationSelected{ID: id})
}

// CancelOperation closes the add-spent-time form.
func (a *App) CancelOperation() {
	a.store.Dispatch(state.SelectionCleared{Kind: state.SelectionOperation})
}
