package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktime/internal/apiclient"
	"tasktime/internal/app"
	"tasktime/internal/backend"
	"tasktime/internal/storage/sqlite"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupFrontEnd starts a real backend and returns the front end wired to it.
func setupFrontEnd(t *testing.T) (*Server, *app.App) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	api := httptest.NewServer(backend.New(store, quietLogger()).Engine())
	t.Cleanup(api.Close)

	a := app.New(apiclient.New(api.URL), app.WithLogger(quietLogger()))
	require.NoError(t, a.Load(context.Background()))
	return New(a, quietLogger()), a
}

func post(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code, "form posts redirect back to the view")
	assert.Equal(t, "/", rec.Header().Get("Location"))
	return rec
}

func render(t *testing.T, srv *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestServer_Scenario(t *testing.T) {
	srv, a := setupFrontEnd(t)

	post(t, srv, "/tasks", url.Values{"name": {"A"}, "description": {"desc"}})
	page := render(t, srv)
	assert.Contains(t, page, "Title: A")
	assert.Contains(t, page, "Description: desc")
	assert.Contains(t, page, "Add operation")
	assert.NotContains(t, page, `class="add-operation"`)

	task := a.State().Tasks[0]
	post(t, srv, "/tasks/"+itoa(task.ID)+"/select", nil)
	assert.Contains(t, render(t, srv), `class="add-operation"`)

	post(t, srv, "/tasks/"+itoa(task.ID)+"/operations", url.Values{"description": {"work"}})
	page = render(t, srv)
	assert.Contains(t, page, "work")
	assert.Contains(t, page, "0h 0m")
	assert.NotContains(t, page, `class="add-operation"`)

	op := a.State().Tasks[0].Operations[0]
	post(t, srv, "/operations/"+itoa(op.ID)+"/select", nil)
	assert.Contains(t, render(t, srv), `class="add-spent-time"`)

	post(t, srv, "/operations/"+itoa(op.ID)+"/spent", url.Values{"minutes": {"90"}})
	page = render(t, srv)
	assert.Contains(t, page, "1h 30m")
	assert.NotContains(t, page, `class="add-spent-time"`)

	post(t, srv, "/tasks/"+itoa(task.ID)+"/finish", nil)
	page = render(t, srv)
	assert.Contains(t, page, `data-status="closed"`)
	assert.Contains(t, page, `<b class="total">1h 30m</b>`)
	assert.NotContains(t, page, "Add operation")
	assert.NotContains(t, page, "Add spent time")
	assert.NotContains(t, page, "/operations/"+itoa(op.ID)+"/delete")

	post(t, srv, "/tasks/"+itoa(task.ID)+"/delete", nil)
	assert.Empty(t, a.State().Tasks)
	assert.NotContains(t, render(t, srv), "Title: A")
}

func TestServer_CancelAndDeleteOperation(t *testing.T) {
	srv, a := setupFrontEnd(t)
	ctx := context.Background()
	task, err := a.CreateTask(ctx, "A", "")
	require.NoError(t, err)
	first, err := a.AddOperation(ctx, task.ID, "same")
	require.NoError(t, err)
	second, err := a.AddOperation(ctx, task.ID, "same")
	require.NoError(t, err)

	post(t, srv, "/tasks/"+itoa(task.ID)+"/select", nil)
	post(t, srv, "/tasks/"+itoa(task.ID)+"/cancel", nil)
	assert.Nil(t, a.State().ActiveTaskID)

	post(t, srv, "/operations/"+itoa(first.ID)+"/select", nil)
	post(t, srv, "/operations/"+itoa(first.ID)+"/cancel", nil)
	assert.Nil(t, a.State().ActiveOperationID)

	post(t, srv, "/operations/"+itoa(first.ID)+"/delete", nil)
	ops := a.State().Tasks[0].Operations
	require.Len(t, ops, 1)
	assert.Equal(t, second.ID, ops[0].ID)
}

func TestServer_ErrorBanner(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	a := app.New(apiclient.New(deadURL), app.WithLogger(quietLogger()))
	srv := New(a, quietLogger())

	post(t, srv, "/reload", nil)
	page := render(t, srv)
	assert.Contains(t, page, `role="alert"`)
	assert.Contains(t, page, "could not be reached")
	assert.Contains(t, page, "Reload tasks")

	post(t, srv, "/tasks", url.Values{"name": {"kept"}, "description": {"also kept"}})
	page = render(t, srv)
	assert.Contains(t, page, `value="kept"`)
	assert.Contains(t, page, `value="also kept"`)

	post(t, srv, "/error/dismiss", nil)
	assert.NotContains(t, render(t, srv), `role="alert"`)
}

func TestServer_InvalidSpentTime(t *testing.T) {
	srv, a := setupFrontEnd(t)
	ctx := context.Background()
	task, err := a.CreateTask(ctx, "A", "")
	require.NoError(t, err)
	op, err := a.AddOperation(ctx, task.ID, "work")
	require.NoError(t, err)

	post(t, srv, "/operations/"+itoa(op.ID)+"/select", nil)
	post(t, srv, "/operations/"+itoa(op.ID)+"/spent", url.Values{"minutes": {"soon"}})

	page := render(t, srv)
	assert.Contains(t, page, "invalid spent time")
	assert.Contains(t, page, `value="soon"`)
}

func TestServer_BadIdentifier(t *testing.T) {
	srv, _ := setupFrontEnd(t)

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/abc/finish", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HealthAndAssets(t *testing.T) {
	srv, _ := setupFrontEnd(t)

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(apiclient.RequestIDHeader))

	rec = httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".container")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
