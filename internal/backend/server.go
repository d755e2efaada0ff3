// Package backend is a small json-server compatible REST API for tasks and
// operations, backed by SQLite. It is the collaborator the web front end talks to.
package backend

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktime/internal/apperr"
	"tasktime/internal/storage/sqlite"
)

// Server provides HTTP handlers for the tasks and operations resources.
type Server struct {
	engine *gin.Engine
	store  *sqlite.Store
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz"))

	srv := &Server{
		engine: router,
		store:  store,
		logger: logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	tasks := s.engine.Group("/tasks")
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleCreateTask)
		tasks.GET(":id", s.handleGetTask)
		tasks.PATCH(":id", s.handleUpdateTask)
		tasks.DELETE(":id", s.handleDeleteTask)
	}

	operations := s.engine.Group("/operations")
	{
		operations.GET("", s.handleListOperations)
		operations.POST("", s.handleCreateOperation)
		operations.GET(":id", s.handleGetOperation)
		operations.PATCH(":id", s.handleUpdateOperation)
		operations.DELETE(":id", s.handleDeleteOperation)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.respondError(c, apperr.NewStorageError("ping", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns a JSON payload with a matching status.
func (s *Server) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	attrs := []any{slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error())}
	if apperr.ShouldLog(err) {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Warn("request rejected", attrs...)
	}
	c.JSON(status, gin.H{"error": apperr.UserMessage(err)})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.respondError(c, apperr.NewInputError("body", nil, err.Error()))
}
