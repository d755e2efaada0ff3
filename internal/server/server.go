package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasktime/internal/apiclient"
	"tasktime/internal/app"
	"tasktime/internal/timecalc"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the task view and turns form posts into application actions.
type Server struct {
	engine *gin.Engine
	app    *app.App
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(application *app.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/assets/style.css"))
	router.Use(requestID())
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	srv := &Server{
		engine: router,
		app:    application,
		logger: logger,
	}

	srv.registerRoutes()
	return srv
}

var templateFuncs = template.FuncMap{
	"totalTime": timecalc.Format,
	"minutes":   timecalc.FormatMinutes,
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the view, form and asset handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/reload", s.handleReload)
	s.engine.POST("/error/dismiss", s.handleDismissError)

	tasks := s.engine.Group("/tasks")
	{
		tasks.POST("", s.handleCreateTask)
		tasks.POST(":id/finish", s.handleFinishTask)
		tasks.POST(":id/delete", s.handleDeleteTask)
		tasks.POST(":id/select", s.handleSelectTask)
		tasks.POST(":id/cancel", s.handleCancelTask)
		tasks.POST(":id/operations", s.handleAddOperation)
	}

	operations := s.engine.Group("/operations")
	{
		operations.POST(":id/select", s.handleSelectOperation)
		operations.POST(":id/cancel", s.handleCancelOperation)
		operations.POST(":id/spent", s.handleAddSpentTime)
		operations.POST(":id/delete", s.handleDeleteOperation)
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestID tags every request with an id that is forwarded to the backend.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(apiclient.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(apiclient.RequestIDHeader, id)
		c.Request = c.Request.WithContext(apiclient.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid identifier")
		return 0, false
	}
	return id, true
}

// backToView sends the browser back to the task view after a form post.
func backToView(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
