package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktime/internal/state"
)

type indexView struct {
	State state.State
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexView{State: s.app.State()})
}

// Action handlers ignore the returned error: the controller has already
// logged it and put the message in the state for the next render.

func (s *Server) handleReload(c *gin.Context) {
	_ = s.app.Load(c.Request.Context())
	backToView(c)
}

func (s *Server) handleDismissError(c *gin.Context) {
	s.app.DismissError()
	backToView(c)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	_, _ = s.app.CreateTask(c.Request.Context(), c.PostForm("name"), c.PostForm("description"))
	backToView(c)
}

func (s *Server) handleFinishTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, _ = s.app.FinishTask(c.Request.Context(), id)
	backToView(c)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_ = s.app.DeleteTask(c.Request.Context(), id)
	backToView(c)
}

func (s *Server) handleSelectTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s.app.SelectTask(id)
	backToView(c)
}

func (s *Server) handleCancelTask(c *gin.Context) {
	s.app.CancelTask()
	backToView(c)
}

func (s *Server) handleAddOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, _ = s.app.AddOperation(c.Request.Context(), id, c.PostForm("description"))
	backToView(c)
}

func (s *Server) handleSelectOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s.app.SelectOperation(id)
	backToView(c)
}

func (s *Server) handleCancelOperation(c *gin.Context) {
	s.app.CancelOperation()
	backToView(c)
}

func (s *Server) handleAddSpentTime(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, _ = s.app.LogSpentTime(c.Request.Context(), id, c.PostForm("minutes"))
	backToView(c)
}

func (s *Server) handleDeleteOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_ = s.app.DeleteOperation(c.Request.Context(), id)
	backToView(c)
}
