package backend

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktime/internal/models"
)

func (s *Server) handleListOperations(c *gin.Context) {
	ops, err := s.store.ListOperations(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ops)
}

func (s *Server) handleCreateOperation(c *gin.Context) {
	var req models.NewOperation
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	op, err := s.store.CreateOperation(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, op)
}

func (s *Server) handleGetOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	op, err := s.store.GetOperation(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

func (s *Server) handleUpdateOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.OperationPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	op, err := s.store.UpdateOperation(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

func (s *Server) handleDeleteOperation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteOperation(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
