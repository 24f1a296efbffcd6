package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/service"
)

// AssignmentHandlers contains HTTP handlers for the assignment catalog
type AssignmentHandlers struct {
	assignments *service.AssignmentService
	log         logger.Logger
}

// NewAssignmentHandlers creates new assignment handlers
func NewAssignmentHandlers(assignments *service.AssignmentService, log logger.Logger) *AssignmentHandlers {
	return &AssignmentHandlers{
		assignments: assignments,
		log:         log,
	}
}

// Create handles POST /add-assignment
func (h *AssignmentHandlers) Create(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortWithError(c, h.log, core.ErrUnauthorized)
		return
	}

	var doc core.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	res, err := h.assignments.Create(c.Request.Context(), identity, doc)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// List handles GET /assignments?page=&size=&filter=
func (h *AssignmentHandlers) List(c *gin.Context) {
	page, err := nonNegativeQuery(c, "page")
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}
	size, err := nonNegativeQuery(c, "size")
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	docs, err := h.assignments.List(c.Request.Context(), core.PageOf(page, size), c.Query("filter"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// Count handles GET /getCount?filter=
func (h *AssignmentHandlers) Count(c *gin.Context) {
	n, err := h.assignments.Count(c.Request.Context(), c.Query("filter"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": n})
}

// Get handles GET /assignment/:id. An unknown id yields a null body.
func (h *AssignmentHandlers) Get(c *gin.Context) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	doc, found, err := h.assignments.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /assignment/:id
func (h *AssignmentHandlers) Delete(c *gin.Context) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	res, err := h.assignments.Delete(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Update handles PUT /update-assignment/:id
func (h *AssignmentHandlers) Update(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortWithError(c, h.log, core.ErrUnauthorized)
		return
	}

	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	var doc core.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	res, err := h.assignments.Update(c.Request.Context(), identity, id, doc)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// nonNegativeQuery reads an optional integer query parameter; absent means 0
func nonNegativeQuery(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidQuery, key, raw)
	}
	return n, nil
}
