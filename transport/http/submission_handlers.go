package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/service"
)

// SubmissionHandlers contains HTTP handlers for the submission workflow
type SubmissionHandlers struct {
	submissions *service.SubmissionService
	log         logger.Logger
}

// NewSubmissionHandlers creates new submission handlers
func NewSubmissionHandlers(submissions *service.SubmissionService, log logger.Logger) *SubmissionHandlers {
	return &SubmissionHandlers{
		submissions: submissions,
		log:         log,
	}
}

// Create handles POST /submit-assignment
func (h *SubmissionHandlers) Create(c *gin.Context) {
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

	res, err := h.submissions.Create(c.Request.Context(), identity, doc)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListMine handles GET /mySubmitted?email=
func (h *SubmissionHandlers) ListMine(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		abortWithError(c, h.log, core.ErrUnauthorized)
		return
	}

	docs, err := h.submissions.ListMine(c.Request.Context(), identity, c.Query("email"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// ListByStatus handles GET /pending-assignments?status=
func (h *SubmissionHandlers) ListByStatus(c *gin.Context) {
	var status *string
	if v, ok := c.GetQuery("status"); ok {
		status = &v
	}

	docs, err := h.submissions.ListByStatus(c.Request.Context(), status)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// Grade handles PUT /update-marks/:id
func (h *SubmissionHandlers) Grade(c *gin.Context) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	var grade service.Grade
	if err := c.ShouldBindJSON(&grade); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	res, err := h.submissions.Grade(c.Request.Context(), id, grade)
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListAll handles GET /submitted-assignments
func (h *SubmissionHandlers) ListAll(c *gin.Context) {
	docs, err := h.submissions.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}
