package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
	"github.com/noah-isme/exam-seating-api/pkg/storage"
)

type seatingService interface {
	Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error)
	Get(ctx context.Context, id string) (*dto.SeatingPlanResponse, error)
	Reports(ctx context.Context, id string) ([]models.RoomReport, error)
	EditSeat(ctx context.Context, id string, req dto.EditSeatRequest) (*dto.SeatingPlanResponse, error)
}

type exportService interface {
	Export(ctx context.Context, planID string, req dto.ExportRequest) (*dto.ExportResult, error)
	Open(token string) (*os.File, storage.Ticket, error)
}

// SeatingHandler exposes seating plan generation, editing and exports.
type SeatingHandler struct {
	seating seatingService
	exports exportService
}

// NewSeatingHandler builds a new handler.
func NewSeatingHandler(seating seatingService, exports exportService) *SeatingHandler {
	return &SeatingHandler{seating: seating, exports: exports}
}

// Generate godoc
// @Summary Generate a seating plan for an exam date
// @Description Students whose batch has no exam that day, or whose course does not match it, are ignored.
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.GenerateSeatingRequest true "Exam date and roster"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /seating-plans [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	var req dto.GenerateSeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seating payload"))
		return
	}
	plan, err := h.seating.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// Get godoc
// @Summary Get a seating plan
// @Tags Seating
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /seating-plans/{id} [get]
func (h *SeatingHandler) Get(c *gin.Context) {
	plan, err := h.seating.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Reports godoc
// @Summary Per-room batch and department counts of a plan
// @Tags Seating
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /seating-plans/{id}/reports [get]
func (h *SeatingHandler) Reports(c *gin.Context) {
	reports, err := h.seating.Reports(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// EditSeat godoc
// @Summary Overwrite or clear one seat
// @Description The separation rule is not enforced; the response lists the violations after the edit.
// @Tags Seating
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body dto.EditSeatRequest true "Seat edit"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /seating-plans/{id}/seats [put]
func (h *SeatingHandler) EditSeat(c *gin.Context) {
	var req dto.EditSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seat payload"))
		return
	}
	plan, err := h.seating.EditSeat(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Export godoc
// @Summary Render an attendance sheet or seating chart
// @Tags Seating
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param payload body dto.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /seating-plans/{id}/exports [post]
func (h *SeatingHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.exports.Export(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download a rendered export
// @Tags Seating
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *SeatingHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, ticket, err := h.exports.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export"))
		return
	}
	filename := path.Base(ticket.Path)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(filename), file, nil)
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
