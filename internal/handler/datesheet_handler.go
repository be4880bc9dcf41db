package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type dateSheetService interface {
	List(ctx context.Context) ([]models.DateSheet, error)
	GetByBatch(ctx context.Context, batch string) (*models.DateSheet, error)
	Upsert(ctx context.Context, req dto.UpsertDateSheetRequest) (*models.DateSheet, error)
	UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.DateSheet, error)
}

type conflictDetector interface {
	Detect(ctx context.Context) (*dto.ConflictReport, error)
}

// DateSheetHandler exposes batch exam calendar endpoints.
type DateSheetHandler struct {
	sheets    dateSheetService
	conflicts conflictDetector
}

// NewDateSheetHandler builds a new handler.
func NewDateSheetHandler(sheets dateSheetService, conflicts conflictDetector) *DateSheetHandler {
	return &DateSheetHandler{sheets: sheets, conflicts: conflicts}
}

// List godoc
// @Summary List date sheets
// @Tags DateSheets
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /datesheets [get]
func (h *DateSheetHandler) List(c *gin.Context) {
	sheets, err := h.sheets.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheets, map[string]interface{}{"total": len(sheets)})
}

// GetByBatch godoc
// @Summary Get the date sheet of a batch
// @Description Batch identifiers contain slashes, so the whole remaining path is the batch.
// @Tags DateSheets
// @Produce json
// @Param batch path string true "Batch identifier, e.g. F23/CS/22"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /datesheets/batch/{batch} [get]
func (h *DateSheetHandler) GetByBatch(c *gin.Context) {
	batch := strings.TrimPrefix(c.Param("batch"), "/")
	if strings.TrimSpace(batch) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "batch is required"))
		return
	}
	sheet, err := h.sheets.GetByBatch(c.Request.Context(), batch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet)
}

// Upsert godoc
// @Summary Create or replace the date sheet of a batch
// @Tags DateSheets
// @Accept json
// @Produce json
// @Param payload body dto.UpsertDateSheetRequest true "Date sheet payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /datesheets [put]
func (h *DateSheetHandler) Upsert(c *gin.Context) {
	var req dto.UpsertDateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid date sheet payload"))
		return
	}
	sheet, err := h.sheets.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet)
}

// UpdateSchedule godoc
// @Summary Replace the schedule of a date sheet
// @Tags DateSheets
// @Accept json
// @Produce json
// @Param id path string true "Date sheet ID"
// @Param payload body dto.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /datesheets/{id} [put]
func (h *DateSheetHandler) UpdateSchedule(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	sheet, err := h.sheets.UpdateSchedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet)
}

// Conflicts godoc
// @Summary Detect cross-batch exam collisions
// @Tags DateSheets
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /datesheets/conflicts [get]
func (h *DateSheetHandler) Conflicts(c *gin.Context) {
	report, err := h.conflicts.Detect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
