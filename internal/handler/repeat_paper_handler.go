package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type repeatPaperService interface {
	Reschedule(ctx context.Context, req dto.RepeatPaperRequest) (*dto.RepeatPaperResult, error)
	CheckClash(ctx context.Context, req dto.ClashCheckRequest) (*dto.ClashCheckResult, error)
	Process(ctx context.Context, req dto.RepeatPaperBatchRequest) (*dto.RepeatPaperBatchResult, error)
}

// RepeatPaperHandler exposes repeat paper rescheduling endpoints.
type RepeatPaperHandler struct {
	service repeatPaperService
}

// NewRepeatPaperHandler builds a new handler.
func NewRepeatPaperHandler(service repeatPaperService) *RepeatPaperHandler {
	return &RepeatPaperHandler{service: service}
}

// Reschedule godoc
// @Summary Move a repeat paper to the following Saturday
// @Tags RepeatPapers
// @Accept json
// @Produce json
// @Param payload body dto.RepeatPaperRequest true "Repeat paper"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /repeat-papers/reschedule [post]
func (h *RepeatPaperHandler) Reschedule(c *gin.Context) {
	var req dto.RepeatPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid repeat paper payload"))
		return
	}
	result, err := h.service.Reschedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// CheckClash godoc
// @Summary Check a repeat paper against the student's home batch
// @Tags RepeatPapers
// @Accept json
// @Produce json
// @Param payload body dto.ClashCheckRequest true "Clash check"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /repeat-papers/clash-check [post]
func (h *RepeatPaperHandler) CheckClash(c *gin.Context) {
	var req dto.ClashCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid clash check payload"))
		return
	}
	result, err := h.service.CheckClash(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Process godoc
// @Summary Process an uploaded repeat paper sheet
// @Tags RepeatPapers
// @Accept json
// @Produce json
// @Param payload body dto.RepeatPaperBatchRequest true "Repeat paper rows"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /repeat-papers/process [post]
func (h *RepeatPaperHandler) Process(c *gin.Context) {
	var req dto.RepeatPaperBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid repeat paper sheet"))
		return
	}
	result, err := h.service.Process(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{
		"processed": result.Processed,
		"moved":     result.Moved,
		"failed":    result.Failed,
	})
}
