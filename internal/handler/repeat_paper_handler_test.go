package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type repeatPaperServiceMock struct {
	rescheduleErr error
}

func (m *repeatPaperServiceMock) Reschedule(_ context.Context, req dto.RepeatPaperRequest) (*dto.RepeatPaperResult, error) {
	if m.rescheduleErr != nil {
		return nil, m.rescheduleErr
	}
	return &dto.RepeatPaperResult{Batch: req.Batch, CourseName: req.CourseName, FromDate: "2025-06-12", ToDate: "2025-06-14"}, nil
}

func (m *repeatPaperServiceMock) CheckClash(_ context.Context, req dto.ClashCheckRequest) (*dto.ClashCheckResult, error) {
	return &dto.ClashCheckResult{CourseName: req.CourseName, Batch: req.Batch, StudentBatch: req.StudentBatch, Clash: true}, nil
}

func (m *repeatPaperServiceMock) Process(_ context.Context, req dto.RepeatPaperBatchRequest) (*dto.RepeatPaperBatchResult, error) {
	return &dto.RepeatPaperBatchResult{Processed: len(req.Rows), Moved: len(req.Rows)}, nil
}

func postJSON(t *testing.T, handlerFunc gin.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handlerFunc(c)
	return w
}

func TestRepeatPaperHandlerReschedule(t *testing.T) {
	handler := NewRepeatPaperHandler(&repeatPaperServiceMock{})
	w := postJSON(t, handler.Reschedule, dto.RepeatPaperRequest{Batch: "A/CS/22", CourseName: "DLD"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"toDate":"2025-06-14"`)

	missing := NewRepeatPaperHandler(&repeatPaperServiceMock{rescheduleErr: appErrors.Clone(appErrors.ErrNotFound, "course not scheduled")})
	w = postJSON(t, missing.Reschedule, dto.RepeatPaperRequest{Batch: "A/CS/22", CourseName: "DLD"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRepeatPaperHandlerProcessMeta(t *testing.T) {
	handler := NewRepeatPaperHandler(&repeatPaperServiceMock{})
	w := postJSON(t, handler.Process, dto.RepeatPaperBatchRequest{Rows: []dto.RepeatPaperRow{
		{CourseName: "DLD", Batch: "A/CS/22", StudentBatch: "A/CE/22"},
		{CourseName: "OOP", Batch: "A/CS/22", StudentBatch: "A/CE/22"},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Meta map[string]int `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Meta["processed"])
	assert.Equal(t, 2, body.Meta["moved"])
}

func TestRepeatPaperHandlerClashCheck(t *testing.T) {
	handler := NewRepeatPaperHandler(&repeatPaperServiceMock{})
	w := postJSON(t, handler.CheckClash, dto.ClashCheckRequest{CourseName: "DLD", Batch: "A/CS/22", StudentBatch: "A/CE/22"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clash":true`)
}
