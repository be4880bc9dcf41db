package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/storage"
)

type seatingServiceMock struct {
	generateErr error
	gotEdit     dto.EditSeatRequest
}

func (m *seatingServiceMock) Generate(_ context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &dto.SeatingPlanResponse{
		Plan:    &models.SeatingPlan{ID: "plan-1", Date: req.Date},
		Summary: dto.SeatingSummary{Eligible: len(req.Students), Seated: len(req.Students)},
	}, nil
}

func (m *seatingServiceMock) Get(_ context.Context, id string) (*dto.SeatingPlanResponse, error) {
	if id != "plan-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
	}
	return &dto.SeatingPlanResponse{Plan: &models.SeatingPlan{ID: id}}, nil
}

func (m *seatingServiceMock) Reports(context.Context, string) ([]models.RoomReport, error) {
	return []models.RoomReport{{RoomNo: 202, Seated: 3}}, nil
}

func (m *seatingServiceMock) EditSeat(_ context.Context, id string, req dto.EditSeatRequest) (*dto.SeatingPlanResponse, error) {
	m.gotEdit = req
	return &dto.SeatingPlanResponse{Plan: &models.SeatingPlan{ID: id}}, nil
}

type exportServiceMock struct {
	path string
}

func (m *exportServiceMock) Export(_ context.Context, planID string, req dto.ExportRequest) (*dto.ExportResult, error) {
	return &dto.ExportResult{FileName: "attendance.csv", Token: "tok", URL: "/api/v1/exports/tok"}, nil
}

func (m *exportServiceMock) Open(token string) (*os.File, storage.Ticket, error) {
	if token != "tok" {
		return nil, storage.Ticket{}, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}
	file, err := os.Open(m.path)
	if err != nil {
		return nil, storage.Ticket{}, err
	}
	return file, storage.Ticket{ID: "plan-1", Path: "attendance_2025-06-10_room-202.csv"}, nil
}

func newSeatingRouter(seating *seatingServiceMock, exports *exportServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSeatingHandler(seating, exports)
	router := gin.New()
	router.POST("/seating-plans", handler.Generate)
	router.GET("/seating-plans/:id", handler.Get)
	router.GET("/seating-plans/:id/reports", handler.Reports)
	router.PUT("/seating-plans/:id/seats", handler.EditSeat)
	router.POST("/seating-plans/:id/exports", handler.Export)
	router.GET("/exports/:token", handler.Download)
	return router
}

func TestSeatingHandlerGenerate(t *testing.T) {
	seating := &seatingServiceMock{}
	handler := NewSeatingHandler(seating, &exportServiceMock{})

	w := postJSON(t, handler.Generate, dto.GenerateSeatingRequest{
		Date:     "2025-06-10",
		Students: []dto.StudentInput{{ID: "1", Name: "Ali", Gender: "MALE", Batch: "A/CS/22", CourseName: "DLD"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"seated":1`)

	seating.generateErr = appErrors.Clone(appErrors.ErrCapacityExceeded, "1 of 2 students could not be seated")
	w = postJSON(t, handler.Generate, dto.GenerateSeatingRequest{Date: "2025-06-10"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CAPACITY_EXCEEDED")
}

func TestSeatingHandlerGetAndEdit(t *testing.T) {
	seating := &seatingServiceMock{}
	router := newSeatingRouter(seating, &exportServiceMock{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/seating-plans/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/seating-plans/plan-1/reports", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"room_no":202`)

	req := httptest.NewRequest(http.MethodPut, "/seating-plans/plan-1/seats", stringsReader(`{"gender":"MALE","roomNo":202,"row":1,"column":2,"seat":1}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, seating.gotEdit.Column)
	assert.Nil(t, seating.gotEdit.Student)
}

func TestSeatingHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,ID\n"), 0o600))
	router := newSeatingRouter(&seatingServiceMock{}, &exportServiceMock{path: path})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/tok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_2025-06-10_room-202.csv")
	assert.Equal(t, "Name,ID\n", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/forged", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
