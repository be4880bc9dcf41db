package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/jobs"
	"github.com/noah-isme/exam-seating-api/pkg/storage"
)

type planReaderStub struct {
	plan *models.SeatingPlan
}

func (p planReaderStub) Plan(_ context.Context, id string) (*models.SeatingPlan, error) {
	if p.plan == nil || p.plan.ID != id {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
	}
	return p.plan, nil
}

func exportPlan(t *testing.T) *models.SeatingPlan {
	t.Helper()
	room := models.Room{RoomNo: 307, Desks: 4, Columns: 2}
	layout := models.NewLayoutForRoom(room)
	require.NoError(t, layout.Set(models.SeatRef{Row: 0, Column: 0, Seat: 0}, models.Student{ID: "ce-1", Name: "Hina", Batch: "A/CE/22"}))
	require.NoError(t, layout.Set(models.SeatRef{Row: 0, Column: 1, Seat: 1}, models.Student{ID: "cs-1", Name: "Ali", Batch: "A/CS/22"}))
	require.NoError(t, layout.Set(models.SeatRef{Row: 1, Column: 0, Seat: 1}, models.Student{ID: "cs-2", Name: "Bilal", Batch: "A/CS/22"}))
	return &models.SeatingPlan{
		ID:     "plan-9",
		Date:   "2025-06-10",
		Female: []models.RoomAllocation{{Room: room, Gender: models.GenderFemale, Layout: layout}},
	}
}

func newExportServiceForTest(t *testing.T) (*ExportService, *MetricsService) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	metrics := NewMetricsService()
	svc := NewExportService(planReaderStub{plan: exportPlan(t)}, store, signer, ExportConfig{APIPrefix: "/api/v1/", ResultTTL: time.Hour}, metrics, zap.NewNop(), nil, nil)
	return svc, metrics
}

func TestAttendanceSheetGroupsByBatch(t *testing.T) {
	plan := exportPlan(t)
	sheet := AttendanceSheet(plan.Female[0], plan.Date)

	assert.Equal(t, "Attendance Sheet - Room 307 (Female)", sheet.Title)
	assert.Equal(t, []string{"Batch: A/CE/22, A/CS/22", "Date: 2025-06-10"}, sheet.Subtitles)
	assert.Equal(t, []string{"Name", "ID", "Batch", "Sheet No", "Extra Sheet No", "Signature"}, sheet.Headers)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "ce-1", sheet.Rows[0][1])
	assert.Equal(t, "cs-1", sheet.Rows[1][1])
	assert.Equal(t, "cs-2", sheet.Rows[2][1])
	assert.Contains(t, sheet.Footer, invigilatorFooter)
}

func TestSeatingChartGrid(t *testing.T) {
	plan := exportPlan(t)
	sheet := SeatingChart(plan.Female[0], plan.Date)

	assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"ce-1 (A/CE/22)", "", "", "cs-1 (A/CS/22)"}, sheet.Rows[0])
	assert.Equal(t, []string{"", "cs-2 (A/CS/22)", "", ""}, sheet.Rows[1])
	assert.Contains(t, sheet.Subtitles, "Seated: 3 of 8")
	assert.False(t, sheet.Landscape)
}

func TestExportServiceAttendanceCSV(t *testing.T) {
	svc, metrics := newExportServiceForTest(t)

	result, err := svc.Export(context.Background(), "plan-9", dto.ExportRequest{
		Gender: "FEMALE", RoomNo: 307, Kind: dto.ExportKindAttendance, Format: dto.ExportFormatCSV,
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/exports/"))
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.exportsRendered.WithLabelValues("ATTENDANCE", "CSV")))

	file, ticket, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "plan-9", ticket.ID)

	raw, err := io.ReadAll(file)
	require.NoError(t, err)
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Attendance Sheet - Room 307 (Female)"}, records[0])
	assert.Equal(t, []string{"Hina", "ce-1", "A/CE/22", "", "", ""}, records[4])
}

func TestExportServiceSeatingChartPDF(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	result, err := svc.Export(context.Background(), "plan-9", dto.ExportRequest{
		Gender: "FEMALE", RoomNo: 307, Kind: dto.ExportKindSeatingChart, Format: dto.ExportFormatPDF,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)

	file, _, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer file.Close()
	head := make([]byte, 4)
	_, err = io.ReadFull(file, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestExportServiceErrors(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Export(ctx, "plan-9", dto.ExportRequest{Gender: "FEMALE", RoomNo: 307, Kind: "XLSX", Format: dto.ExportFormatCSV})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Export(ctx, "plan-9", dto.ExportRequest{Gender: "MALE", RoomNo: 307, Kind: dto.ExportKindAttendance, Format: dto.ExportFormatCSV})
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Export(ctx, "other", dto.ExportRequest{Gender: "FEMALE", RoomNo: 307, Kind: dto.ExportKindAttendance, Format: dto.ExportFormatCSV})
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	_, _, err = svc.Open("garbage")
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestExportServiceCleanup(t *testing.T) {
	svc, _ := newExportServiceForTest(t)
	_, err := svc.Export(context.Background(), "plan-9", dto.ExportRequest{
		Gender: "FEMALE", RoomNo: 307, Kind: dto.ExportKindAttendance, Format: dto.ExportFormatCSV,
	})
	require.NoError(t, err)

	removed, err := svc.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, removed)

	removed, err = svc.Cleanup(-1)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestExportServiceHandleJob(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	require.NoError(t, svc.HandleJob(context.Background(), jobs.Job{Type: JobExportCleanup}))
	require.Error(t, svc.HandleJob(context.Background(), jobs.Job{Type: "rebuild"}))
}
