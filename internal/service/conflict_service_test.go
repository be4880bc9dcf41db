package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

func sheet(batch string, schedule models.Schedule) models.DateSheet {
	return models.DateSheet{Batch: batch, Schedule: schedule}
}

func TestDetectConflictsExample(t *testing.T) {
	sheets := []models.DateSheet{
		sheet("A/CS/22", models.Schedule{"2025-06-10": "DLD"}),
		sheet("A/CE/22", models.Schedule{"2025-06-10": "DLD"}),
		sheet("B/CS/23", models.Schedule{"2025-06-10": "DLD"}),
	}

	conflicts := DetectConflicts(sheets)

	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ScheduleConflict{BatchA: "A/CS/22", BatchB: "A/CE/22", Date: "2025-06-10", Subject: "DLD"}, conflicts[0])
}

func TestConflictsBetweenSymmetric(t *testing.T) {
	a := sheet("A/CS/22", models.Schedule{"2025-06-12": "OOP", "2025-06-10": "DLD", "2025-06-11": "Maths"})
	b := sheet("A/AI/22", models.Schedule{"2025-06-10": "DLD", "2025-06-11": "Physics", "2025-06-12": "OOP"})

	type key struct{ date, subject string }
	collect := func(cs []models.ScheduleConflict) []key {
		out := make([]key, 0, len(cs))
		for _, c := range cs {
			out = append(out, key{c.Date, c.Subject})
		}
		return out
	}

	ab := collect(ConflictsBetween(a, b))
	ba := collect(ConflictsBetween(b, a))
	assert.Equal(t, ab, ba)
	assert.Equal(t, []key{{"2025-06-10", "DLD"}, {"2025-06-12", "OOP"}}, ab)
}

func TestConflictsBetweenNeverSelf(t *testing.T) {
	a := sheet("A/CS/22", models.Schedule{"2025-06-10": "DLD"})
	assert.Empty(t, ConflictsBetween(a, a))
	assert.Empty(t, DetectConflicts([]models.DateSheet{a, a}))
}

func TestConflictsBetweenSameDepartmentIgnored(t *testing.T) {
	a := sheet("A/CS/22", models.Schedule{"2025-06-10": "DLD"})
	b := sheet("B/CS/22", models.Schedule{"2025-06-10": "DLD"})
	assert.Empty(t, ConflictsBetween(a, b))
}

func TestConflictsBetweenPreparationDay(t *testing.T) {
	a := sheet("A/CS/22", models.Schedule{"2025-06-10": models.PreparationDay, "2025-06-11": ""})
	b := sheet("A/CE/22", models.Schedule{"2025-06-10": models.PreparationDay, "2025-06-11": ""})
	assert.Empty(t, ConflictsBetween(a, b))
}

func TestConflictsBetweenWholeLabelOnly(t *testing.T) {
	a := sheet("A/CS/22", models.Schedule{"2025-06-10": "DLD/OOP", "2025-06-11": "DLD/OOP"})
	b := sheet("A/CE/22", models.Schedule{"2025-06-10": "DLD", "2025-06-11": "DLD/OOP"})

	conflicts := ConflictsBetween(a, b)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "2025-06-11", conflicts[0].Date)
}

func TestDetectConflictsSkipsMalformed(t *testing.T) {
	sheets := []models.DateSheet{
		sheet("BROKEN", models.Schedule{"2025-06-10": "DLD"}),
		sheet("A/CE/22", models.Schedule{"2025-06-10": "DLD"}),
	}
	assert.Empty(t, DetectConflicts(sheets))
}

type stubSheetLister struct {
	sheets []models.DateSheet
	err    error
}

func (s stubSheetLister) List(context.Context) ([]models.DateSheet, error) {
	return s.sheets, s.err
}

func TestConflictServiceDetect(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	metrics := NewMetricsService()
	svc := NewConflictService(stubSheetLister{sheets: []models.DateSheet{
		sheet("A/CS/22", models.Schedule{"2025-06-10": "DLD", "2025-06-11": "OOP"}),
		sheet("A/CE/22", models.Schedule{"2025-06-10": "DLD", "2025-06-11": "OOP"}),
	}}, metrics, zap.New(core))

	report, err := svc.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, "A/CS/22", report.Conflicts[0].BatchA)
	assert.Equal(t, 2, logs.FilterMessage("schedule conflict detected").Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.conflicts))
}

func TestConflictServiceDetectStoreError(t *testing.T) {
	svc := NewConflictService(stubSheetLister{err: errors.New("db down")}, nil, nil)
	_, err := svc.Detect(context.Background())
	require.ErrorIs(t, err, appErrors.ErrInternal)
}
