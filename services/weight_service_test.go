package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvisxd/calorie-tracker-api/models"
)

func seedWeightLog(t *testing.T, svc *WeightService, userID, date string, weight float64) *models.WeightLog {
	t.Helper()

	entry, err := svc.Create(context.Background(), models.CreateWeightLogInput{
		UserID:   userID,
		WeightKg: &weight,
		LogDate:  date,
	})
	require.NoError(t, err)
	return entry
}

func TestCreateWeightLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	ctx := context.Background()
	user := seedUser(t, db, "jane@example.com")

	weight := 80.5
	entry, err := svc.Create(ctx, models.CreateWeightLogInput{
		UserID:   user.ID.String(),
		WeightKg: &weight,
		LogDate:  "2026-08-30",
	})
	require.NoError(t, err)
	assert.Equal(t, 80.5, entry.WeightKg)
	assert.Equal(t, "2026-08-30", entry.LogDate)

	zero := 0.0
	_, err = svc.Create(ctx, models.CreateWeightLogInput{UserID: user.ID.String(), WeightKg: &zero})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, models.CreateWeightLogInput{UserID: user.ID.String()})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, models.CreateWeightLogInput{
		UserID: "f2b2a2a6-8a61-4dc4-b0b6-000000000000", WeightKg: &weight,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListWeightLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	user := seedUser(t, db, "jane@example.com")
	id := user.ID.String()

	seedWeightLog(t, svc, id, "2026-08-01", 82)
	seedWeightLog(t, svc, id, "2026-08-15", 81)
	seedWeightLog(t, svc, id, "2026-08-29", 80)

	logs, total, err := svc.List(context.Background(), models.WeightLogFilter{
		UserID: id, Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	// newest first
	assert.Equal(t, "2026-08-29", logs[0].LogDate)

	logs, total, err = svc.List(context.Background(), models.WeightLogFilter{
		UserID: id, StartDate: "2026-08-10", EndDate: "2026-08-20", Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, 81.0, logs[0].WeightKg)

	_, _, err = svc.List(context.Background(), models.WeightLogFilter{})
	assert.True(t, IsValidation(err))
}

func TestUpdateAndDeleteWeightLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	ctx := context.Background()
	user := seedUser(t, db, "jane@example.com")

	entry := seedWeightLog(t, svc, user.ID.String(), "2026-08-30", 80)

	weight := 79.4
	updated, err := svc.Update(ctx, entry.ID.String(), models.UpdateWeightLogInput{WeightKg: &weight})
	require.NoError(t, err)
	assert.Equal(t, 79.4, updated.WeightKg)

	_, err = svc.Update(ctx, entry.ID.String(), models.UpdateWeightLogInput{})
	assert.True(t, IsValidation(err))

	require.NoError(t, svc.Delete(ctx, entry.ID.String()))
	_, err = svc.Get(ctx, entry.ID.String())
	assert.ErrorIs(t, err, ErrWeightLogNotFound)
}

func TestWeightProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	user := seedUser(t, db, "jane@example.com")
	id := user.ID.String()

	seedWeightLog(t, svc, id, "2026-08-01", 84)
	seedWeightLog(t, svc, id, "2026-08-15", 82.5)
	seedWeightLog(t, svc, id, "2026-08-29", 81)

	summary, err := svc.Progress(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 84.0, summary.StartingWeight)
	assert.Equal(t, 81.0, summary.CurrentWeight)
	assert.Equal(t, -3.0, summary.WeightChange)
	// -3 / 84 * 100 = -3.5714... -> -3.57
	assert.Equal(t, -3.57, summary.WeightChangePercentage)
	// 28 days = 4 weeks, -3 / 4 = -0.75
	assert.Equal(t, -0.75, summary.AverageWeeklyChange)
	assert.Equal(t, 3, summary.LogsCount)
	assert.Equal(t, "2026-08-01", summary.FirstLogDate)
	assert.Equal(t, "2026-08-29", summary.LastLogDate)
}

func TestWeightProgressSingleLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	user := seedUser(t, db, "jane@example.com")

	seedWeightLog(t, svc, user.ID.String(), "2026-08-30", 80)

	summary, err := svc.Progress(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.WeightChange)
	assert.Equal(t, 1, summary.LogsCount)
}

func TestWeightProgressNoLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db, nop())
	user := seedUser(t, db, "jane@example.com")

	_, err := svc.Progress(context.Background(), user.ID.String())
	assert.ErrorIs(t, err, ErrNoWeightLogs)
}
