package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

func TestGetActiveCycle_SingleVariety(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewCycleRepository(db, zap.NewNop())

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	floraStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"cycle_id", "space_id", "variety_id", "start_date", "flora_start_date", "cloning_start_date", "status",
	}).AddRow("cycle-1", "space-1", "var-1", start, floraStart, nil, models.CycleActive)

	mock.ExpectQuery(`SELECT`).
		WithArgs("space-1", models.CycleActive).
		WillReturnRows(rows)

	cycle, err := repo.GetActiveCycle("space-1")

	require.NoError(t, err)
	require.NotNil(t, cycle)
	assert.Equal(t, "cycle-1", cycle.CycleID)
	require.NotNil(t, cycle.VarietyID)
	assert.Equal(t, "var-1", *cycle.VarietyID)
	assert.Equal(t, start, cycle.StartDate)
	require.NotNil(t, cycle.FloraStartDate)
	assert.Equal(t, floraStart, *cycle.FloraStartDate)
	assert.Nil(t, cycle.CloningStartDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCycle_MultiPlantCycleHasNoVariety(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewCycleRepository(db, zap.NewNop())

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"cycle_id", "space_id", "variety_id", "start_date", "flora_start_date", "cloning_start_date", "status",
	}).AddRow("cycle-2", "space-1", nil, start, nil, nil, models.CycleActive)

	mock.ExpectQuery(`SELECT`).
		WithArgs("space-1", models.CycleActive).
		WillReturnRows(rows)

	cycle, err := repo.GetActiveCycle("space-1")

	require.NoError(t, err)
	require.NotNil(t, cycle)
	assert.Nil(t, cycle.VarietyID)
	assert.Nil(t, cycle.FloraStartDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCycle_NoneIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewCycleRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT`).
		WithArgs("space-1", models.CycleActive).
		WillReturnError(sql.ErrNoRows)

	cycle, err := repo.GetActiveCycle("space-1")

	require.NoError(t, err)
	assert.Nil(t, cycle)

	require.NoError(t, mock.ExpectationsWereMet())
}
