package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

func TestGetActiveVarietyIDs_Distinct(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPlantRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"variety_id"}).
		AddRow("var-1").
		AddRow("var-2")

	mock.ExpectQuery(`SELECT DISTINCT`).
		WithArgs("space-1", models.PlantActive).
		WillReturnRows(rows)

	ids, err := repo.GetActiveVarietyIDs("space-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"var-1", "var-2"}, ids)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveVarietyIDs_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewPlantRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT DISTINCT`).
		WithArgs("space-1", models.PlantActive).
		WillReturnRows(sqlmock.NewRows([]string{"variety_id"}))

	ids, err := repo.GetActiveVarietyIDs("space-1")

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetVarietyByID_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewVarietyRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"variety_id", "variety_name", "vega_weeks", "flora_weeks"}).
		AddRow("var-1", "Northern Lights", 4, 8)

	mock.ExpectQuery(`SELECT`).
		WithArgs("var-1").
		WillReturnRows(rows)

	variety, err := repo.GetVarietyByID("var-1")

	require.NoError(t, err)
	require.NotNil(t, variety)
	assert.Equal(t, "Northern Lights", variety.VarietyName)
	assert.Equal(t, 4, variety.VegaWeeks)
}

func TestGetVarietyByID_UnknownReturnsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewVarietyRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT`).
		WithArgs("var-x").
		WillReturnError(sql.ErrNoRows)

	variety, err := repo.GetVarietyByID("var-x")

	require.NoError(t, err)
	assert.Nil(t, variety)
}
