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

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestGetSpaceByID_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewGrowSpaceRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"space_id", "space_name", "category"}).
		AddRow("space-1", "Tent A", models.CategoryVega)

	mock.ExpectQuery(`SELECT`).
		WithArgs("space-1").
		WillReturnRows(rows)

	space, err := repo.GetSpaceByID("space-1")

	require.NoError(t, err)
	assert.Equal(t, "space-1", space.SpaceID)
	assert.Equal(t, "Tent A", space.SpaceName)
	assert.Equal(t, models.CategoryVega, space.Category)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSpaceByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewGrowSpaceRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT`).
		WithArgs("space-x").
		WillReturnError(sql.ErrNoRows)

	space, err := repo.GetSpaceByID("space-x")

	assert.Error(t, err)
	assert.Nil(t, space)
	assert.Contains(t, err.Error(), "grow space not found")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllSpaces_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	repo := NewGrowSpaceRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"space_id", "space_name", "category"}).
		AddRow("space-1", "Tent A", models.CategoryVega).
		AddRow("space-2", "Tent B", models.CategoryFlora).
		AddRow("space-3", "Dry Box", models.CategoryDrying)

	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	spaces, err := repo.GetAllSpaces()

	require.NoError(t, err)
	assert.Len(t, spaces, 3)
	assert.Equal(t, "Tent B", spaces[1].SpaceName)

	require.NoError(t, mock.ExpectationsWereMet())
}
