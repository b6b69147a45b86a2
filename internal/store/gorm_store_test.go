package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *GormStore) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return sqlDB, mock, NewGormStore(db)
}

func TestGormStoreHasPersonaHandle(t *testing.T) {
	sqlDB, mock, repo := setupMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "personas"`).
		WithArgs("default", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.HasPersonaHandle(context.Background(), "default", "alice")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreHasPersonaHandleAbsent(t *testing.T) {
	sqlDB, mock, repo := setupMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "personas"`).
		WithArgs("default", "bob").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.HasPersonaHandle(context.Background(), "default", "bob")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGormStoreBumpMemberCount(t *testing.T) {
	sqlDB, mock, repo := setupMockDB(t)
	defer sqlDB.Close()

	roomID := NewID()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET`).
		WithArgs(1, sqlmock.AnyArg(), roomID, "default").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BumpMemberCount(context.Background(), "default", roomID, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreBumpMemberCountNoMatch(t *testing.T) {
	sqlDB, mock, repo := setupMockDB(t)
	defer sqlDB.Close()

	roomID := NewID()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET`).
		WithArgs(-1, sqlmock.AnyArg(), roomID, "default").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// A decrement against a missing room matches zero rows and is not an
	// error.
	err := repo.BumpMemberCount(context.Background(), "default", roomID, -1)
	require.NoError(t, err)
}

func TestGormStoreRemoveRoomMember(t *testing.T) {
	sqlDB, mock, repo := setupMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "room_members"`).
		WithArgs("default", "room-1", "persona-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RemoveRoomMember(context.Background(), "default", "room-1", "persona-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
