package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/database"
)

func TestOpen_SQLiteFileCreatesDirectoryAndSchema(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "events.db")

	// Act
	db, err := database.Open(&config.DatabaseConfig{Type: "sqlite", Path: path})

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	assert.FileExists(t, path)
	assert.True(t, db.Migrator().HasTable("event_log"))
	assert.True(t, db.Migrator().HasColumn("event_log", "payload"))
}

func TestNewConnection_RejectsUnknownType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.ErrorContains(t, err, "unsupported database type")
}

func TestOpen_SQLiteFileUsesWriteAheadLog(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "events.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)

	assert.Equal(t, "wal", mode)
}
