package helpers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/architect-tracker/internal/infrastructure/database"
)

// SharedTestDB is the event log database shared by the BDD scenarios
var SharedTestDB *gorm.DB

// NewTestDB opens a migrated in-memory event log database owned by t
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to create test event log")
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}

// InitializeSharedTestDB opens the shared database once, from TestMain
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties the event log between scenarios
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	return SharedTestDB.Exec("DELETE FROM event_log").Error
}

// CloseSharedTestDB closes the shared database after the suite
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
