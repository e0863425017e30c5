// Package moduleutil provides module-specific test helpers for the navmenu project.
package moduleutil

import (
	"database/sql"
	"testing"

	"github.com/player2player/navmenu/internal/booking"
	"github.com/player2player/navmenu/internal/config"
	"github.com/player2player/navmenu/internal/module"
	"github.com/player2player/navmenu/internal/store"
	"github.com/player2player/navmenu/internal/testutil"
)

// RunMigrations runs all migrations up for the given module.
func RunMigrations(t *testing.T, db *sql.DB, migrations []module.Migration) {
	t.Helper()
	for _, mig := range migrations {
		if err := mig.Up(db); err != nil {
			t.Fatalf("migration %d up: %v", mig.Version, err)
		}
	}
}

// TestModuleContext creates a module.Context for testing. The booking
// reader runs over the given booking database handle (SQLite in tests).
// Returns the context and the hooks registry for verifying hook behavior.
func TestModuleContext(t *testing.T, db, bookingDB *sql.DB) (*module.Context, *module.HookRegistry) {
	t.Helper()
	logger := testutil.TestLogger()
	hooks := module.NewHookRegistry(logger)

	var reader *booking.Reader
	if bookingDB != nil {
		reader = booking.NewReaderWithDB(bookingDB, testutil.BookingTablePrefix)
	}

	return &module.Context{
		DB:      db,
		Store:   store.New(db),
		Booking: reader,
		Logger:  logger,
		Config:  &config.Config{},
		Hooks:   hooks,
	}, hooks
}
