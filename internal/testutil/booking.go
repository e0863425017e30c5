package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/player2player/navmenu/internal/util"
)

// BookingTablePrefix is the table prefix used by booking test fixtures.
const BookingTablePrefix = "wp_amelia_"

// BookingTestDB creates a temporary SQLite database with the booking
// schema applied. Cleanup is registered on the test.
func BookingTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "booking-test.db"))
	if err != nil {
		t.Fatalf("opening booking test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	CreateBookingSchema(t, db)
	return db
}

// CreateBookingSchema creates the booking store tables on the given
// handle. Tests run the schema on SQLite; production reads MySQL.
func CreateBookingSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	statements := []string{
		`CREATE TABLE %slocations_categories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			landing TEXT
		)`,
		`CREATE TABLE %slocations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			landing TEXT,
			locationCategoryId INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'visible'
		)`,
		`CREATE TABLE %sproviders_to_locations (
			userId INTEGER NOT NULL,
			locationId INTEGER NOT NULL
		)`,
		`CREATE TABLE %sproviders_to_services (
			userId INTEGER NOT NULL,
			serviceId INTEGER NOT NULL
		)`,
		`CREATE TABLE %sservices (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			categoryId INTEGER NOT NULL
		)`,
		`CREATE TABLE %scategories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(fmt.Sprintf(stmt, BookingTablePrefix)); err != nil {
			t.Fatalf("creating booking schema: %v", err)
		}
	}
}

// InsertLocationCategory inserts a location category; the slug is derived
// from the name. landing may be empty for no override.
func InsertLocationCategory(t *testing.T, db *sql.DB, id int64, name, landing string) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %slocations_categories (id, name, slug, landing) VALUES (?, ?, ?, ?)`, BookingTablePrefix),
		id, name, util.Slugify(name), nullable(landing),
	)
	if err != nil {
		t.Fatalf("inserting location category %q: %v", name, err)
	}
}

// InsertLocation inserts a location; the slug is derived from the name.
func InsertLocation(t *testing.T, db *sql.DB, id, categoryID int64, name, landing, status string) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %slocations (id, name, slug, landing, locationCategoryId, status) VALUES (?, ?, ?, ?, ?, ?)`, BookingTablePrefix),
		id, name, util.Slugify(name), nullable(landing), categoryID, status,
	)
	if err != nil {
		t.Fatalf("inserting location %q: %v", name, err)
	}
}

// InsertServiceCategory inserts a service category with a stored position.
func InsertServiceCategory(t *testing.T, db *sql.DB, id int64, name string, position int) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %scategories (id, name, slug, position) VALUES (?, ?, ?, ?)`, BookingTablePrefix),
		id, name, util.Slugify(name), position,
	)
	if err != nil {
		t.Fatalf("inserting service category %q: %v", name, err)
	}
}

// InsertService inserts a service belonging to a service category.
func InsertService(t *testing.T, db *sql.DB, id, categoryID int64, name string) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %sservices (id, name, categoryId) VALUES (?, ?, ?)`, BookingTablePrefix),
		id, name, categoryID,
	)
	if err != nil {
		t.Fatalf("inserting service %q: %v", name, err)
	}
}

// LinkProviderLocation associates a provider with a location.
func LinkProviderLocation(t *testing.T, db *sql.DB, providerID, locationID int64) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %sproviders_to_locations (userId, locationId) VALUES (?, ?)`, BookingTablePrefix),
		providerID, locationID,
	)
	if err != nil {
		t.Fatalf("linking provider %d to location %d: %v", providerID, locationID, err)
	}
}

// LinkProviderService associates a provider with a service.
func LinkProviderService(t *testing.T, db *sql.DB, providerID, serviceID int64) {
	t.Helper()

	_, err := db.Exec(
		fmt.Sprintf(`INSERT INTO %sproviders_to_services (userId, serviceId) VALUES (?, ?)`, BookingTablePrefix),
		providerID, serviceID,
	)
	if err != nil {
		t.Fatalf("linking provider %d to service %d: %v", providerID, serviceID, err)
	}
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
