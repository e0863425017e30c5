// Package booking reads the external booking/scheduling database.
// The booking store is owned by another system; this package issues
// read-only queries against its prefixed tables and never writes.
package booking

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for the booking store

	"github.com/player2player/navmenu/internal/model"
)

// DefaultTablePrefix is the table prefix used by the booking plugin's schema.
const DefaultTablePrefix = "wp_amelia_"

// Reader reads locations, location categories, and service categories
// from the booking database.
type Reader struct {
	db     *sql.DB
	prefix string // Table prefix (e.g., "wp_amelia_")
}

// NewReader opens the booking database and returns a reader for it.
func NewReader(dsn string, tablePrefix string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening booking database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to booking database: %w", err)
	}

	return NewReaderWithDB(db, tablePrefix), nil
}

// NewReaderWithDB wraps an existing database handle. Useful for tests,
// which run the booking schema on SQLite.
func NewReaderWithDB(db *sql.DB, tablePrefix string) *Reader {
	if tablePrefix == "" {
		tablePrefix = DefaultTablePrefix
	}
	return &Reader{db: db, prefix: tablePrefix}
}

// Close closes the booking database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// LocationCategories returns all location categories ordered by name.
func (r *Reader) LocationCategories(ctx context.Context) ([]model.LocationCategory, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, landing
		FROM %slocations_categories
		ORDER BY name
	`, r.prefix)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying location categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.LocationCategory
	for rows.Next() {
		var c model.LocationCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Landing); err != nil {
			return nil, fmt.Errorf("scanning location category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location categories: %w", err)
	}
	return categories, nil
}

// VisibleLocations returns all visible locations ordered by category then
// name. The full set is fetched in one query; callers filter per category
// in memory.
func (r *Reader) VisibleLocations(ctx context.Context) ([]model.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, landing, locationCategoryId
		FROM %slocations
		WHERE status = ?
		ORDER BY locationCategoryId, name
	`, r.prefix)

	rows, err := r.db.QueryContext(ctx, query, model.LocationStatusVisible)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var locations []model.Location
	for rows.Next() {
		l := model.Location{Status: model.LocationStatusVisible}
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Landing, &l.LocationCategoryID); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return locations, nil
}

// ServiceCategories returns the distinct service categories reachable
// from a location through its providers, ordered by stored position.
// A provider/service/category combination may be reachable via multiple
// paths, hence the DISTINCT.
func (r *Reader) ServiceCategories(ctx context.Context, locationID int64) ([]model.ServiceCategory, error) {
	// position is selected so that ORDER BY stays valid under DISTINCT;
	// a category row has a single position, so dedup semantics are unchanged.
	query := fmt.Sprintf(`
		SELECT DISTINCT c.name, c.slug, c.position
		FROM %[1]sproviders_to_locations pl
		INNER JOIN %[1]sproviders_to_services ps ON pl.userId = ps.userId
		INNER JOIN %[1]sservices s ON s.id = ps.serviceId
		INNER JOIN %[1]scategories c ON c.id = s.categoryId
		WHERE pl.locationId = ?
		ORDER BY c.position
	`, r.prefix)

	rows, err := r.db.QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("querying service categories for location %d: %w", locationID, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.ServiceCategory
	for rows.Next() {
		var c model.ServiceCategory
		var position int
		if err := rows.Scan(&c.Name, &c.Slug, &position); err != nil {
			return nil, fmt.Errorf("scanning service category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service categories: %w", err)
	}
	return categories, nil
}
