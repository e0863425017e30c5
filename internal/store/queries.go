package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/player2player/navmenu/internal/model"
)

// Queries provides access to the host-side database.
type Queries struct {
	db *sql.DB
}

// New creates a new Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// GetMenuByLocation fetches a menu by its placement location.
func (q *Queries) GetMenuByLocation(ctx context.Context, location string) (model.Menu, error) {
	var m model.Menu
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM menus
		WHERE location = ?
	`, location).Scan(&m.ID, &m.Name, &m.Location, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Menu{}, err
	}
	return m, nil
}

// ListMenuItems returns the flat item list of a menu, ordered by position.
func (q *Queries) ListMenuItems(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, parent_id, title, url, target, css_classes, position
		FROM menu_items
		WHERE menu_id = ?
		ORDER BY position, id
	`, menuID)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		var classes string
		if err := rows.Scan(&item.ID, &item.ParentID, &item.Title, &item.URL,
			&item.Target, &classes, &item.Order); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		if classes != "" {
			item.CSSClasses = strings.Fields(classes)
		}
		item.Status = model.StatusPublished
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}
	return items, nil
}

// CreateMenuParams holds the fields for creating a menu.
type CreateMenuParams struct {
	Name     string
	Location string
}

// CreateMenu inserts a new menu and returns it.
func (q *Queries) CreateMenu(ctx context.Context, p CreateMenuParams) (model.Menu, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO menus (name, location, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.Location, now, now)
	if err != nil {
		return model.Menu{}, fmt.Errorf("creating menu: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Menu{}, fmt.Errorf("menu insert id: %w", err)
	}
	return model.Menu{ID: id, Name: p.Name, Location: p.Location, CreatedAt: now, UpdatedAt: now}, nil
}

// CreateMenuItemParams holds the fields for creating a menu item.
type CreateMenuItemParams struct {
	MenuID     int64
	ParentID   int64
	Title      string
	URL        string
	Target     string
	CSSClasses []string
	Position   int
}

// CreateMenuItem inserts a new menu item and returns its id.
func (q *Queries) CreateMenuItem(ctx context.Context, p CreateMenuItemParams) (int64, error) {
	target := p.Target
	if target == "" {
		target = model.TargetSelf
	}
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO menu_items (menu_id, parent_id, title, url, target, css_classes, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.MenuID, p.ParentID, p.Title, p.URL, target, strings.Join(p.CSSClasses, " "), p.Position, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating menu item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("menu item insert id: %w", err)
	}
	return id, nil
}

// CreateEventParams holds the fields for creating an event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts a new event log entry.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) (model.Event, error) {
	if p.Metadata == "" {
		p.Metadata = "{}"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Level, p.Category, p.Message, p.UserID, p.Metadata, p.CreatedAt)
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, fmt.Errorf("event insert id: %w", err)
	}
	return model.Event{
		ID:        id,
		Level:     p.Level,
		Category:  p.Category,
		Message:   p.Message,
		UserID:    p.UserID,
		Metadata:  p.Metadata,
		CreatedAt: p.CreatedAt,
	}, nil
}

// CountEvents returns the number of event log entries at the given level.
func (q *Queries) CountEvents(ctx context.Context, level string) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE level = ?`, level).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}
