package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/player2player/navmenu/internal/util"
)

// Default primary menu contents. The items at positions 1 and 2 are the
// anchor branches the booking augmentation attaches to.
var defaultPrimaryItems = []struct {
	Title string
	URL   string
}{
	{"Home", "/"},
	{"Find a Coach", "/coaches"},
	{"Book Now", "/book"},
}

// Seed creates the default primary menu if it does not exist yet.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	const menuName = "Primary Menu"
	location := util.Slugify(menuName)

	_, err := queries.GetMenuByLocation(ctx, location)
	if err == nil {
		slog.Info("primary menu already exists, skipping seed", "location", location)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for primary menu: %w", err)
	}

	menu, err := queries.CreateMenu(ctx, CreateMenuParams{Name: menuName, Location: location})
	if err != nil {
		return fmt.Errorf("creating primary menu: %w", err)
	}

	for pos, item := range defaultPrimaryItems {
		if _, err := queries.CreateMenuItem(ctx, CreateMenuItemParams{
			MenuID:   menu.ID,
			Title:    item.Title,
			URL:      item.URL,
			Position: pos,
		}); err != nil {
			return fmt.Errorf("creating menu item %q: %w", item.Title, err)
		}
	}

	slog.Info("seeded primary menu", "location", location, "items", len(defaultPrimaryItems))
	return nil
}
