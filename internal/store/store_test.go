package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/player2player/navmenu/internal/model"
	"github.com/player2player/navmenu/internal/store"
	"github.com/player2player/navmenu/internal/testutil"
)

func TestCreateAndGetMenu(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	queries := store.New(db)
	ctx := context.Background()

	created, err := queries.CreateMenu(ctx, store.CreateMenuParams{
		Name:     "Footer Menu",
		Location: "footer-menu",
	})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	if created.ID == 0 {
		t.Error("created menu has zero id")
	}

	got, err := queries.GetMenuByLocation(ctx, "footer-menu")
	if err != nil {
		t.Fatalf("GetMenuByLocation: %v", err)
	}
	if got.ID != created.ID || got.Name != "Footer Menu" {
		t.Errorf("got menu %+v, want id %d name Footer Menu", got, created.ID)
	}
}

func TestGetMenuByLocationMissing(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	_, err := store.New(db).GetMenuByLocation(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}

func TestListMenuItemsOrderingAndClasses(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	queries := store.New(db)
	ctx := context.Background()

	menu, err := queries.CreateMenu(ctx, store.CreateMenuParams{Name: "Main", Location: "main"})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}

	if _, err := queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID: menu.ID, Title: "Second", URL: "/b", Position: 2,
	}); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	firstID, err := queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID: menu.ID, Title: "First", URL: "/a", Position: 1,
		CSSClasses: []string{"has-children", "highlight"},
	})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}

	items, err := queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "First" || items[1].Title != "Second" {
		t.Errorf("items out of position order: %q, %q", items[0].Title, items[1].Title)
	}
	if items[0].ID != firstID {
		t.Errorf("first item id = %d, want %d", items[0].ID, firstID)
	}
	if !items[0].HasClass("has-children") || !items[0].HasClass("highlight") {
		t.Errorf("first item classes = %v, want has-children and highlight", items[0].CSSClasses)
	}
	if items[0].Target != model.TargetSelf {
		t.Errorf("default target = %q, want %q", items[0].Target, model.TargetSelf)
	}
	if items[1].CSSClasses != nil {
		t.Errorf("second item classes = %v, want none", items[1].CSSClasses)
	}
}

func TestSeedCreatesPrimaryMenuOnce(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	queries := store.New(db)
	menu, err := queries.GetMenuByLocation(ctx, model.PrimaryMenuLocation)
	if err != nil {
		t.Fatalf("GetMenuByLocation after seed: %v", err)
	}

	items, err := queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	wantTitles := []string{"Home", "Find a Coach", "Book Now"}
	if len(items) != len(wantTitles) {
		t.Fatalf("got %d seeded items, want %d", len(items), len(wantTitles))
	}
	for i, want := range wantTitles {
		if items[i].Title != want {
			t.Errorf("item %d = %q, want %q", i, items[i].Title, want)
		}
	}

	// A second run must not duplicate the menu.
	if err := store.Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	again, err := queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		t.Fatalf("ListMenuItems after reseed: %v", err)
	}
	if len(again) != len(wantTitles) {
		t.Errorf("got %d items after reseed, want %d", len(again), len(wantTitles))
	}
}

func TestCreateEventDefaults(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	queries := store.New(db)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	event, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level:    model.EventLevelWarning,
		Category: model.EventCategoryMenu,
		Message:  "menu too short",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == 0 {
		t.Error("event has zero id")
	}
	if event.Metadata != "{}" {
		t.Errorf("default metadata = %q, want {}", event.Metadata)
	}
	if event.CreatedAt.Before(before) {
		t.Errorf("created_at %v not defaulted to now", event.CreatedAt)
	}

	count, err := queries.CountEvents(ctx, model.EventLevelWarning)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 1 {
		t.Errorf("CountEvents = %d, want 1", count)
	}
}
