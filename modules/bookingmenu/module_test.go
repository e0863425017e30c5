package bookingmenu

import (
	"context"
	"testing"

	"github.com/player2player/navmenu/internal/model"
	"github.com/player2player/navmenu/internal/module"
	"github.com/player2player/navmenu/internal/testutil"
	"github.com/player2player/navmenu/internal/testutil/moduleutil"
)

func TestModuleMetadata(t *testing.T) {
	m := New()

	if m.Name() != "bookingmenu" {
		t.Errorf("Name() = %q, want bookingmenu", m.Name())
	}
	if m.Version() == "" {
		t.Error("Version() is empty")
	}
	if m.Description() == "" {
		t.Error("Description() is empty")
	}
	if deps := m.Dependencies(); len(deps) != 0 {
		t.Errorf("Dependencies() = %v, want none", deps)
	}
}

func TestModuleInitRegistersHook(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	bookingDB := testutil.BookingTestDB(t)

	ctx, hooks := moduleutil.TestModuleContext(t, db, bookingDB)
	m := New()
	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if !hooks.HasHandlers(module.HookMenuItemsRender) {
		t.Fatal("no handler registered for menu.items_render")
	}
	if got := hooks.HandlerCount(module.HookMenuItemsRender); got != 1 {
		t.Errorf("HandlerCount = %d, want 1", got)
	}
}

func TestModuleInitRequiresBookingReader(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx, _ := moduleutil.TestModuleContext(t, db, nil)
	if err := New().Init(ctx); err == nil {
		t.Fatal("Init succeeded without a booking reader")
	}
}

func TestModuleShutdownUnregistersHooks(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	bookingDB := testutil.BookingTestDB(t)

	ctx, hooks := moduleutil.TestModuleContext(t, db, bookingDB)
	m := New()
	if err := m.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if hooks.HasHandlers(module.HookMenuItemsRender) {
		t.Error("handler still registered after Shutdown")
	}
}

func TestModuleRenderHookAugmentsMenu(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	bookingDB := testutil.BookingTestDB(t)

	testutil.InsertLocationCategory(t, bookingDB, 1, "Tennis", "")
	testutil.InsertLocation(t, bookingDB, 10, 1, "Downtown", "", model.LocationStatusVisible)
	testutil.InsertServiceCategory(t, bookingDB, 5, "Singles", 1)
	testutil.InsertService(t, bookingDB, 50, 5, "Singles lesson")
	testutil.LinkProviderLocation(t, bookingDB, 7, 10)
	testutil.LinkProviderService(t, bookingDB, 7, 50)

	mctx, hooks := moduleutil.TestModuleContext(t, db, bookingDB)
	if err := New().Init(mctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	render := &model.MenuRenderData{
		Location: model.PrimaryMenuLocation,
		Items:    hostItems(),
	}
	result, err := hooks.Call(context.Background(), module.HookMenuItemsRender, render)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	out, ok := result.(*model.MenuRenderData)
	if !ok {
		t.Fatalf("hook returned %T, want *model.MenuRenderData", result)
	}
	// 3 host + 2 category tops + 2 location items + see all + 1 leaf
	if len(out.Items) != 9 {
		t.Fatalf("len(out.Items) = %d, want 9", len(out.Items))
	}
	if got := itemsByTitle(out.Items, "Tennis"); len(got) != 2 {
		t.Errorf("got %d Tennis items, want 2", len(got))
	}
	if got := itemsByTitle(out.Items, "Singles"); len(got) != 1 {
		t.Errorf("got %d Singles leaves, want 1", len(got))
	}
}

func TestModuleRenderHookIgnoresOtherPayloads(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	bookingDB := testutil.BookingTestDB(t)

	mctx, hooks := moduleutil.TestModuleContext(t, db, bookingDB)
	if err := New().Init(mctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	result, err := hooks.Call(context.Background(), module.HookMenuItemsRender, "not a render payload")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result != "not a render payload" {
		t.Errorf("payload changed to %v", result)
	}
}
