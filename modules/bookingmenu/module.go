// Package bookingmenu augments the host's primary navigation menu with a
// three-level hierarchy read from the booking store: location categories,
// their locations, and the service categories reachable from each
// location, plus a personalized branch for signed-in visitors.
package bookingmenu

import (
	"context"
	"fmt"

	"github.com/player2player/navmenu/internal/auth"
	"github.com/player2player/navmenu/internal/model"
	"github.com/player2player/navmenu/internal/module"
)

// Module implements the module.Module interface for the booking menu.
type Module struct {
	module.BaseModule
	ctx     *module.Context
	builder *Builder
}

// New creates a new instance of the booking menu module.
func New() *Module {
	return &Module{
		BaseModule: module.NewBaseModule(
			"bookingmenu",
			"1.0.6",
			"Injects booking locations and categories into the primary navigation menu",
		),
	}
}

// Init initializes the module with the given context.
func (m *Module) Init(ctx *module.Context) error {
	m.ctx = ctx

	if ctx.Booking == nil {
		return fmt.Errorf("bookingmenu requires a booking store reader")
	}

	m.builder = NewBuilder(ctx.Booking, ctx.Config.MenuLocation, auth.LogoutURL, ctx.Logger)

	ctx.Hooks.Register(module.HookMenuItemsRender, module.HookHandler{
		Name:   "bookingmenu_items",
		Module: m.Name(),
		Fn:     m.renderMenuItems,
	})

	ctx.Logger.Info("booking menu module initialized", "menu_location", ctx.Config.MenuLocation)
	return nil
}

// Shutdown performs cleanup when the module is shutting down.
func (m *Module) Shutdown() error {
	if m.ctx != nil {
		m.ctx.Hooks.UnregisterAll(m.Name())
	}
	return nil
}

// renderMenuItems is the menu.items_render hook handler.
func (m *Module) renderMenuItems(ctx context.Context, data any) (any, error) {
	render, ok := data.(*model.MenuRenderData)
	if !ok {
		return data, nil
	}

	items, err := m.builder.Augment(ctx, render)
	if err != nil {
		return nil, err
	}

	render.Items = items
	return render, nil
}
