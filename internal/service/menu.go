// Package service provides business logic on top of the store layer.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/player2player/navmenu/internal/model"
	"github.com/player2player/navmenu/internal/module"
	"github.com/player2player/navmenu/internal/store"
)

// TreeItem is a menu item with its resolved children, ready for rendering.
type TreeItem struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Order      int        `json:"order"`
	CSSClasses []string   `json:"css_classes,omitempty"`
	Target     string     `json:"target"`
	Children   []TreeItem `json:"children"`
}

// MenuService loads menus and runs the render hook chain over their items.
type MenuService struct {
	queries *store.Queries
	hooks   *module.HookRegistry
}

// NewMenuService creates a new MenuService.
func NewMenuService(db *sql.DB, hooks *module.HookRegistry) *MenuService {
	return &MenuService{
		queries: store.New(db),
		hooks:   hooks,
	}
}

// Render loads the menu at the given location, passes its flat item list
// through the menu.items_render hook, and returns the resulting tree.
func (s *MenuService) Render(ctx context.Context, location string, user model.SessionUser) ([]TreeItem, error) {
	menu, err := s.queries.GetMenuByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading menu %q: %w", location, err)
	}

	items, err := s.queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	data := &model.MenuRenderData{
		Location: location,
		Items:    items,
		User:     user,
	}

	result, err := s.hooks.Call(ctx, module.HookMenuItemsRender, data)
	if err != nil {
		return nil, fmt.Errorf("rendering menu %q: %w", location, err)
	}
	if augmented, ok := result.(*model.MenuRenderData); ok {
		items = augmented.Items
	}

	return BuildTree(items), nil
}

// BuildTree converts a flat, parent-linked item list into a nested tree.
// Siblings are ordered by their Order key; ties keep input order.
func BuildTree(items []model.MenuItem) []TreeItem {
	childIDs := make(map[int64][]int64)
	nodes := make(map[int64]model.MenuItem, len(items))
	var rootIDs []int64

	for _, item := range items {
		nodes[item.ID] = item
		if item.ParentID == model.RootParentID {
			rootIDs = append(rootIDs, item.ID)
		} else {
			childIDs[item.ParentID] = append(childIDs[item.ParentID], item.ID)
		}
	}

	var build func(id int64) TreeItem
	build = func(id int64) TreeItem {
		item := nodes[id]
		node := TreeItem{
			ID:         item.ID,
			Title:      item.Title,
			URL:        item.URL,
			Order:      item.Order,
			CSSClasses: item.CSSClasses,
			Target:     item.Target,
			Children:   []TreeItem{},
		}
		for _, childID := range childIDs[id] {
			node.Children = append(node.Children, build(childID))
		}
		sort.SliceStable(node.Children, func(i, j int) bool {
			return node.Children[i].Order < node.Children[j].Order
		})
		return node
	}

	roots := make([]TreeItem, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Order < roots[j].Order
	})

	return roots
}
