package bookingmenu

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/player2player/navmenu/internal/model"
)

// homeURL is the fallback destination for the personalized bookings link.
const homeURL = "/"

// syntheticIDBase keeps generated ids above any realistic real menu item id.
const syntheticIDBase int64 = 1_000_000

// Positions of the two anchor branches in the host's primary menu. The
// host guarantees the search anchor at index 1 and the booking anchor at
// index 2; menus shorter than that are left untouched.
const (
	searchAnchorIndex  = 1
	bookingAnchorIndex = 2
)

// Source is the slice of the booking store the builder reads.
// *booking.Reader satisfies it.
type Source interface {
	LocationCategories(ctx context.Context) ([]model.LocationCategory, error)
	VisibleLocations(ctx context.Context) ([]model.Location, error)
	ServiceCategories(ctx context.Context, locationID int64) ([]model.ServiceCategory, error)
}

// Builder assembles the booking menu hierarchy and splices it into the
// host's flat menu item list. All state is scoped to a single Augment
// call; a Builder is safe for concurrent use.
type Builder struct {
	source       Source
	menuLocation string
	logoutURL    func(returnTo string) string
	logger       *slog.Logger
}

// NewBuilder creates a menu tree builder.
func NewBuilder(source Source, menuLocation string, logoutURL func(string) string, logger *slog.Logger) *Builder {
	if menuLocation == "" {
		menuLocation = model.PrimaryMenuLocation
	}
	return &Builder{
		source:       source,
		menuLocation: menuLocation,
		logoutURL:    logoutURL,
		logger:       logger,
	}
}

// idAllocator hands out synthetic menu item ids. Ids are allocated from a
// monotonic counter scoped to one generation pass, so they are pairwise
// distinct, deterministic for identical inputs, and never collide with
// real item ids (which stay below syntheticIDBase).
type idAllocator struct {
	next int64
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: syntheticIDBase}
}

func (a *idAllocator) alloc() int64 {
	a.next++
	return a.next
}

// newItem builds a synthetic menu item with the platform's fixed display
// defaults.
func newItem(ids *idAllocator, title, url string, order int, parentID int64) model.MenuItem {
	return model.MenuItem{
		ID:       ids.alloc(),
		Title:    title,
		URL:      url,
		Order:    order,
		ParentID: parentID,
		Target:   model.TargetSelf,
		Status:   model.StatusPublished,
	}
}

// Augment returns the menu item list with the booking hierarchy attached.
// Menus at any other location are returned unchanged without touching the
// booking store.
func (b *Builder) Augment(ctx context.Context, data *model.MenuRenderData) ([]model.MenuItem, error) {
	if data.Location != b.menuLocation {
		return data.Items, nil
	}

	if len(data.Items) <= bookingAnchorIndex {
		b.logger.Warn("menu too short for booking augmentation, leaving unchanged",
			"location", data.Location,
			"items", len(data.Items),
		)
		return data.Items, nil
	}

	items := slices.Clone(data.Items)
	searchAnchorID := items[searchAnchorIndex].ID
	bookingAnchorID := items[bookingAnchorIndex].ID

	categories, err := b.source.LocationCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching location categories: %w", err)
	}
	locations, err := b.source.VisibleLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching locations: %w", err)
	}

	if len(categories) > 0 {
		items[searchAnchorIndex].AddClass(model.CSSClassHasChildren)
		items[bookingAnchorIndex].AddClass(model.CSSClassHasChildren)
	}

	ids := newIDAllocator()
	order := 1

	for _, category := range categories {
		top := newItem(ids, category.Name, categoryURL(category), order, searchAnchorID)
		order++
		topBooking := newItem(ids, category.Name, categoryURL(category), order, bookingAnchorID)
		order++

		categoryLocations := locationsOfCategory(locations, category.ID)
		if len(categoryLocations) > 0 {
			top.AddClass(model.CSSClassHasChildren)
			topBooking.AddClass(model.CSSClassHasChildren)
		}
		items = append(items, top, topBooking)

		items, err = b.appendLocations(ctx, items, top.ID, topBooking.ID, ids, categoryLocations)
		if err != nil {
			return nil, err
		}
	}

	items = b.appendUserMenu(items, ids, order, data.User)

	return items, nil
}

// appendLocations builds the location tier of one category under both
// anchor branches, plus the service category leaf tier under the search
// branch. Sibling order restarts at 1 for every category.
func (b *Builder) appendLocations(ctx context.Context, items []model.MenuItem, searchParentID, bookingParentID int64, ids *idAllocator, locations []model.Location) ([]model.MenuItem, error) {
	order := 1
	for _, location := range locations {
		search := newItem(ids, location.Name, locationURL(location, "/coaches/"), order, searchParentID)
		order++
		booking := newItem(ids, location.Name, locationURL(location, "/sports/"), order, bookingParentID)
		order++

		serviceCategories, err := b.source.ServiceCategories(ctx, location.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching service categories for location %d: %w", location.ID, err)
		}

		// The leaf tier hangs off the search branch only.
		if len(serviceCategories) > 0 {
			search.AddClass(model.CSSClassHasChildren)
		}
		items = append(items, search, booking)

		if len(serviceCategories) > 0 {
			items = append(items, newItem(ids, "see all", "/coaches/"+location.Slug, order, search.ID))
			order++
		}
		for _, sc := range serviceCategories {
			items = append(items, newItem(ids, sc.Name, "/coaches/"+location.Slug+"/"+sc.Slug, order, search.ID))
			order++
		}
	}
	return items, nil
}

// appendUserMenu adds the personalized branch for authenticated
// non-administrator visitors, continuing the top-level order counter.
func (b *Builder) appendUserMenu(items []model.MenuItem, ids *idAllocator, order int, user model.SessionUser) []model.MenuItem {
	if !user.Exists || user.IsAdministrator() {
		return items
	}

	welcome := newItem(ids, "welcome "+user.DisplayName, "", order, model.RootParentID)
	order++
	welcome.AddClass(model.CSSClassHasChildren)
	items = append(items, welcome)

	bookingsURL := homeURL
	switch resolveRole(user) {
	case roleProvider:
		bookingsURL = "/coach-panel"
	case roleCustomer:
		bookingsURL = "/customer-panel"
	}

	items = append(items, newItem(ids, "My bookings", bookingsURL, order, welcome.ID))
	order++
	items = append(items, newItem(ids, "Logout", b.logoutURL(homeURL), order, welcome.ID))

	return items
}

// categoryURL resolves a category's top item URL: the landing override
// when present, otherwise empty (non-navigable parent).
func categoryURL(c model.LocationCategory) string {
	if c.Landing.Valid && c.Landing.String != "" {
		return "/" + c.Landing.String
	}
	return ""
}

// locationURL resolves a location item URL: the landing override when
// present, otherwise the branch prefix followed by the location slug.
func locationURL(l model.Location, prefix string) string {
	if l.Landing.Valid && l.Landing.String != "" {
		return "/" + l.Landing.String
	}
	return prefix + l.Slug
}

// locationsOfCategory filters the pre-fetched location set down to one
// category. The full set is fetched once per pass and threaded through
// explicitly.
func locationsOfCategory(locations []model.Location, categoryID int64) []model.Location {
	var result []model.Location
	for _, l := range locations {
		if l.LocationCategoryID == categoryID {
			result = append(result, l)
		}
	}
	return result
}
