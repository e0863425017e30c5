// Package model defines domain models and types used throughout the
// application including MenuItem, booking store rows, and the session user.
package model

import "time"

// PrimaryMenuLocation is the menu location the booking augmentation targets.
const PrimaryMenuLocation = "primary-menu"

// RootParentID is the parent id sentinel for top-level menu items.
const RootParentID int64 = 0

// CSSClassHasChildren marks a menu item that has sub-items attached.
const CSSClassHasChildren = "has-children"

// Menu target values
const (
	TargetSelf  = "_self"
	TargetBlank = "_blank"
)

// StatusPublished is the status carried by every synthesized menu item.
const StatusPublished = "publish"

// Menu represents a navigation menu placed at a named location.
type Menu struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItem represents one entry of a flat navigation menu list.
// Parent/child structure is encoded through ParentID references; the
// nesting itself is resolved at render time.
type MenuItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Order       int      `json:"order"`
	ParentID    int64    `json:"parent_id"`
	CSSClasses  []string `json:"css_classes,omitempty"`
	Target      string   `json:"target"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
}

// HasClass reports whether the item carries the given CSS class.
func (m *MenuItem) HasClass(class string) bool {
	for _, c := range m.CSSClasses {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a CSS class if the item does not carry it yet.
func (m *MenuItem) AddClass(class string) {
	if !m.HasClass(class) {
		m.CSSClasses = append(m.CSSClasses, class)
	}
}

// MenuRenderData is the payload passed through the menu.items_render hook.
// Handlers receive the flat item list of the menu being rendered and may
// return it augmented; Location identifies the menu placement being
// rendered and User is the current visitor.
type MenuRenderData struct {
	Location string
	Items    []MenuItem
	User     SessionUser
}
