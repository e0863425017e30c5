package model

import "database/sql"

// LocationStatusVisible is the only location status included in menus.
const LocationStatusVisible = "visible"

// LocationCategory is a top-tier grouping of booking locations.
type LocationCategory struct {
	ID      int64
	Name    string
	Slug    string
	Landing sql.NullString // optional pre-built URL override
}

// Location is a bookable place belonging to a LocationCategory.
type Location struct {
	ID                 int64
	Name               string
	Slug               string
	Landing            sql.NullString
	LocationCategoryID int64
	Status             string
}

// ServiceCategory is a leaf-level classification reachable from a
// location through its service providers.
type ServiceCategory struct {
	Name string
	Slug string
}
