package bookingmenu

import "github.com/player2player/navmenu/internal/model"

// role is the visitor's booking role, resolved once per generation pass
// from the host platform's capability set.
type role int

const (
	roleNone role = iota
	roleAdministrator
	roleProvider
	roleCustomer
)

// resolveRole maps the capability set to a single role. Administrator
// wins over provider, provider over customer, matching the host
// platform's capability precedence.
func resolveRole(u model.SessionUser) role {
	switch {
	case u.HasCapability(model.CapAdministrator):
		return roleAdministrator
	case u.HasCapability(model.CapProvider):
		return roleProvider
	case u.HasCapability(model.CapCustomer):
		return roleCustomer
	default:
		return roleNone
	}
}
