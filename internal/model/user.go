package model

// Capability strings granted by the host platform's user subsystem.
const (
	CapAdministrator = "administrator"
	CapProvider      = "booking-provider"
	CapCustomer      = "booking-customer"
)

// SessionUser describes the current visitor as reported by the host
// platform's session subsystem. A zero value is an anonymous visitor.
type SessionUser struct {
	Exists       bool
	DisplayName  string
	Capabilities []string
}

// HasCapability reports whether the user holds the given capability.
func (u SessionUser) HasCapability(cap string) bool {
	for _, c := range u.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether the user holds the administrator capability.
func (u SessionUser) IsAdministrator() bool {
	return u.HasCapability(CapAdministrator)
}
