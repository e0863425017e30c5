// Package auth exposes the host platform's user boundary: a session-backed
// current-user accessor and the logout URL builder. The platform's real
// authentication flow lives elsewhere; this service only reads its result.
package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/player2player/navmenu/internal/model"
)

// Session keys for the signed-in user.
const (
	sessionKeyDisplayName  = "user_display_name"
	sessionKeyCapabilities = "user_capabilities"
)

// HomeURL is the site's home path, used as the default logout destination.
const HomeURL = "/"

// Users reads the current visitor from the session.
type Users struct {
	sm *scs.SessionManager
}

// NewUsers creates a session-backed user accessor.
func NewUsers(sm *scs.SessionManager) *Users {
	return &Users{sm: sm}
}

// Current returns the visitor attached to the request context.
// An anonymous visitor yields a zero SessionUser.
func (u *Users) Current(ctx context.Context) model.SessionUser {
	name := u.sm.GetString(ctx, sessionKeyDisplayName)
	if name == "" {
		return model.SessionUser{}
	}

	var caps []string
	if raw := u.sm.GetString(ctx, sessionKeyCapabilities); raw != "" {
		caps = strings.Fields(raw)
	}

	return model.SessionUser{
		Exists:       true,
		DisplayName:  name,
		Capabilities: caps,
	}
}

// SignIn records a signed-in user in the session.
func (u *Users) SignIn(ctx context.Context, displayName string, capabilities []string) error {
	if err := u.sm.RenewToken(ctx); err != nil {
		return err
	}
	u.sm.Put(ctx, sessionKeyDisplayName, displayName)
	u.sm.Put(ctx, sessionKeyCapabilities, strings.Join(capabilities, " "))
	return nil
}

// SignOut clears the visitor's session.
func (u *Users) SignOut(ctx context.Context) error {
	return u.sm.Destroy(ctx)
}

// LogoutURL builds the logout URL returning the visitor to the given
// destination afterwards.
func LogoutURL(returnTo string) string {
	if returnTo == "" {
		returnTo = HomeURL
	}
	return "/logout?redirect_to=" + url.QueryEscape(returnTo)
}
