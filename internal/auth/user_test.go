package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/player2player/navmenu/internal/model"
)

// withSession runs fn inside a request wrapped by the session middleware.
func withSession(t *testing.T, sm *scs.SessionManager, fn http.HandlerFunc) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	sm.LoadAndSave(fn).ServeHTTP(rec, req)
}

func TestCurrentAnonymous(t *testing.T) {
	sm := scs.New()
	users := NewUsers(sm)

	withSession(t, sm, func(w http.ResponseWriter, r *http.Request) {
		user := users.Current(r.Context())
		if user.Exists {
			t.Errorf("anonymous visitor = %+v, want zero user", user)
		}
	})
}

func TestSignInAndCurrent(t *testing.T) {
	sm := scs.New()
	users := NewUsers(sm)

	withSession(t, sm, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := users.SignIn(ctx, "John", []string{model.CapProvider}); err != nil {
			t.Fatalf("SignIn: %v", err)
		}

		user := users.Current(ctx)
		if !user.Exists || user.DisplayName != "John" {
			t.Fatalf("Current = %+v, want John", user)
		}
		if !user.HasCapability(model.CapProvider) {
			t.Errorf("capabilities = %v, want provider", user.Capabilities)
		}
	})
}

func TestSignOutClearsUser(t *testing.T) {
	sm := scs.New()
	users := NewUsers(sm)

	withSession(t, sm, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := users.SignIn(ctx, "Ana", []string{model.CapCustomer}); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		if err := users.SignOut(ctx); err != nil {
			t.Fatalf("SignOut: %v", err)
		}
		if user := users.Current(ctx); user.Exists {
			t.Errorf("user after SignOut = %+v, want zero user", user)
		}
	})
}

func TestLogoutURL(t *testing.T) {
	tests := []struct {
		returnTo string
		want     string
	}{
		{"/", "/logout?redirect_to=%2F"},
		{"/coaches", "/logout?redirect_to=%2Fcoaches"},
		{"", "/logout?redirect_to=%2F"},
	}

	for _, tt := range tests {
		if got := LogoutURL(tt.returnTo); got != tt.want {
			t.Errorf("LogoutURL(%q) = %q, want %q", tt.returnTo, got, tt.want)
		}
	}
}
