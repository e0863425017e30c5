package model

import "testing"

func TestMenuItemClasses(t *testing.T) {
	item := MenuItem{}

	if item.HasClass(CSSClassHasChildren) {
		t.Error("fresh item reports has-children")
	}

	item.AddClass(CSSClassHasChildren)
	if !item.HasClass(CSSClassHasChildren) {
		t.Error("class missing after AddClass")
	}

	item.AddClass(CSSClassHasChildren)
	if len(item.CSSClasses) != 1 {
		t.Errorf("classes = %v, want no duplicates", item.CSSClasses)
	}
}

func TestSessionUserCapabilities(t *testing.T) {
	anon := SessionUser{}
	if anon.HasCapability(CapProvider) || anon.IsAdministrator() {
		t.Error("anonymous user reports capabilities")
	}

	admin := SessionUser{Exists: true, Capabilities: []string{CapAdministrator, CapProvider}}
	if !admin.IsAdministrator() {
		t.Error("administrator capability not detected")
	}
	if !admin.HasCapability(CapProvider) {
		t.Error("provider capability not detected")
	}
	if admin.HasCapability(CapCustomer) {
		t.Error("customer capability reported without grant")
	}
}
