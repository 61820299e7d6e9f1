package modals

import (
	"strings"
	"testing"

	"github.com/recallhq/recall/internal/config"
)

func testSettingsState(notifications bool) *SettingsState {
	themes := []string{"dark-purple", "nord"}
	display := []string{"Dark Purple", "Nord"}
	profile := config.Profile{Name: "Ada Lovelace", Email: "ada@example.com"}
	return NewSettingsState(themes, display, "dark-purple", profile, notifications, "/home/ada/.recall/exports")
}

func TestNewSettingsState(t *testing.T) {
	s := testSettingsState(true)

	if s.GetSelectedTheme() != "dark-purple" {
		t.Errorf("expected current theme selected, got %q", s.GetSelectedTheme())
	}
	if s.ThemeChanged() {
		t.Error("theme should not read as changed before editing")
	}
	if !s.GetNotificationsEnabled() {
		t.Error("expected notifications enabled from constructor")
	}
	if s.GetExportDir() != "/home/ada/.recall/exports" {
		t.Errorf("unexpected export dir %q", s.GetExportDir())
	}
}

func TestSettingsState_ThemeChanged(t *testing.T) {
	s := testSettingsState(false)

	s.selectedTheme = "nord"
	if !s.ThemeChanged() {
		t.Error("expected ThemeChanged after editing the bound value")
	}
}

func TestSettingsState_GetProfile_Trims(t *testing.T) {
	s := testSettingsState(false)

	s.profileName = "  Ada Lovelace  "
	s.profileEmail = " ada@example.com "

	p := s.GetProfile()
	if p.Name != "Ada Lovelace" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if p.Email != "ada@example.com" {
		t.Errorf("expected trimmed email, got %q", p.Email)
	}
}

func TestSettingsState_SyncFromMultiSelect(t *testing.T) {
	s := testSettingsState(true)

	s.generalOptions = nil
	s.syncFromMultiSelect()
	if s.GetNotificationsEnabled() {
		t.Error("expected notifications off after deselecting")
	}

	s.generalOptions = []string{optionNotifications}
	s.syncFromMultiSelect()
	if !s.GetNotificationsEnabled() {
		t.Error("expected notifications on after selecting")
	}
}

func TestSettingsState_PreferredWidth(t *testing.T) {
	s := testSettingsState(false)

	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("expected wide modal, got %d", s.PreferredWidth())
	}
}

func TestSettingsState_Render(t *testing.T) {
	s := testSettingsState(false)
	rendered := s.Render()

	if !strings.Contains(rendered, "Settings") {
		t.Error("should contain title")
	}
	if !strings.Contains(rendered, "Theme") {
		t.Error("should contain the theme field")
	}
}
