package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingFilesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("Load = %+v, want the defaults", cfg)
	}
	if cfg.Address != "127.0.0.1:6600" {
		t.Fatalf("Address = %q, want %q", cfg.Address, "127.0.0.1:6600")
	}
	if cfg.JumpLines != 24 || cfg.SeekSecs != 5.0 || cfg.UPS != 1.0 {
		t.Fatalf("numbers = %d/%g/%g, want 24/5/1", cfg.JumpLines, cfg.SeekSecs, cfg.UPS)
	}
}

func TestLoad_SettingsOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "mpdash.toml")
	if err := os.WriteFile(path, []byte(`
address = "  10.0.0.5:6601  "
seek_secs = 10.0
cycle = true

[search_fields]
file = true
title = false
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Address != "10.0.0.5:6601" {
		t.Fatalf("Address = %q, want %q", cfg.Address, "10.0.0.5:6601")
	}
	if cfg.SeekSecs != 10.0 {
		t.Fatalf("SeekSecs = %g, want 10", cfg.SeekSecs)
	}
	if !cfg.Cycle {
		t.Fatal("Cycle = false, want true")
	}
	if !cfg.SearchFields.File || cfg.SearchFields.Title {
		t.Fatalf("SearchFields = %+v, want file on and title off", cfg.SearchFields)
	}
	// Keys absent from the file keep their defaults.
	if cfg.JumpLines != 24 {
		t.Fatalf("JumpLines = %d, want 24", cfg.JumpLines)
	}
	if !cfg.SearchFields.Artist || !cfg.SearchFields.Album {
		t.Fatalf("SearchFields = %+v, want artist and album still on", cfg.SearchFields)
	}
	if !reflect.DeepEqual(cfg.Layout, DefaultLayout()) {
		t.Fatal("Layout changed, want the default layout")
	}
}

func TestLoad_ExplicitSettingsMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), "")
	if err == nil {
		t.Fatal("Load returned nil error, want read error")
	}
	if !strings.Contains(err.Error(), "read settings") {
		t.Fatalf("error = %q, want it to mention reading the settings", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpdash.toml")
	if err := os.WriteFile(path, []byte(`address = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path, "")
	if err == nil {
		t.Fatal("Load returned nil error, want parse error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %T, want *config.Error", err)
	}
	if cerr.Path != path {
		t.Fatalf("Path = %q, want %q", cerr.Path, path)
	}
}

func TestLoad_LayoutFromFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(`{Textbox: CurrentTitle}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Layout, Textbox(CurrentTitle())) {
		t.Fatalf("Layout = %+v, want the one-textbox layout", cfg.Layout)
	}
}

func TestLoad_LayoutFlagBeatsSettingsKey(t *testing.T) {
	dir := t.TempDir()
	fromSettings := filepath.Join(dir, "a.yaml")
	fromFlag := filepath.Join(dir, "b.yaml")
	settings := filepath.Join(dir, "mpdash.toml")
	if err := os.WriteFile(fromSettings, []byte(`{Textbox: CurrentArtist}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(fromFlag, []byte(`{Textbox: CurrentAlbum}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(settings, []byte("layout = "+tomlString(fromSettings)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(settings, fromFlag)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Layout, Textbox(CurrentAlbum())) {
		t.Fatalf("Layout = %+v, want the flag's layout", cfg.Layout)
	}
}

func TestLoad_SettingsLayoutKeyMustExist(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "mpdash.toml")
	missing := filepath.Join(dir, "gone.yaml")
	if err := os.WriteFile(settings, []byte("layout = "+tomlString(missing)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(settings, "")
	if err == nil {
		t.Fatal("Load returned nil error, want read error")
	}
	if !strings.Contains(err.Error(), "read layout") {
		t.Fatalf("error = %q, want it to mention reading the layout", err)
	}
}

func TestLoad_DefaultLocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "mpdash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mpdash.toml"), []byte(`jump_lines = 7`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "layout.yaml"), []byte(`{TextboxR: Query}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.JumpLines != 7 {
		t.Fatalf("JumpLines = %d, want 7", cfg.JumpLines)
	}
	if !reflect.DeepEqual(cfg.Layout, TextboxR(Query())) {
		t.Fatalf("Layout = %+v, want the right-aligned query", cfg.Layout)
	}
}

func TestExpandPath_TildeAndAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatal("expandPath returned nil error for blank path, want error")
	}
}

// tomlString quotes a path for embedding in TOML.
func tomlString(path string) string {
	return `"` + strings.ReplaceAll(path, `\`, `\\`) + `"`
}
