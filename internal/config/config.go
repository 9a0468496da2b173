package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mpdash/mpdash/internal/search"
)

const (
	defaultSettingsPath = "~/.config/mpdash/mpdash.toml"
	defaultLayoutPath   = "~/.config/mpdash/layout.yaml"

	defaultAddress   = "127.0.0.1:6600"
	defaultJumpLines = 24
	defaultSeekSecs  = 5.0
	defaultUPS       = 1.0
)

// Config is everything mpdash reads at startup. It is assembled once,
// from defaults, the settings file, and flag overrides, and never
// changes while the program runs.
type Config struct {
	Address          string
	JumpLines        int
	SeekSecs         float64
	UPS              float64
	Cycle            bool
	ClearQueryOnPlay bool
	SearchFields     search.Fields
	Layout           Widget
}

// Error is a configuration problem the user can fix. Path names the
// offending setting or the spot inside the layout tree.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Path, e.Reason)
}

// Default returns the built-in configuration, including the default
// layout.
func Default() Config {
	return Config{
		Address:      defaultAddress,
		JumpLines:    defaultJumpLines,
		SeekSecs:     defaultSeekSecs,
		UPS:          defaultUPS,
		SearchFields: search.Fields{Title: true, Artist: true, Album: true},
		Layout:       DefaultLayout(),
	}
}

// Load reads the settings file and the layout file. A missing file at a
// default location falls back to the built-ins; a path the user named
// explicitly, either on the command line or through the settings file's
// layout key, must exist. Empty arguments use the standard locations
// under ~/.config/mpdash.
func Load(settingsPath, layoutPath string) (Config, error) {
	cfg := Default()

	layoutRef, err := loadSettings(&cfg, settingsPath)
	if err != nil {
		return Config{}, err
	}

	required := true
	switch {
	case strings.TrimSpace(layoutPath) != "":
	case layoutRef != "":
		layoutPath = layoutRef
	default:
		layoutPath, required = defaultLayoutPath, false
	}
	resolved, err := expandPath(layoutPath)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read layout: %w", err)
	}
	layout, err := DecodeLayout(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Layout = layout
	return cfg, nil
}

// loadSettings applies the TOML settings file to cfg and reports the
// layout path it names, if any. Only keys present in the file override
// the defaults.
func loadSettings(cfg *Config, path string) (layoutRef string, err error) {
	resolved, err := resolvePath(path, defaultSettingsPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(path) == "" {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read settings: %w", err)
	}

	var raw struct {
		Address          *string  `toml:"address"`
		JumpLines        *int     `toml:"jump_lines"`
		SeekSecs         *float64 `toml:"seek_secs"`
		UPS              *float64 `toml:"ups"`
		Cycle            *bool    `toml:"cycle"`
		ClearQueryOnPlay *bool    `toml:"clear_query_on_play"`
		Layout           *string  `toml:"layout"`
		SearchFields     *struct {
			File   *bool `toml:"file"`
			Title  *bool `toml:"title"`
			Artist *bool `toml:"artist"`
			Album  *bool `toml:"album"`
		} `toml:"search_fields"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return "", &Error{Path: resolved, Reason: err.Error()}
	}

	if raw.Address != nil {
		cfg.Address = strings.TrimSpace(*raw.Address)
	}
	if raw.JumpLines != nil {
		cfg.JumpLines = *raw.JumpLines
	}
	if raw.SeekSecs != nil {
		cfg.SeekSecs = *raw.SeekSecs
	}
	if raw.UPS != nil {
		cfg.UPS = *raw.UPS
	}
	if raw.Cycle != nil {
		cfg.Cycle = *raw.Cycle
	}
	if raw.ClearQueryOnPlay != nil {
		cfg.ClearQueryOnPlay = *raw.ClearQueryOnPlay
	}
	if sf := raw.SearchFields; sf != nil {
		if sf.File != nil {
			cfg.SearchFields.File = *sf.File
		}
		if sf.Title != nil {
			cfg.SearchFields.Title = *sf.Title
		}
		if sf.Artist != nil {
			cfg.SearchFields.Artist = *sf.Artist
		}
		if sf.Album != nil {
			cfg.SearchFields.Album = *sf.Album
		}
	}
	if raw.Layout != nil {
		layoutRef = strings.TrimSpace(*raw.Layout)
	}
	return layoutRef, nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
