// Package config loads the winring configuration: a single YAML file whose
// options all have working defaults, so a missing file is a valid setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PeekConfig controls the hover-dwell peek behavior of the ring.
type PeekConfig struct {
	Enabled bool `yaml:"enabled"`
	// DelayMs is the hover dwell before a peek fires, in milliseconds.
	DelayMs int `yaml:"delay_ms"`
}

// AnimationConfig controls the ring entrance animation.
type AnimationConfig struct {
	DurationMs int `yaml:"duration_ms"`
	TickMs     int `yaml:"tick_ms"`
}

// ButtonConfig controls the floating button.
type ButtonConfig struct {
	Size int `yaml:"size"`
	// SmartPosition restores the last dragged position across restarts.
	SmartPosition bool `yaml:"smart_position"`
	SnapToEdges   bool `yaml:"snap_to_edges"`
	// SnapThreshold is the distance in pixels from a work-area edge at which
	// the button snaps to it.
	SnapThreshold int `yaml:"snap_threshold"`
}

// DenylistConfig names window classes and title substrings excluded from the
// ring. Matching is case-insensitive substring matching.
type DenylistConfig struct {
	Classes []string `yaml:"classes"`
	Titles  []string `yaml:"titles"`
}

// Config is the effective configuration with all defaults applied.
type Config struct {
	// RingSize is the edge length of the square ring area in pixels.
	RingSize int `yaml:"ring_size"`
	// HubRadius is the distance from the ring center to each app hub.
	HubRadius int `yaml:"hub_radius"`
	// SpokeLength is the distance from a hub to its window nodes.
	SpokeLength int `yaml:"spoke_length"`
	// HubIconSize is the edge length of the hub marker.
	HubIconSize int `yaml:"hub_icon_size"`
	// NodeRadius is the base radius of a window node.
	NodeRadius float64 `yaml:"node_radius"`
	// NodeBorderWidth is the node outline width (presentation only).
	NodeBorderWidth float64 `yaml:"node_border_width"`
	// KeyboardNav enables Tab/arrow traversal of the ring.
	KeyboardNav bool `yaml:"keyboard_nav"`
	// Hotkey optionally toggles the ring globally, e.g. "Mod4-grave".
	// Empty disables the hotkey; the button always works.
	Hotkey string `yaml:"hotkey"`

	Peek      PeekConfig      `yaml:"peek"`
	Animation AnimationConfig `yaml:"animation"`
	Button    ButtonConfig    `yaml:"button"`
	Denylist  DenylistConfig  `yaml:"denylist"`
}

// DefaultDenyClasses are desktop-shell processes that should never appear in
// the ring.
var DefaultDenyClasses = []string{
	"pcmanfm-desktop",
	"xfdesktop",
	"lxqt-panel",
	"desktop_window",
	"plank",
	"cairo-dock",
	"conky",
}

// DefaultDenyTitles excludes winring's own windows and bare desktops.
var DefaultDenyTitles = []string{
	"winring",
	"desktop",
}

// DefaultConfig returns the effective configuration with every option at its
// documented default.
func DefaultConfig() *Config {
	return &Config{
		RingSize:        800,
		HubRadius:       190,
		SpokeLength:     70,
		HubIconSize:     40,
		NodeRadius:      16,
		NodeBorderWidth: 2.5,
		KeyboardNav:     true,
		Hotkey:          "",
		Peek: PeekConfig{
			Enabled: true,
			DelayMs: 150,
		},
		Animation: AnimationConfig{
			DurationMs: 350,
			TickMs:     16,
		},
		Button: ButtonConfig{
			Size:          64,
			SmartPosition: true,
			SnapToEdges:   true,
			SnapThreshold: 25,
		},
		Denylist: DenylistConfig{
			Classes: append([]string(nil), DefaultDenyClasses...),
			Titles:  append([]string(nil), DefaultDenyTitles...),
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winring", "config.yaml"), nil
}

// Validate rejects configurations the ring cannot work with.
func (c *Config) Validate() error {
	if c.RingSize < 100 {
		return fmt.Errorf("ring_size must be at least 100, got %d", c.RingSize)
	}
	if c.HubRadius <= 0 {
		return fmt.Errorf("hub_radius must be positive, got %d", c.HubRadius)
	}
	if c.SpokeLength < 0 {
		return fmt.Errorf("spoke_length must not be negative, got %d", c.SpokeLength)
	}
	if c.NodeRadius <= 0 {
		return fmt.Errorf("node_radius must be positive, got %g", c.NodeRadius)
	}
	if 2*(c.HubRadius+c.SpokeLength+int(c.NodeRadius)) > c.RingSize {
		return fmt.Errorf(
			"ring_size %d is too small for hub_radius %d + spoke_length %d",
			c.RingSize, c.HubRadius, c.SpokeLength,
		)
	}
	if c.Peek.DelayMs < 0 {
		return fmt.Errorf("peek.delay_ms must not be negative, got %d", c.Peek.DelayMs)
	}
	if c.Animation.DurationMs <= 0 {
		return fmt.Errorf("animation.duration_ms must be positive, got %d", c.Animation.DurationMs)
	}
	if c.Animation.TickMs <= 0 {
		return fmt.Errorf("animation.tick_ms must be positive, got %d", c.Animation.TickMs)
	}
	if c.Button.Size < 16 {
		return fmt.Errorf("button.size must be at least 16, got %d", c.Button.Size)
	}
	if c.Button.SnapThreshold < 0 {
		return fmt.Errorf("button.snap_threshold must not be negative, got %d", c.Button.SnapThreshold)
	}
	return nil
}
