package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawConfig mirrors Config with pointer fields so an absent option can be
// told apart from an explicit zero.
type RawConfig struct {
	RingSize        *int     `yaml:"ring_size"`
	HubRadius       *int     `yaml:"hub_radius"`
	SpokeLength     *int     `yaml:"spoke_length"`
	HubIconSize     *int     `yaml:"hub_icon_size"`
	NodeRadius      *float64 `yaml:"node_radius"`
	NodeBorderWidth *float64 `yaml:"node_border_width"`
	KeyboardNav     *bool    `yaml:"keyboard_nav"`
	Hotkey          *string  `yaml:"hotkey"`

	Peek struct {
		Enabled *bool `yaml:"enabled"`
		DelayMs *int  `yaml:"delay_ms"`
	} `yaml:"peek"`

	Animation struct {
		DurationMs *int `yaml:"duration_ms"`
		TickMs     *int `yaml:"tick_ms"`
	} `yaml:"animation"`

	Button struct {
		Size          *int  `yaml:"size"`
		SmartPosition *bool `yaml:"smart_position"`
		SnapToEdges   *bool `yaml:"snap_to_edges"`
		SnapThreshold *int  `yaml:"snap_threshold"`
	} `yaml:"button"`

	Denylist struct {
		Classes []string `yaml:"classes"`
		Titles  []string `yaml:"titles"`
	} `yaml:"denylist"`
}

// Load reads the configuration from the standard location. A missing file
// yields pure defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := BuildEffectiveConfig(raw)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// BuildEffectiveConfig overlays the raw file values onto the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setInt(&cfg.RingSize, raw.RingSize)
	setInt(&cfg.HubRadius, raw.HubRadius)
	setInt(&cfg.SpokeLength, raw.SpokeLength)
	setInt(&cfg.HubIconSize, raw.HubIconSize)
	setFloat(&cfg.NodeRadius, raw.NodeRadius)
	setFloat(&cfg.NodeBorderWidth, raw.NodeBorderWidth)
	setBool(&cfg.KeyboardNav, raw.KeyboardNav)
	setString(&cfg.Hotkey, raw.Hotkey)

	setBool(&cfg.Peek.Enabled, raw.Peek.Enabled)
	setInt(&cfg.Peek.DelayMs, raw.Peek.DelayMs)

	setInt(&cfg.Animation.DurationMs, raw.Animation.DurationMs)
	setInt(&cfg.Animation.TickMs, raw.Animation.TickMs)

	setInt(&cfg.Button.Size, raw.Button.Size)
	setBool(&cfg.Button.SmartPosition, raw.Button.SmartPosition)
	setBool(&cfg.Button.SnapToEdges, raw.Button.SnapToEdges)
	setInt(&cfg.Button.SnapThreshold, raw.Button.SnapThreshold)

	if raw.Denylist.Classes != nil {
		cfg.Denylist.Classes = raw.Denylist.Classes
	}
	if raw.Denylist.Titles != nil {
		cfg.Denylist.Titles = raw.Denylist.Titles
	}

	return cfg
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
