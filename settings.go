package bough

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds the delivery thresholds and bounds of an agent. It can be
// loaded from TOML:
//
//	double_click_interval_ms = 400
//	double_click_distance = 5
//	touch_double_tap_distance = 20
//	start_drag_distance = 10
//	max_delivery_depth = 32
//	max_tree_depth = 256
//	synthesize_mouse_from_touch = true
type Settings struct {
	// DoubleClickIntervalMS is the longest gap between two presses that still
	// counts as a double click or double tap.
	DoubleClickIntervalMS int `toml:"double_click_interval_ms"`

	// DoubleClickDistance is how far apart two mouse presses may be.
	DoubleClickDistance float64 `toml:"double_click_distance"`

	// TouchDoubleTapDistance is how far apart two taps may be, and how far a
	// tap may be dragged before it no longer counts towards a double tap.
	TouchDoubleTapDistance float64 `toml:"touch_double_tap_distance"`

	// StartDragDistance is the movement after which a press becomes a drag.
	StartDragDistance float64 `toml:"start_drag_distance"`

	// MaxDeliveryDepth bounds re-entrant delivery from hooks.
	MaxDeliveryDepth int `toml:"max_delivery_depth"`

	// MaxTreeDepth bounds hit-test recursion.
	MaxTreeDepth int `toml:"max_tree_depth"`

	// SynthesizeMouseFromTouch turns the first touch point into mouse events
	// for items that do not accept touch.
	SynthesizeMouseFromTouch bool `toml:"synthesize_mouse_from_touch"`
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		DoubleClickIntervalMS:    400,
		DoubleClickDistance:      5,
		TouchDoubleTapDistance:   20,
		StartDragDistance:        10,
		MaxDeliveryDepth:         32,
		MaxTreeDepth:             defaultMaxHitDepth,
		SynthesizeMouseFromTouch: true,
	}
}

// DoubleClickInterval returns DoubleClickIntervalMS as a duration.
func (s Settings) DoubleClickInterval() time.Duration {
	return time.Duration(s.DoubleClickIntervalMS) * time.Millisecond
}

// withDefaults fills zero fields from DefaultSettings. Booleans are taken as
// given.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DoubleClickIntervalMS <= 0 {
		s.DoubleClickIntervalMS = d.DoubleClickIntervalMS
	}
	if s.DoubleClickDistance <= 0 {
		s.DoubleClickDistance = d.DoubleClickDistance
	}
	if s.TouchDoubleTapDistance <= 0 {
		s.TouchDoubleTapDistance = d.TouchDoubleTapDistance
	}
	if s.StartDragDistance <= 0 {
		s.StartDragDistance = d.StartDragDistance
	}
	if s.MaxDeliveryDepth <= 0 {
		s.MaxDeliveryDepth = d.MaxDeliveryDepth
	}
	if s.MaxTreeDepth <= 0 {
		s.MaxTreeDepth = d.MaxTreeDepth
	}
	return s
}

// DecodeSettings parses TOML settings. Keys that are absent keep their
// default values.
func DecodeSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s.withDefaults(), nil
}

// LoadSettings reads TOML settings from path.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s.withDefaults(), nil
}

// EncodeSettings renders s as TOML.
func EncodeSettings(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveSettings writes s to path as TOML.
func SaveSettings(path string, s Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save settings %s: %w", path, err)
	}
	return nil
}
