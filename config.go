package spotlight

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config holds every tunable of the overlay: animation physics, fade
// timings, placement margins, and the backdrop palette. Use DefaultConfig
// as a starting point and adjust fields, or load overrides from a TOML file
// with LoadConfig.
type Config struct {
	// FPS is the frame rate the overlay animates at.
	FPS int

	// PaddingFactor scales the highlight radius beyond the spot's longer
	// half-extent so non-square spots are fully covered. Must be >= 1.
	PaddingFactor float64

	// TipMarginFrac is the gap between tip and highlight as a fraction of
	// the viewport dimension (height for top/bottom tips, width for
	// left/right tips).
	TipMarginFrac float64

	// CenterSpring drives the highlight center toward a new spot.
	CenterSpring SpringSpec
	// RadiusSpring drives the highlight radius. Softer damping than the
	// center spring gives the cutout a slight breathing overshoot.
	RadiusSpring SpringSpec

	// TipFadeIn is the duration of the tip's fade to full opacity.
	TipFadeIn time.Duration
	// TipFadeInDelay postpones the fade-in so the tip appears only after
	// the highlight has mostly settled.
	TipFadeInDelay time.Duration
	// TipFadeOut is the duration of the HideTip dismiss fade.
	TipFadeOut time.Duration

	// DimColor is the backdrop color painted outside the highlight, as a
	// hex string. DimOpacity (0-1) is how strongly it covers the host view.
	DimColor   string
	DimOpacity float64

	// Foreground and Background are the assumed terminal palette, used to
	// blend dimmed cells and fading tips. Terminals expose no real alpha,
	// so opacity is approximated by mixing toward these colors.
	Foreground string
	Background string

	// CellAspect is the width/height ratio of a terminal cell, applied when
	// rasterizing the cutout so it reads as a circle on screen. Geometry
	// itself stays in square cell units.
	CellAspect float64

	// DisableKeys turns off the overlay's built-in navigation key handling.
	DisableKeys bool
	// Keys maps key names to navigation actions.
	Keys KeyMap
}

// DefaultConfig returns the stock tuning: the spring and fade parameters
// the overlay ships with, a black backdrop at 45% opacity, and standard
// navigation keys.
func DefaultConfig() Config {
	return Config{
		FPS:            60,
		PaddingFactor:  1.15,
		TipMarginFrac:  0.02,
		CenterSpring:   SpringSpec{Damping: 50, Mass: 5, Stiffness: 300},
		RadiusSpring:   SpringSpec{Damping: 30, Mass: 5, Stiffness: 300},
		TipFadeIn:      500 * time.Millisecond,
		TipFadeInDelay: 500 * time.Millisecond,
		TipFadeOut:     200 * time.Millisecond,
		DimColor:       "#000000",
		DimOpacity:     0.45,
		Foreground:     "#d0d0d0",
		Background:     "#1a1a1a",
		CellAspect:     0.5,
		Keys:           DefaultKeyMap(),
	}
}

// Validate reports a problem with the configuration, if any.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("spotlight: fps must be positive, got %d", c.FPS)
	}
	if c.PaddingFactor < 1 {
		return fmt.Errorf("spotlight: padding factor must be >= 1, got %g", c.PaddingFactor)
	}
	if c.TipMarginFrac < 0 {
		return fmt.Errorf("spotlight: tip margin fraction must be >= 0, got %g", c.TipMarginFrac)
	}
	if c.DimOpacity < 0 || c.DimOpacity > 1 {
		return fmt.Errorf("spotlight: dim opacity must be in [0, 1], got %g", c.DimOpacity)
	}
	if c.CellAspect <= 0 {
		return fmt.Errorf("spotlight: cell aspect must be positive, got %g", c.CellAspect)
	}
	for name, s := range map[string]SpringSpec{"center": c.CenterSpring, "radius": c.RadiusSpring} {
		if s.Mass <= 0 || s.Stiffness <= 0 || s.Damping <= 0 {
			return fmt.Errorf("spotlight: %s spring parameters must be positive, got %+v", name, s)
		}
	}
	for name, hex := range map[string]string{
		"dim_color":  c.DimColor,
		"foreground": c.Foreground,
		"background": c.Background,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("spotlight: invalid %s %q: %w", name, hex, err)
		}
	}
	return nil
}

// tomlDuration lets TOML files express durations as strings ("250ms").
type tomlDuration struct {
	time.Duration
}

func (d *tomlDuration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// fileConfig mirrors Config for TOML decoding. Pointer fields distinguish
// "absent" from "zero" so a file only overrides what it mentions.
type fileConfig struct {
	FPS            *int          `toml:"fps"`
	PaddingFactor  *float64      `toml:"padding_factor"`
	TipMarginFrac  *float64      `toml:"tip_margin_frac"`
	CenterSpring   *SpringSpec   `toml:"center_spring"`
	RadiusSpring   *SpringSpec   `toml:"radius_spring"`
	TipFadeIn      *tomlDuration `toml:"tip_fade_in"`
	TipFadeInDelay *tomlDuration `toml:"tip_fade_in_delay"`
	TipFadeOut     *tomlDuration `toml:"tip_fade_out"`
	DimColor       *string       `toml:"dim_color"`
	DimOpacity     *float64      `toml:"dim_opacity"`
	Foreground     *string       `toml:"foreground"`
	Background     *string       `toml:"background"`
	CellAspect     *float64      `toml:"cell_aspect"`
	DisableKeys    *bool         `toml:"disable_keys"`
	Keys           *KeyMap       `toml:"keys"`
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig. Fields the
// file does not mention keep their defaults. The merged result is validated
// before being returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("spotlight: decode config %s: %w", path, err)
	}

	if fc.FPS != nil {
		cfg.FPS = *fc.FPS
	}
	if fc.PaddingFactor != nil {
		cfg.PaddingFactor = *fc.PaddingFactor
	}
	if fc.TipMarginFrac != nil {
		cfg.TipMarginFrac = *fc.TipMarginFrac
	}
	if fc.CenterSpring != nil {
		cfg.CenterSpring = *fc.CenterSpring
	}
	if fc.RadiusSpring != nil {
		cfg.RadiusSpring = *fc.RadiusSpring
	}
	if fc.TipFadeIn != nil {
		cfg.TipFadeIn = fc.TipFadeIn.Duration
	}
	if fc.TipFadeInDelay != nil {
		cfg.TipFadeInDelay = fc.TipFadeInDelay.Duration
	}
	if fc.TipFadeOut != nil {
		cfg.TipFadeOut = fc.TipFadeOut.Duration
	}
	if fc.DimColor != nil {
		cfg.DimColor = *fc.DimColor
	}
	if fc.DimOpacity != nil {
		cfg.DimOpacity = *fc.DimOpacity
	}
	if fc.Foreground != nil {
		cfg.Foreground = *fc.Foreground
	}
	if fc.Background != nil {
		cfg.Background = *fc.Background
	}
	if fc.CellAspect != nil {
		cfg.CellAspect = *fc.CellAspect
	}
	if fc.DisableKeys != nil {
		cfg.DisableKeys = *fc.DisableKeys
	}
	if fc.Keys != nil {
		cfg.Keys = *fc.Keys
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
