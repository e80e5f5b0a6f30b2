package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"nifri2/ghost-lantern/cmd"
)

// SimConfig is the simulator's tuning file. Omitted fields keep the
// firmware defaults, so partial files are safe.
type SimConfig struct {
	OnThreshold *int    `json:"on_threshold,omitempty"`
	MinGap      *int    `json:"min_gap,omitempty"`
	Polarity    *string `json:"polarity,omitempty"` // "high" or "low"

	AlertDuration *string `json:"alert_duration,omitempty"` // duration string like "3s"
	AlertPeriod   *string `json:"alert_period,omitempty"`
	AlertSteps    *int    `json:"alert_steps,omitempty"`

	BodyPeriod  *string `json:"body_period,omitempty"`
	RepsPerPair *int    `json:"reps_per_pair,omitempty"`

	RotateInterval *string `json:"rotate_interval,omitempty"`

	Brightness   *int    `json:"brightness,omitempty"`
	ChannelOrder *string `json:"channel_order,omitempty"`

	// Palette lists hex colors for front, right, back, left.
	Palette []string `json:"palette,omitempty"`
}

// LoadSimConfig reads and validates a JSON tuning file.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SimConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges and that the merged core config is usable.
func (c *SimConfig) Validate() error {
	if c.OnThreshold != nil && (*c.OnThreshold < 1 || *c.OnThreshold > math.MaxUint16) {
		return fmt.Errorf("on_threshold must be between 1 and %d, got %d", math.MaxUint16, *c.OnThreshold)
	}
	if c.MinGap != nil && (*c.MinGap < 0 || *c.MinGap > math.MaxUint16) {
		return fmt.Errorf("min_gap must be between 0 and %d, got %d", math.MaxUint16, *c.MinGap)
	}
	if c.Brightness != nil && (*c.Brightness < 0 || *c.Brightness > 255) {
		return fmt.Errorf("brightness must be between 0 and 255, got %d", *c.Brightness)
	}
	if c.Polarity != nil && *c.Polarity != "high" && *c.Polarity != "low" {
		return fmt.Errorf("polarity must be \"high\" or \"low\", got %q", *c.Polarity)
	}
	if c.ChannelOrder != nil {
		if _, ok := cmd.LookupChannelOrder(*c.ChannelOrder); !ok {
			return fmt.Errorf("channel_order must be one of grb, rgb, brg, bgr, rbg, gbr, got %q", *c.ChannelOrder)
		}
	}
	_, err := c.CoreConfig()
	return err
}

// CoreConfig merges the file over cmd.DefaultConfig.
func (c *SimConfig) CoreConfig() (cmd.Config, error) {
	cfg := cmd.DefaultConfig()
	if c.OnThreshold != nil {
		cfg.OnThreshold = uint16(*c.OnThreshold)
	}
	if c.MinGap != nil {
		cfg.MinGap = uint16(*c.MinGap)
	}
	if c.Polarity != nil {
		cfg.Polarity = cmd.ParsePolarity(*c.Polarity)
	}
	if c.AlertSteps != nil {
		cfg.AlertSteps = *c.AlertSteps
	}
	if c.RepsPerPair != nil {
		cfg.RepsPerPair = *c.RepsPerPair
	}
	if c.Brightness != nil {
		cfg.Brightness = uint8(*c.Brightness)
	}
	if c.ChannelOrder != nil {
		cfg.ChannelOrder = cmd.ParseChannelOrder(*c.ChannelOrder)
	}

	durations := []struct {
		name string
		val  *string
		dst  *uint32
	}{
		{"alert_duration", c.AlertDuration, &cfg.AlertDuration},
		{"alert_period", c.AlertPeriod, &cfg.AlertPeriod},
		{"body_period", c.BodyPeriod, &cfg.BodyPeriod},
		{"rotate_interval", c.RotateInterval, &cfg.RotateInterval},
	}
	for _, d := range durations {
		if d.val == nil || *d.val == "" {
			continue
		}
		ms, err := parseMillis(*d.val)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s '%s': %w", d.name, *d.val, err)
		}
		*d.dst = ms
	}

	if len(c.Palette) > 0 {
		p, err := parsePalette(c.Palette)
		if err != nil {
			return cfg, err
		}
		cfg.Palette = p
	}

	return cfg, cfg.Validate()
}

func parseMillis(s string) (uint32, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < time.Millisecond || d.Milliseconds() > math.MaxInt32 {
		return 0, fmt.Errorf("out of range")
	}
	return uint32(d.Milliseconds()), nil
}

func parsePalette(hexes []string) (cmd.Palette, error) {
	var p cmd.Palette
	if len(hexes) != cmd.FaceCount {
		return p, fmt.Errorf("palette needs %d colors, got %d", cmd.FaceCount, len(hexes))
	}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return p, fmt.Errorf("palette color %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		p[i] = cmd.Color{R: r, G: g, B: b}
	}
	return p, nil
}
