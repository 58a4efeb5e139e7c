// Package theme provides color palettes for widget behaviors, loadable
// from TOML palette files.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-ember/ember/pkg/graphics"
)

// Theme is a resolved color palette.
type Theme struct {
	Background graphics.Color
	Surface    graphics.Color
	Accent     graphics.Color
	Text       graphics.Color
	Border     graphics.Color
}

// file is the on-disk TOML shape, colors as hex strings.
type file struct {
	Colors struct {
		Background string `toml:"background"`
		Surface    string `toml:"surface"`
		Accent     string `toml:"accent"`
		Text       string `toml:"text"`
		Border     string `toml:"border"`
	} `toml:"colors"`
}

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Background: graphics.RGB(0x10, 0x14, 0x18),
		Surface:    graphics.RGB(0x24, 0x2C, 0x34),
		Accent:     graphics.RGB(0x2F, 0x81, 0xF7),
		Text:       graphics.RGB(0xE6, 0xED, 0xF3),
		Border:     graphics.RGB(0x3D, 0x44, 0x4D),
	}
}

// Load reads a TOML palette file, filling unset colors from the default
// palette. A missing file yields the default palette without error.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Theme{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML palette document.
func Parse(data []byte) (Theme, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}

	t := Default()
	for _, c := range []struct {
		src string
		dst *graphics.Color
	}{
		{f.Colors.Background, &t.Background},
		{f.Colors.Surface, &t.Surface},
		{f.Colors.Accent, &t.Accent},
		{f.Colors.Text, &t.Text},
		{f.Colors.Border, &t.Border},
	} {
		if c.src == "" {
			continue
		}
		col, err := ParseColor(c.src)
		if err != nil {
			return Theme{}, err
		}
		*c.dst = col
	}
	return t, nil
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB" hex notation.
func ParseColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var v uint64
	if _, err := fmt.Sscanf(hex, "%x", &v); err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return graphics.Color(0xFF000000 | uint32(v)), nil
	case 8:
		return graphics.Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB or #AARRGGBB", s)
	}
}
