// Package colorutil provides shared color utilities for the whiteboard application.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 229, G: 57, B: 53, A: 255}
	Blue   = color.RGBA{R: 30, G: 136, B: 229, A: 255}
	Green  = color.RGBA{R: 67, G: 160, B: 71, A: 255}
	Yellow = color.RGBA{R: 255, G: 235, B: 59, A: 255}
)

// ParseHex parses a CSS-style hex color string (#rgb, #rrggbb or #rrggbbaa)
// into an RGBA, opaque unless an alpha byte is present. The fallback is
// returned for anything that does not parse.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return fallback
	}
	hex := s[1:]

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return fallback
	}

	switch len(hex) {
	case 3:
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		// Expand each nibble: 0xf -> 0xff
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
	case 6:
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}
	case 8:
		return color.RGBA{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}
	default:
		return fallback
	}
}

// FormatHex formats a color as a lowercase #rrggbb string. The alpha channel
// is not encoded; persisted colors carry opacity separately.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsHex reports whether s looks like a parseable hex color string.
func IsHex(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return false
	}
	n := len(s) - 1
	if n != 3 && n != 6 && n != 8 {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 64)
	return err == nil
}
