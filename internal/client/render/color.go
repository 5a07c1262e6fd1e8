package render

import (
	"strconv"
	"strings"
)

// RGB is an 8-bit color.
type RGB struct{ R, G, B int }

// DefaultTheme is the brand pink.
var DefaultTheme = RGB{0xec, 0x48, 0x99}

// ParseHexColor accepts "#rrggbb" or "#rgb" and falls back to DefaultTheme.
func ParseHexColor(s string) RGB {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return DefaultTheme
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return DefaultTheme
	}
	return RGB{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// tint mixes c with white; f=0 is c, f=1 is white.
func tint(c RGB, f float64) RGB {
	mix := func(v int) int { return v + int(float64(255-v)*f) }
	return RGB{mix(c.R), mix(c.G), mix(c.B)}
}
