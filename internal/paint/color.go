package paint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RGB is a color with components in [0, 1], the form the color buffer and
// the GL vertex attribute use.
type RGB struct {
	R, G, B float32
}

// ErrBadHexColor reports an unparseable hex color string.
var ErrBadHexColor = errors.New("invalid hex color")

// ParseHexColor parses "#RRGGBB" (leading '#' optional) into an RGB.
// The oracle ships region colors in this form.
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrBadHexColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrBadHexColor, s)
	}
	return RGB{
		R: float32(v>>16&0xFF) / 255,
		G: float32(v>>8&0xFF) / 255,
		B: float32(v&0xFF) / 255,
	}, nil
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	clamp := func(f float32) uint32 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint32(f*255 + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(c.R), clamp(c.G), clamp(c.B))
}
