package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ShadeKeys lists the Tailwind-style shade names from lightest to darkest.
var ShadeKeys = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

var lightnessSteps = []float64{95, 85, 75, 65, 55, 45, 35, 25, 15, 10, 5}

// Shade is one generated step, rendered as "r g b".
type Shade struct {
	Key string `json:"key"`
	RGB string `json:"rgb"`
}

type ShadeSet []Shade

// Get returns the value stored under key.
func (s ShadeSet) Get(key string) (string, bool) {
	for _, sh := range s {
		if sh.Key == key {
			return sh.RGB, true
		}
	}
	return "", false
}

// ParseRGB accepts "#rrggbb", "#rgb", "r g b" or "r,g,b".
func ParseRGB(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return colorful.Color{}, fmt.Errorf("colour is required")
	}
	if strings.HasPrefix(v, "#") {
		if !validHex(v, false) {
			return colorful.Color{}, fmt.Errorf("parse hex colour %q: want #rgb or #rrggbb", value)
		}
		return colorful.Hex(v)
	}
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("parse rgb colour %q: want three channels", value)
	}
	var ch [3]float64
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return colorful.Color{}, fmt.Errorf("parse rgb colour %q: channel %q must be 0-255", value, p)
		}
		ch[i] = float64(n) * (1.0 / 255.0)
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// FormatRGB renders a colour as space-separated 0-255 channels.
func FormatRGB(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// Shades keeps the hue and saturation of base and walks the lightness
// from 95% down to 5%.
func Shades(base string) (ShadeSet, error) {
	col, err := ParseRGB(base)
	if err != nil {
		return nil, err
	}
	h, s, _ := col.Hsl()
	out := make(ShadeSet, 0, len(ShadeKeys))
	for i, key := range ShadeKeys {
		out = append(out, Shade{Key: key, RGB: FormatRGB(colorful.Hsl(h, s, lightnessSteps[i]/100))})
	}
	return out, nil
}
