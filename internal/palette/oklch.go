package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// OKLCH is a colour in the OKLCH space; H is in degrees.
type OKLCH struct {
	L float64
	C float64
	H float64
}

// achromatic chroma below this rounds to zero and the hue is meaningless.
const achromaticChroma = 0.0005

// String renders the CSS form with L and C to 3 places and H to 2.
func (c OKLCH) String() string {
	return fmt.Sprintf("oklch(%.3f %.3f %.2f)", c.L, c.C, c.H)
}

// HexToOKLCH parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" and converts
// it. An alpha channel is dropped.
func HexToOKLCH(hex string) (OKLCH, error) {
	h := strings.TrimSpace(hex)
	if !validHex(h, true) {
		return OKLCH{}, fmt.Errorf("parse hex colour %q: want #rgb, #rgba, #rrggbb or #rrggbbaa", hex)
	}
	col, err := colorful.Hex(opaqueHex(h))
	if err != nil {
		return OKLCH{}, fmt.Errorf("parse hex colour %q: %w", hex, err)
	}
	return FromColor(col), nil
}

// opaqueHex strips the alpha digits from the 4- and 8-digit forms.
func opaqueHex(s string) string {
	switch len(s) {
	case 5:
		return s[:4]
	case 9:
		return s[:7]
	}
	return s
}

// validHex reports whether s is a 3- or 6-digit hex colour, or with alpha
// also a 4- or 8-digit one.
func validHex(s string, alpha bool) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	switch len(s) {
	case 4, 7:
	case 5, 9:
		if !alpha {
			return false
		}
	default:
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// ParseOKLCH reads the CSS form "oklch(L C H)", optionally followed by
// " / alpha" which is ignored. L may be given as a percentage.
func ParseOKLCH(s string) (OKLCH, error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "oklch(") || !strings.HasSuffix(v, ")") {
		return OKLCH{}, fmt.Errorf("not an oklch() colour: %q", s)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(v, "oklch("), ")")
	if i := strings.Index(body, "/"); i >= 0 {
		body = body[:i]
	}
	fields := strings.Fields(body)
	if len(fields) != 3 {
		return OKLCH{}, fmt.Errorf("oklch() needs three components: %q", s)
	}
	var out [3]float64
	for i, f := range fields {
		scale := 1.0
		if strings.HasSuffix(f, "%") {
			f = strings.TrimSuffix(f, "%")
			scale = 0.01
		}
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return OKLCH{}, fmt.Errorf("oklch() component %q: %w", fields[i], err)
		}
		out[i] = n * scale
	}
	return OKLCH{L: out[0], C: out[1], H: out[2]}, nil
}

// Hex renders the colour as #rrggbb, clamping out-of-gamut values.
func (c OKLCH) Hex() string {
	return colorful.OkLch(c.L, c.C, c.H).Clamped().Hex()
}

// FromColor converts and rounds a colour.
func FromColor(col colorful.Color) OKLCH {
	l, c, h := col.OkLch()
	out := OKLCH{L: round(l, 3), C: round(c, 3), H: round(h, 2)}
	if c < achromaticChroma {
		out.C, out.H = 0, 0
	}
	if out.H >= 360 {
		out.H = 0
	}
	return out
}

// ToOKLCH returns the CSS oklch() form of a hex colour.
func ToOKLCH(hex string) (string, error) {
	c, err := HexToOKLCH(hex)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// ConvertLiteral converts a literal that starts with '#'; anything else,
// and any hex that does not parse, is returned unchanged.
func ConvertLiteral(value string) string {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		return value
	}
	out, err := ToOKLCH(v)
	if err != nil {
		return value
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
