package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"devkit/internal/palette"
)

type PaletteShadesTool struct{}

type paletteShadesArgs struct {
	Color string `json:"color"`
}

func (t *PaletteShadesTool) Definition() Definition {
	return Definition{
		Name:        "palette_shades",
		Description: "Generate 11 shades (50-950) from a base colour, keeping its hue and saturation. Output values are 'R G B'.",
		Parameters: object(map[string]any{
			"color": str("Base colour as #rrggbb or 'R G B'."),
		}, "color"),
	}
}

func (t *PaletteShadesTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in paletteShadesArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Color) == "" {
		return "", errors.New("color is required")
	}
	set, err := palette.Shades(in.Color)
	if err != nil {
		return "", err
	}
	return prettyJSON(map[string]any{
		"base":   strings.TrimSpace(in.Color),
		"shades": set,
	})
}
