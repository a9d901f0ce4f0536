package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"devkit/internal/migrate"
	"devkit/internal/palette"
)

type TailwindMigrateTool struct{}

type tailwindMigrateArgs struct {
	Config string `json:"config"`
}

func (t *TailwindMigrateTool) Definition() Definition {
	return Definition{
		Name:        "tailwind_migrate_colors",
		Description: "Convert the colors block of a Tailwind v3 config into Tailwind v4 @theme inline CSS with oklch() values.",
		Parameters: object(map[string]any{
			"config": str("Tailwind v3 config text containing a colors: { ... } object."),
		}, "config"),
	}
}

func (t *TailwindMigrateTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in tailwindMigrateArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	res, err := migrate.Run(in.Config)
	if err != nil {
		return "", fmt.Errorf("migrate colors: %w", err)
	}
	return prettyJSON(map[string]any{
		"variables": res.Variables,
		"css":       res.CSS,
	})
}

type TailwindThemeTool struct{}

type tailwindThemeArgs struct {
	Advanced bool              `json:"advanced"`
	Set      map[string]string `json:"set"`
	Format   string            `json:"format"`
}

func (t *TailwindThemeTool) Definition() Definition {
	return Definition{
		Name:        "tailwind_theme",
		Description: "Generate a Tailwind v4 globals.css (or v3 JSON) from the default shadcn-style tokens with optional overrides.",
		Parameters: object(map[string]any{
			"advanced": boolean("Include card, popover, muted, chart and sidebar tokens."),
			"set": map[string]any{
				"type":                 "object",
				"description":          "Overrides as {\"light.primary\": \"#3b82f6\"}.",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"format": map[string]any{"type": "string", "enum": []string{"css", "json"}},
		}),
	}
}

func (t *TailwindThemeTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in tailwindThemeArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	cfg := palette.BasicTheme()
	if in.Advanced {
		cfg = palette.AdvancedTheme()
	}
	for target, hex := range in.Set {
		if err := ApplyThemeOverride(&cfg, target, hex); err != nil {
			return "", err
		}
	}
	switch strings.ToLower(strings.TrimSpace(in.Format)) {
	case "", "css":
		return palette.GenerateThemeCSS(cfg), nil
	case "json":
		out, err := palette.GenerateThemeJSON(cfg)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown format %q (want css or json)", in.Format)
	}
}

// ApplyThemeOverride applies "mode.key" = hex to cfg.
func ApplyThemeOverride(cfg *palette.ThemeConfig, target, hex string) error {
	modeName, key, ok := strings.Cut(strings.TrimSpace(target), ".")
	if !ok || key == "" {
		return fmt.Errorf("override %q: want mode.key, e.g. light.primary", target)
	}
	mode, err := palette.ParseMode(modeName)
	if err != nil {
		return err
	}
	return cfg.SetColor(mode, key, hex)
}
