package tools

import (
	"context"
	"encoding/json"

	"devkit/internal/keygen"
)

type SecretKeyTool struct {
	Length int
}

type secretKeyArgs struct {
	Length    int  `json:"length"`
	NoSpecial bool `json:"no_special"`
	Diverse   bool `json:"ensure_diversity"`
}

func (t *SecretKeyTool) Definition() Definition {
	return Definition{
		Name:        "secret_key_generate",
		Description: "Generate a Django-style SECRET_KEY from a cryptographic source and score its strength.",
		Parameters: object(map[string]any{
			"length":           integer("Key length (default 50)."),
			"no_special":       boolean("Use only lowercase letters and digits."),
			"ensure_diversity": boolean("Guarantee a letter, a digit and a symbol."),
		}),
	}
}

func (t *SecretKeyTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in secretKeyArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	length := in.Length
	if length <= 0 {
		length = t.Length
	}
	key, err := keygen.Generate(keygen.Options{
		Length:          length,
		NoSpecial:       in.NoSpecial,
		EnsureDiversity: in.Diverse,
	})
	if err != nil {
		return "", err
	}
	rep := keygen.Strength(key)
	return prettyJSON(map[string]any{
		"key":      key,
		"length":   len(key),
		"strength": rep,
		"label":    rep.Label(),
	})
}
