package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"devkit/internal/envfile"
)

type envArgs struct {
	Content  string   `json:"content"`
	Optional []string `json:"optional"`
	Format   string   `json:"format"`
}

func (a envArgs) variables() []envfile.Variable {
	vars := envfile.Parse(a.Content)
	return MarkOptional(vars, a.Optional)
}

// MarkOptional flags the named keys as optional.
func MarkOptional(vars []envfile.Variable, keys []string) []envfile.Variable {
	if len(keys) == 0 {
		return vars
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[strings.TrimSpace(k)] = true
	}
	for i := range vars {
		if set[vars[i].Key] {
			vars[i].Optional = true
		}
	}
	return vars
}

type EnvValidateTool struct{}

func (t *EnvValidateTool) Definition() Definition {
	return Definition{
		Name:        "env_validate",
		Description: "Parse .env content and report missing keys, duplicate keys and empty required values.",
		Parameters: object(map[string]any{
			"content":  str(".env file content."),
			"optional": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Keys allowed to be empty."},
		}, "content"),
	}
}

type envProblem struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type envSummary struct {
	Key      string `json:"key"`
	Secret   bool   `json:"secret"`
	Optional bool   `json:"optional"`
}

func (t *EnvValidateTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in envArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	vars := in.variables()
	errs := envfile.Validate(vars)

	problems := make([]envProblem, 0, len(errs))
	summary := make([]envSummary, 0, len(vars))
	for _, v := range vars {
		summary = append(summary, envSummary{Key: v.Key, Secret: v.Secret, Optional: v.Optional})
		if msg, ok := errs[v.ID]; ok {
			problems = append(problems, envProblem{Key: v.Key, Message: msg})
		}
	}
	return prettyJSON(map[string]any{
		"valid":     len(problems) == 0,
		"variables": summary,
		"problems":  problems,
	})
}

type EnvExportTool struct{}

func (t *EnvExportTool) Definition() Definition {
	return Definition{
		Name:        "env_export",
		Description: "Re-export .env content as env, example (.env.example), json or dotenv.",
		Parameters: object(map[string]any{
			"content":  str(".env file content."),
			"format":   map[string]any{"type": "string", "enum": ExportFormats},
			"optional": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}, "content"),
	}
}

// ExportFormats lists the accepted env export formats.
var ExportFormats = []string{"env", "example", "json", "dotenv"}

func (t *EnvExportTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var in envArgs
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	return ExportEnv(in.variables(), in.Format)
}

// ExportEnv renders vars in one of ExportFormats; blank means env.
func ExportEnv(vars []envfile.Variable, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "env":
		return envfile.ExportEnv(vars), nil
	case "example":
		return envfile.ExportExample(vars), nil
	case "json":
		return envfile.ExportJSON(vars)
	case "dotenv":
		return envfile.ExportDotenv(vars)
	default:
		return "", fmt.Errorf("unknown format %q (want %s)", format, strings.Join(ExportFormats, ", "))
	}
}
