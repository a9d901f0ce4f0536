// Package migrate converts the colors block of a Tailwind v3 config into
// Tailwind v4 theme CSS.
package migrate

import (
	"errors"
	"strings"
)

var ErrNoColorsBlock = errors.New("colors block not found")

const (
	notFoundComment   = "// Could not find or extract 'colors' block"
	parseErrorComment = "// Error parsing config: "
)

// Result carries every stage of a migration.
type Result struct {
	Block     string     `json:"-"`
	Variables []Variable `json:"variables"`
	CSS       string     `json:"css"`
}

// Run extracts, parses, flattens, converts and renders. It fails with
// ErrNoColorsBlock or a *ParseError.
func Run(text string) (Result, error) {
	block, ok := ExtractBlock(text, ColorsKey)
	if !ok {
		return Result{}, ErrNoColorsBlock
	}
	tree, err := ParseTree(block)
	if err != nil {
		return Result{}, err
	}
	vars := Convert(Flatten(tree))
	return Result{Block: block, Variables: vars, CSS: Render(vars)}, nil
}

// Migrate always returns text: the CSS on success, otherwise a CSS-style
// comment describing the failure.
func Migrate(text string) string {
	res, err := Run(text)
	if err != nil {
		return FailureComment(err)
	}
	return res.CSS
}

// FailureComment renders err the way Migrate reports it.
func FailureComment(err error) string {
	if errors.Is(err, ErrNoColorsBlock) {
		return notFoundComment
	}
	return parseErrorComment + strings.TrimSpace(err.Error())
}
