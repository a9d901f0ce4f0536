package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

type styles struct {
	label lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
}

// newStyles renders through w so pipes and buffers get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		label: r.NewStyle().Foreground(lipgloss.Color("6")),
		value: r.NewStyle().Bold(true),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

type row struct {
	label string
	value string
}

// writeRows prints label/value pairs with the labels padded to one column.
func writeRows(w io.Writer, rows []row) {
	st := newStyles(w)
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.label))
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(r.label))
		fmt.Fprintf(w, "%s%s  %s\n", st.label.Render(r.label), pad, r.value)
	}
}

func writeList(w io.Writer, title string, items []string) {
	st := newStyles(w)
	fmt.Fprintln(w, st.dim.Render(title))
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// readInput reads the named file, or the command's stdin for "" and "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput writes text to path, or to the command's stdout when path is
// blank. A trailing newline is added for terminals.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if strings.TrimSpace(path) == "" {
		out := cmd.OutOrStdout()
		if _, err := io.WriteString(out, text); err != nil {
			return err
		}
		if !strings.HasSuffix(text, "\n") {
			_, err := io.WriteString(out, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
