// Package tui is the interactive schedule builder behind "devkit cron
// interactive".
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"devkit/internal/history"
	"devkit/internal/schedule"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultDebounce is how long typing must pause before a phrase is converted.
const DefaultDebounce = 500 * time.Millisecond

// DefaultTimezones is the tab cycle order.
var DefaultTimezones = []string{"UTC", "America/New_York", "Asia/Kolkata", "Europe/London"}

type Options struct {
	Timezones []string
	RunCount  int
	Debounce  time.Duration
	Now       func() time.Time
	History   history.Store
}

// Run starts the full-screen builder. in and out must be terminals when they
// are files.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return errors.New("stdin is not a TTY; pass the phrase to `devkit cron` instead")
	}
	if f, ok := out.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return errors.New("stdout is not a TTY; pass the phrase to `devkit cron` instead")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	prog := tea.NewProgram(
		NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type debounceMsg struct{ seq int }

type savedMsg struct {
	expression string
	err        error
}

type Model struct {
	ctx   context.Context
	opts  Options
	input textinput.Model

	zones   []string
	zoneIdx int
	seq     int

	result *schedule.Result
	err    error
	status string

	width int
}

func NewModel(ctx context.Context, opts Options) Model {
	if len(opts.Timezones) == 0 {
		opts.Timezones = DefaultTimezones
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RunCount <= 0 {
		opts.RunCount = schedule.DefaultRunCount
	}
	inp := textinput.New()
	inp.Placeholder = "every monday at 9 am"
	inp.Prompt = "› "
	inp.CharLimit = 120
	inp.Focus()
	return Model{ctx: ctx, opts: opts, input: inp, zones: opts.Timezones}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Zone is the timezone next runs are projected into.
func (m Model) Zone() string {
	return m.zones[m.zoneIdx]
}

func (m Model) Result() (schedule.Result, bool) {
	if m.result == nil {
		return schedule.Result{}, false
	}
	return *m.result, true
}

func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-6)
		return m, nil

	case debounceMsg:
		if msg.seq == m.seq {
			m.convert()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "history: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.expression
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			step := 1
			if msg.Type == tea.KeyShiftTab {
				step = len(m.zones) - 1
			}
			m.zoneIdx = (m.zoneIdx + step) % len(m.zones)
			m.convert()
			return m, nil
		case tea.KeyEnter:
			m.convert()
			return m, m.saveCmd()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.seq++
	seq := m.seq
	m.status = ""
	return m, tea.Batch(cmd, tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	}))
}

func (m *Model) convert() {
	phrase := strings.TrimSpace(m.input.Value())
	if phrase == "" {
		m.result, m.err = nil, nil
		return
	}
	conv := schedule.Converter{Now: m.opts.Now, RunCount: m.opts.RunCount}
	res, err := conv.Convert(phrase, m.Zone())
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	m.result, m.err = &res, nil
}

func (m Model) saveCmd() tea.Cmd {
	if m.result == nil || m.opts.History == nil {
		return nil
	}
	res := *m.result
	store := m.opts.History
	ctx := m.ctx
	now := time.Now()
	if m.opts.Now != nil {
		now = m.opts.Now()
	}
	return func() tea.Msg {
		_, err := store.Append(ctx, history.NewEntry(res.Expression, res.Description, now))
		return savedMsg{expression: res.Expression, err: err}
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	exprStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	zoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Schedule builder") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(dimStyle.Render("timezone: ") + zoneStyle.Render(m.Zone()) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(m.fit(m.err.Error())) + "\n")
	case m.result != nil:
		b.WriteString(exprStyle.Render(m.result.Expression) + "\n")
		b.WriteString(m.fit(m.result.Description) + "\n\n")
		runs := m.result.FormattedRuns()
		if len(runs) > 0 {
			b.WriteString(dimStyle.Render("next runs") + "\n")
			for i, r := range runs {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, r)
			}
		}
	default:
		b.WriteString(dimStyle.Render("Type a schedule starting with \"every\".") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + dimStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("tab: timezone · enter: save to history · esc: quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) fit(s string) string {
	if m.width <= 8 {
		return s
	}
	return runewidth.Truncate(s, m.width-6, "…")
}
