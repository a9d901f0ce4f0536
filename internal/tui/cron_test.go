package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"devkit/internal/history"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 10, 7, 30, 0, time.UTC)
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model), cmd
}

func TestDebounceIgnoresStaleTicks(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Now: fixedNow, RunCount: 2})
	m, cmd := typeText(t, m, "every 15 minutes")
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.seq)

	m, _ = typeText(t, m, "x")
	next, _ := m.Update(debounceMsg{seq: 1})
	m = next.(Model)
	_, ok := m.Result()
	assert.False(t, ok, "stale tick must not convert")
	assert.NoError(t, m.Err())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)
	next, _ = m.Update(debounceMsg{seq: m.seq})
	m = next.(Model)
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "*/15 * * * *", res.Expression)
	assert.Equal(t, []string{"3/10/2026, 10:15:00 AM", "3/10/2026, 10:30:00 AM"}, res.FormattedRuns())
}

func TestTabCyclesTimezones(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Now: fixedNow, RunCount: 1})
	m.input.SetValue("every day at 3 pm")

	zones := []string{m.Zone()}
	for range DefaultTimezones {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		zones = append(zones, m.Zone())
	}
	assert.Equal(t, []string{"UTC", "America/New_York", "Asia/Kolkata", "Europe/London", "UTC"}, zones)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	assert.Equal(t, "Europe/London", m.Zone())
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "Europe/London", res.Timezone)
	assert.Equal(t, []string{"3/10/2026, 3:00:00 PM"}, res.FormattedRuns())
}

func TestUnsupportedPhraseShowsError(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{Now: fixedNow})
	m.input.SetValue("at some point")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Unsupported phrase")
}

func TestEnterSavesHistory(t *testing.T) {
	t.Parallel()

	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), 5)
	m := NewModel(context.Background(), Options{Now: fixedNow, History: store})
	m.input.SetValue("every monday at 9 am")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	next, _ = m.Update(msg)
	m = next.(Model)
	assert.Equal(t, "saved 0 9 * * 1", m.status)

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0 9 * * 1", entries[0].Expression)
}

func TestEscQuits(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
