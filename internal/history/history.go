package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is how many recent expressions are kept.
const DefaultLimit = 5

// Entry is one successfully converted expression.
type Entry struct {
	ID          string    `json:"id"`
	Expression  string    `json:"expression"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Store persists recent entries, newest first.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	// Append records e and returns the capped, de-duplicated list.
	Append(ctx context.Context, e Entry) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Close() error
}

// NewEntry stamps a fresh id and UTC timestamp.
func NewEntry(expression, description string, now time.Time) Entry {
	if now.IsZero() {
		now = time.Now()
	}
	return Entry{
		ID:          uuid.NewString(),
		Expression:  strings.TrimSpace(expression),
		Description: strings.TrimSpace(description),
		Timestamp:   now.UTC(),
	}
}

// Push puts e first, drops older entries with the same expression and
// truncates to limit. The input slice is not modified.
func Push(entries []Entry, e Entry, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Entry, 0, min(len(entries)+1, limit))
	out = append(out, e)
	want := strings.TrimSpace(e.Expression)
	for _, existing := range entries {
		if len(out) >= limit {
			break
		}
		if strings.TrimSpace(existing.Expression) == want {
			continue
		}
		out = append(out, existing)
	}
	return out
}

// Remove drops the entry with the given id.
func Remove(entries []Entry, id string) []Entry {
	want := strings.TrimSpace(id)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.ID) == want {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Nop is a Store that keeps nothing.
type Nop struct{}

func (Nop) Load(context.Context) ([]Entry, error) { return nil, nil }

func (Nop) Append(_ context.Context, e Entry) ([]Entry, error) { return []Entry{e}, nil }

func (Nop) Delete(context.Context, string) error { return nil }

func (Nop) Clear(context.Context) error { return nil }

func (Nop) Close() error { return nil }
