package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"devkit/internal/util"
)

const fileVersion = 1

type fileDoc struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// FileStore keeps entries in a JSON document guarded by a lock file.
type FileStore struct {
	Path  string
	Limit int
}

func NewFileStore(path string, limit int) *FileStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &FileStore{Path: strings.TrimSpace(path), Limit: limit}
}

func (s *FileStore) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func (s *FileStore) Append(ctx context.Context, e Entry) ([]Entry, error) {
	var out []Entry
	err := s.update(ctx, func(entries []Entry) []Entry {
		out = Push(entries, e, s.Limit)
		return out
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return s.update(ctx, func(entries []Entry) []Entry {
		return Remove(entries, id)
	})
}

func (s *FileStore) Clear(ctx context.Context) error {
	return s.update(ctx, func([]Entry) []Entry { return nil })
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (fileDoc, error) {
	if s.Path == "" {
		return fileDoc{}, errors.New("history path is empty")
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileDoc{Version: fileVersion}, nil
		}
		return fileDoc{}, err
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDoc{}, fmt.Errorf("parse history %s: %w", s.Path, err)
	}
	if doc.Version <= 0 {
		doc.Version = fileVersion
	}
	return doc, nil
}

func (s *FileStore) update(ctx context.Context, fn func([]Entry) []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Path == "" {
		return errors.New("history path is empty")
	}
	return util.WithFileLock(s.Path+".lock", util.DefaultLockTimeout, func() error {
		doc, err := s.read()
		if err != nil {
			return err
		}
		doc.Version = fileVersion
		doc.Entries = fn(doc.Entries)
		if doc.Entries == nil {
			doc.Entries = []Entry{}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		return util.WriteFileAtomic(s.Path, data, 0o644)
	})
}
