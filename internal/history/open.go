package history

import (
	"fmt"
	"strings"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

type Options struct {
	Backend  string
	Path     string
	RedisURL string
	Key      string
	Limit    int
}

// Open builds the Store named by opts.Backend (file when blank).
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("history.path is required for the %s backend", BackendFile)
		}
		return NewFileStore(opts.Path, opts.Limit), nil
	case BackendRedis:
		return NewRedisStore(opts.RedisURL, opts.Key, opts.Limit)
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s", opts.Backend)
	}
}
