package tools

import (
	"time"

	"devkit/internal/history"

	"github.com/charmbracelet/log"
)

// Options configures the built-in tool set.
type Options struct {
	Timezone  string
	RunCount  int
	KeyLength int
	History   history.Store
	Logger    *log.Logger
	Now       func() time.Time
}

// NewDefaultRegistry registers every devkit tool.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(&CronFromPhraseTool{
		Timezone: opts.Timezone,
		RunCount: opts.RunCount,
		Now:      opts.Now,
		History:  opts.History,
		Logger:   opts.Logger,
	})
	r.Register(&CronDescribeTool{})
	r.Register(&CronNextRunsTool{Timezone: opts.Timezone, RunCount: opts.RunCount, Now: opts.Now})
	r.Register(&TailwindMigrateTool{})
	r.Register(&TailwindThemeTool{})
	r.Register(&PaletteShadesTool{})
	r.Register(&EnvValidateTool{})
	r.Register(&EnvExportTool{})
	r.Register(&SecretKeyTool{Length: opts.KeyLength})
	return r
}
