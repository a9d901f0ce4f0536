package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devkit/internal/appinfo"
	"devkit/internal/history"
	"devkit/internal/keygen"
	"devkit/internal/schedule"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FileName  = "devkit"
	EnvPrefix = "DEVKIT"
)

type Config struct {
	Timezone string        `mapstructure:"timezone"`
	RunCount int           `mapstructure:"run_count"`
	History  HistoryConfig `mapstructure:"history"`
	Log      LogConfig     `mapstructure:"log"`
	Keygen   KeygenConfig  `mapstructure:"keygen"`
}

type HistoryConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	RedisURL string `mapstructure:"redis_url"`
	Key      string `mapstructure:"key"`
	Limit    int    `mapstructure:"limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type KeygenConfig struct {
	Length int `mapstructure:"length"`
}

func DefaultConfig() Config {
	return Config{
		Timezone: schedule.DefaultTimezone,
		RunCount: schedule.DefaultRunCount,
		History: HistoryConfig{
			Backend: history.BackendFile,
			Path:    DefaultHistoryPath(),
			Key:     history.DefaultRedisKey,
			Limit:   history.DefaultLimit,
		},
		Log:    LogConfig{Level: "warn"},
		Keygen: KeygenConfig{Length: keygen.DefaultLength},
	}
}

// DefaultHistoryPath is history.json under the user config dir, falling back
// to the working directory when that cannot be determined.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		return filepath.Join("."+appinfo.ConfigDirName, "history.json")
	}
	return filepath.Join(dir, appinfo.ConfigDirName, "history.json")
}

func (c Config) WithDefaults() Config {
	out := c
	def := DefaultConfig()
	if strings.TrimSpace(out.Timezone) == "" {
		out.Timezone = def.Timezone
	}
	if out.RunCount <= 0 {
		out.RunCount = def.RunCount
	}
	if strings.TrimSpace(out.History.Backend) == "" {
		out.History.Backend = def.History.Backend
	}
	out.History.Backend = strings.ToLower(strings.TrimSpace(out.History.Backend))
	if strings.TrimSpace(out.History.Path) == "" {
		out.History.Path = def.History.Path
	}
	if strings.TrimSpace(out.History.Key) == "" {
		out.History.Key = def.History.Key
	}
	if out.History.Limit <= 0 {
		out.History.Limit = def.History.Limit
	}
	if strings.TrimSpace(out.Log.Level) == "" {
		out.Log.Level = def.Log.Level
	}
	if out.Keygen.Length <= 0 {
		out.Keygen.Length = def.Keygen.Length
	}
	return out
}

// Validate rejects settings that would only fail later.
func (c Config) Validate() error {
	if _, err := schedule.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	switch c.History.Backend {
	case history.BackendFile, history.BackendNone:
	case history.BackendRedis:
		if strings.TrimSpace(c.History.RedisURL) == "" {
			return errors.New("history.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("history.backend must be one of: %s, %s, %s",
			history.BackendFile, history.BackendRedis, history.BackendNone)
	}
	if c.Keygen.Length > keygen.MaxLength {
		return fmt.Errorf("keygen.length must be at most %d", keygen.MaxLength)
	}
	return nil
}

// HistoryOptions maps the history section onto history.Open.
func (c Config) HistoryOptions() history.Options {
	return history.Options{
		Backend:  c.History.Backend,
		Path:     c.History.Path,
		RedisURL: c.History.RedisURL,
		Key:      c.History.Key,
		Limit:    c.History.Limit,
	}
}

// Loader reads devkit.yaml, DEVKIT_* environment variables and bound flags,
// in increasing priority.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("run_count", def.RunCount)
	v.SetDefault("history.backend", def.History.Backend)
	v.SetDefault("history.path", def.History.Path)
	v.SetDefault("history.redis_url", "")
	v.SetDefault("history.key", def.History.Key)
	v.SetDefault("history.limit", def.History.Limit)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("keygen.length", def.Keygen.Length)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlag lets a command-line flag override key when it was set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads path, or searches ./devkit.yaml and the user config dir when
// path is blank. A missing discovered file is not an error; an explicit path
// that does not exist is.
func (l *Loader) Load(path string) (Config, error) {
	p := strings.TrimSpace(path)
	if p != "" {
		l.v.SetConfigFile(p)
	} else {
		l.v.SetConfigName(FileName)
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(dir, appinfo.ConfigDirName))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FileUsed reports the config file that was read, if any.
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}
