package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ppiankov/notallowed/internal/denylist"
)

// Backend names accepted in Config.Backend
const (
	BackendEmbedded = "embedded" // Lists compiled into the binary
	BackendDir      = "dir"      // <data_dir>/<category>.txt
	BackendRedis    = "redis"    // Redis lists <prefix><category>
)

// Config is the complete notallowed configuration
type Config struct {
	// Backend is one of embedded, dir, redis
	Backend string `yaml:"backend" mapstructure:"backend"`
	// DataDir holds <category>.txt files for the dir backend
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	// Lists overrides single categories with a file, e.g. words: /etc/words.txt
	Lists map[string]string `yaml:"lists,omitempty" mapstructure:"lists"`
	// OptionalFiles treats missing list files as empty lists
	OptionalFiles bool `yaml:"optional_files" mapstructure:"optional_files"`

	Redis       RedisConfig       `yaml:"redis" mapstructure:"redis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RedisConfig configures the redis backend
type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password,omitempty" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`   // List key is <prefix><category>
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per-list read timeout
}

// ConcurrencyConfig controls batch checking
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"` // Print JSON reports instead of text
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Backend: BackendEmbedded,
		DataDir: "./banned-data",
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Prefix:  "notallowed:",
			Timeout: 5 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

// BuildSources resolves the category to source bindings. The returned close
// function releases backend connections and is never nil.
func (c Config) BuildSources() (denylist.Sources, func() error, error) {
	noop := func() error { return nil }

	var sources denylist.Sources
	closeFn := noop

	switch c.Backend {
	case "", BackendEmbedded:
		sources = denylist.EmbeddedSources()
	case BackendDir:
		sources = make(denylist.Sources)
		for _, cat := range denylist.AllCategories() {
			sources[cat] = denylist.FileSource{
				Path:     filepath.Join(c.DataDir, cat.FileName()),
				Optional: c.OptionalFiles,
			}
		}
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		sources = make(denylist.Sources)
		for _, cat := range denylist.AllCategories() {
			sources[cat] = denylist.RedisSource{
				Client:  client,
				Key:     c.Redis.Prefix + cat.String(),
				Timeout: c.Redis.Timeout,
			}
		}
		closeFn = client.Close
	default:
		return nil, noop, fmt.Errorf("unknown backend %q", c.Backend)
	}

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(c.Lists))
	for name := range c.Lists {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat, err := denylist.ParseCategory(name)
		if err != nil {
			_ = closeFn()
			return nil, noop, fmt.Errorf("lists: %w", err)
		}
		sources[cat] = denylist.FileSource{Path: c.Lists[name], Optional: c.OptionalFiles}
	}

	return sources, closeFn, nil
}
