package buffer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/haivivi/flexbuf/pkg/encoding"
)

const (
	// DefaultPageSize is the growth granularity in bytes.
	DefaultPageSize = 4096
	// DefaultMinPages is the number of pages the buffer never shrinks below.
	DefaultMinPages = 1
	// DefaultMaxSize is the hard ceiling on the logical size (10 MiB).
	DefaultMaxSize = 10 << 20
	// DefaultHouseKeep is how long the buffer waits without growth before
	// shrinking back to its floor.
	DefaultHouseKeep = 5 * time.Second
)

// Config configures a FlexBuffer. Zero or negative values select the
// package defaults, so the zero Config is usable as is.
type Config struct {
	// PageSize is the growth granularity. Capacity is always a multiple of it.
	PageSize int `yaml:"page_size,omitempty" json:"page_size,omitempty" msgpack:"page_size"`

	// MinPages is the floor capacity in pages. Values below 1 become 1.
	MinPages int `yaml:"min_pages,omitempty" json:"min_pages,omitempty" msgpack:"min_pages"`

	// MaxLength is the hard ceiling on the logical size in bytes.
	MaxLength int `yaml:"max_length,omitempty" json:"max_length,omitempty" msgpack:"max_length"`

	// HouseKeep is the idle delay before the buffer drops its content and
	// shrinks back to MinPages.
	HouseKeep time.Duration `yaml:"house_keep,omitempty" json:"house_keep,omitempty" msgpack:"house_keep"`

	// Logger receives reallocation events at debug level.
	// Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-" json:"-" msgpack:"-"`
}

// WithDefaults returns a copy of c with every unset field filled in.
// A nil receiver yields the default configuration.
func (c *Config) WithDefaults() Config {
	var out Config
	if c != nil {
		out = *c
	}
	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}
	if out.MinPages < DefaultMinPages {
		out.MinPages = DefaultMinPages
	}
	if out.MaxLength <= 0 {
		out.MaxLength = DefaultMaxSize
	}
	if out.HouseKeep <= 0 {
		out.HouseKeep = DefaultHouseKeep
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}

// Validate reports configurations under which the buffer cannot hold even a
// single page. NewFlex accepts such configurations; every growth then fails
// with ErrLimitExceeded.
func (c *Config) Validate() error {
	cfg := c.WithDefaults()
	if cfg.MaxLength < cfg.PageSize {
		return fmt.Errorf("buffer: max_length %d is smaller than page_size %d", cfg.MaxLength, cfg.PageSize)
	}
	return nil
}

type configJSON struct {
	PageSize  int               `json:"page_size,omitempty"`
	MinPages  int               `json:"min_pages,omitempty"`
	MaxLength int               `json:"max_length,omitempty"`
	HouseKeep encoding.Duration `json:"house_keep,omitempty"`
}

// MarshalJSON writes house_keep as a duration string such as "5s".
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		PageSize:  c.PageSize,
		MinPages:  c.MinPages,
		MaxLength: c.MaxLength,
		HouseKeep: encoding.Duration(c.HouseKeep),
	})
}

// UnmarshalJSON accepts house_keep as a duration string or integer
// nanoseconds. Logger is left untouched.
func (c *Config) UnmarshalJSON(b []byte) error {
	var v configJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("buffer: config: %w", err)
	}
	c.PageSize = v.PageSize
	c.MinPages = v.MinPages
	c.MaxLength = v.MaxLength
	c.HouseKeep = time.Duration(v.HouseKeep)
	return nil
}
