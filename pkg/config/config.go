// Package config loads spliceplot settings from a TOML file.
//
// Every field is optional; missing values keep the defaults returned by
// [Default]. Unknown keys are rejected so typos surface early.
//
//	width = 1600
//	height = 1000
//	formats = ["svg", "png"]
//
//	[palette]
//	donor = "#F78154"
//
//	[cache]
//	backend = "redis"            # file, sqlite, redis or none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spliceplot/pkg/cache"
	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/pipeline"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
	"github.com/matzehuels/spliceplot/pkg/render/figure/grid"
	"github.com/matzehuels/spliceplot/pkg/render/figure/styles"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// DefaultServerAddr is the listen address of `spliceplot serve`.
const DefaultServerAddr = ":8080"

// Config is the on-disk configuration.
type Config struct {
	Width         float64        `toml:"width"`
	Height        float64        `toml:"height"`
	FontSize      float64        `toml:"font_size"`
	LaneWidth     float64        `toml:"lane_width"`
	ZoomRadius    int            `toml:"zoom_radius"`
	AcceptorLanes bool           `toml:"acceptor_lanes"`
	Formats       []string       `toml:"formats"`
	Palette       styles.Palette `toml:"palette"`
	Grid          *grid.Config   `toml:"grid,omitempty"`
	Cache         Cache          `toml:"cache"`
	Server        Server         `toml:"server"`
}

// Cache selects the artifact cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir,omitempty"`
	Path      string `toml:"path,omitempty"`
	RedisAddr string `toml:"redis_addr,omitempty"`
	Prefix    string `toml:"prefix,omitempty"`
	TTL       string `toml:"ttl"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:         pipeline.DefaultWidth,
		Height:        pipeline.DefaultHeight,
		FontSize:      figure.DefaultFontSize,
		LaneWidth:     figure.DefaultLaneWidth,
		ZoomRadius:    figure.DefaultZoomRadius,
		AcceptorLanes: true,
		Formats:       []string{pipeline.FormatSVG},
		Palette:       styles.DefaultPalette(),
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.TTLArtifact.String(),
		},
		Server: Server{Addr: DefaultServerAddr},
	}
}

// DefaultPath returns the config path in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "spliceplot", FileName), nil
}

// Load reads path over the defaults. A missing file at the default path is
// not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.Palette = cfg.Palette.Merge(styles.DefaultPalette())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges, formats, colors and the grid.
func (c Config) Validate() error {
	if err := errors.ValidateCanvas(c.Width, c.Height, c.FontSize); err != nil {
		return err
	}
	if c.LaneWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "lane_width must be positive, got %g", c.LaneWidth)
	}
	if c.ZoomRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "zoom_radius cannot be negative, got %d", c.ZoomRadius)
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	if c.Grid != nil {
		if err := c.Grid.Validate(); err != nil {
			return err
		}
	}
	if !slices.Contains([]string{cache.BackendFile, cache.BackendSQLite, cache.BackendRedis, cache.BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses the cache TTL. Empty means [cache.TTLArtifact].
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLArtifact, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl: invalid duration %q", c.Cache.TTL)
	}
	return d, nil
}

// CacheOptions returns the options for [cache.New].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		Path:      c.Cache.Path,
		RedisAddr: c.Cache.RedisAddr,
		Prefix:    c.Cache.Prefix,
	}
}

// PipelineOptions returns the render options described by c.
func (c Config) PipelineOptions() pipeline.Options {
	ttl, _ := c.CacheTTL()
	opts := pipeline.Options{
		Width:         c.Width,
		Height:        c.Height,
		FontSize:      c.FontSize,
		LaneWidth:     c.LaneWidth,
		ZoomRadius:    c.ZoomRadius,
		AcceptorLanes: &c.AcceptorLanes,
		Formats:       slices.Clone(c.Formats),
		Palette:       c.Palette,
		TTL:           ttl,
	}
	if c.Grid != nil {
		g := c.Grid.Clone()
		opts.Grid = &g
	}
	return opts
}
