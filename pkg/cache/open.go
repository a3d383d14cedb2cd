package cache

import (
	"context"
	"fmt"
	"path/filepath"
)

// Options select and configure a backend for [New].
type Options struct {
	Backend   string // "file", "sqlite", "redis" or "none"; empty means file
	Dir       string // file backend root; empty uses DefaultDir
	Path      string // sqlite database; empty uses DefaultDir/cache.db
	RedisAddr string
	Prefix    string // redis key prefix; empty uses DefaultRedisPrefix
}

// New opens the backend named by opts.
func New(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(d, DefaultSQLiteFile)
		}
		sc, err := NewSQLiteCache(ctx, path)
		if err != nil {
			return nil, err
		}
		return sc, nil
	case BackendRedis:
		var ropts []RedisOption
		if opts.Prefix != "" {
			ropts = append(ropts, WithRedisPrefix(opts.Prefix))
		}
		rc, err := NewRedisCache(ctx, opts.RedisAddr, ropts...)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
