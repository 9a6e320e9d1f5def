// Package store persists game snapshots in named save slots.
//
// A store is opened from a spec string "backend:arg":
//
//   - "memory"
//   - "file:<dir>" one indented JSON file per slot
//   - "msgpack:<dir>" one msgpack file per slot
//   - "gzip:<dir>" one gzip compressed JSON file per slot
//   - "sqlite:<path>" one row per slot in a sqlite database
//   - "s3:<bucket>/<prefix>" one JSON object per slot
//
// A spec without a backend is a directory for the file backend. Loading a
// missing slot returns an error wrapping fs.ErrNotExist, whatever the backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/younginvestor"
)

// Backend names.
const (
	BackendMemory  = "memory"
	BackendFile    = "file"
	BackendMsgpack = "msgpack"
	BackendGzip    = "gzip"
	BackendSQLite  = "sqlite"
	BackendS3      = "s3"
)

// DefaultSpec is the store used when none is configured.
const DefaultSpec = "file:.younginvestor"

// Store saves and loads snapshots by slot name. Implementations are safe for
// concurrent use.
type Store interface {
	Load(ctx context.Context, slot string) (younginvestor.Snapshot, error)
	Save(ctx context.Context, slot string, s younginvestor.Snapshot) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

// Open returns the store described by spec.
func Open(ctx context.Context, spec string, opts ...Option) (Store, error) {
	backend, arg := parseSpec(spec)
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(orDefault(arg, ".younginvestor"), jsonCodec), nil
	case BackendMsgpack:
		return NewFile(orDefault(arg, ".younginvestor"), msgpackCodec), nil
	case BackendGzip:
		return NewFile(orDefault(arg, ".younginvestor"), gzipCodec), nil
	case BackendSQLite:
		return NewSQLite(ctx, orDefault(arg, "younginvestor.db"))
	case BackendS3:
		bucket, prefix, _ := strings.Cut(arg, "/")
		if bucket == "" {
			return nil, fmt.Errorf("s3 store needs a bucket: %q", spec)
		}
		return NewS3(ctx, bucket, prefix, o.s3)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return parseSpec(DefaultSpec)
	}
	backend, arg, found := strings.Cut(spec, ":")
	if !found {
		switch b := strings.ToLower(spec); b {
		case BackendMemory, BackendFile, BackendMsgpack, BackendGzip, BackendSQLite:
			return b, ""
		default:
			// a bare path is a directory of JSON files
			return BackendFile, spec
		}
	}
	return strings.ToLower(backend), arg
}

func orDefault(arg, def string) string {
	if arg == "" {
		return def
	}
	return arg
}

// Option configures Open.
type Option func(*options)

type options struct {
	s3 S3Config
}

// WithS3 sets the connection settings of the s3 backend.
func WithS3(c S3Config) Option {
	return func(o *options) { o.s3 = c }
}

var errSlotRequired = errors.New("save slot name is required")

// checkSlot rejects slot names that cannot be used as a file name.
func checkSlot(slot string) error {
	if slot == "" {
		return errSlotRequired
	}
	if strings.ContainsAny(slot, `/\:`) || slot == "." || slot == ".." {
		return fmt.Errorf("invalid save slot name %q", slot)
	}
	return nil
}
