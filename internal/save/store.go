package save

import (
	"context"
	"fmt"
)

// Store keeps snapshots in numbered slots.
type Store interface {
	Save(ctx context.Context, slot int, snap Snapshot) error
	Load(ctx context.Context, slot int) (Snapshot, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, slot int) error
	Close() error
}

// Open returns the store for a backend name ("yaml" or "sqlite").
func Open(backend, dir, sqlitePath string) (Store, error) {
	switch backend {
	case "", "yaml":
		return NewYAMLStore(dir)
	case "sqlite":
		return OpenSQLite(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown save backend %q", backend)
	}
}
