package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// YAMLStore keeps one YAML file per slot in a directory.
type YAMLStore struct {
	dir string
	log *logrus.Entry
}

// NewYAMLStore creates the directory if needed.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &YAMLStore{dir: filepath.Clean(dir), log: logger.For("save")}, nil
}

func (s *YAMLStore) path(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("slot_%d.yaml", slot))
}

// Save writes the slot atomically: a temp file is renamed over the old one.
func (s *YAMLStore) Save(ctx context.Context, slot int, snap Snapshot) error {
	tracer := telemetry.Tracer("save")
	_, span := tracer.Start(ctx, "save.write")
	defer span.End()
	span.SetAttributes(attribute.Int("save.slot", slot), attribute.String("save.backend", "yaml"))

	if err := CheckSlot(slot); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".slot_%d-*.tmp", slot))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("replace slot %d: %w", slot, err)
	}

	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	s.log.WithFields(logrus.Fields{"slot": slot, "bytes": len(data)}).Info("saved")
	return nil
}

// Load reads and validates a slot.
func (s *YAMLStore) Load(ctx context.Context, slot int) (Snapshot, error) {
	tracer := telemetry.Tracer("save")
	_, span := tracer.Start(ctx, "save.read")
	defer span.End()
	span.SetAttributes(attribute.Int("save.slot", slot), attribute.String("save.backend", "yaml"))

	if err := CheckSlot(slot); err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: slot %d", ErrNoSuchSave, slot)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read slot %d: %w", slot, err)
	}

	snap, err := Decode(data)
	if err != nil {
		s.log.WithError(err).WithField("slot", slot).Warn("corrupt save")
		return Snapshot{}, fmt.Errorf("slot %d: %w", slot, err)
	}
	return snap, nil
}

// List summarises every readable slot. Corrupt slots are skipped.
func (s *YAMLStore) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	for slot := FirstSlot; slot <= MaxSlots; slot++ {
		snap, err := s.Load(ctx, slot)
		if errors.Is(err, ErrNoSuchSave) || errors.Is(err, ErrCorruptSave) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(slot, snap))
	}
	return out, nil
}

// Delete removes a slot.
func (s *YAMLStore) Delete(ctx context.Context, slot int) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	err := os.Remove(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: slot %d", ErrNoSuchSave, slot)
	}
	return err
}

// Close is a no-op for files.
func (s *YAMLStore) Close() error { return nil }

var _ Store = (*YAMLStore)(nil)
