package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/save/migrations"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// SQLiteStore keeps every slot as a row in one SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *logrus.Entry
}

// OpenSQLite opens (or creates) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db, log: logger.For("save")}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the slot row.
func (s *SQLiteStore) Save(ctx context.Context, slot int, snap Snapshot) error {
	tracer := telemetry.Tracer("save")
	ctx, span := tracer.Start(ctx, "save.write")
	defer span.End()
	span.SetAttributes(attribute.Int("save.slot", slot), attribute.String("save.backend", "sqlite"))

	if err := CheckSlot(slot); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO saves (slot, player_name, player_level, location, snapshot, saved_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    player_name = excluded.player_name,
    player_level = excluded.player_level,
    location = excluded.location,
    snapshot = excluded.snapshot,
    saved_at = excluded.saved_at`,
		slot, snap.Player.Name, snap.Player.Level, snap.World.Location, string(data), snap.SavedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	s.log.WithFields(logrus.Fields{"slot": slot, "bytes": len(data)}).Info("saved")
	return nil
}

// Load reads and validates a slot.
func (s *SQLiteStore) Load(ctx context.Context, slot int) (Snapshot, error) {
	tracer := telemetry.Tracer("save")
	ctx, span := tracer.Start(ctx, "save.read")
	defer span.End()
	span.SetAttributes(attribute.Int("save.slot", slot), attribute.String("save.backend", "sqlite"))

	if err := CheckSlot(slot); err != nil {
		return Snapshot{}, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT snapshot FROM saves WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: slot %d", ErrNoSuchSave, slot)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read slot %d: %w", slot, err)
	}
	snap, err := Decode([]byte(data))
	if err != nil {
		s.log.WithError(err).WithField("slot", slot).Warn("corrupt save")
		return Snapshot{}, fmt.Errorf("slot %d: %w", slot, err)
	}
	return snap, nil
}

// List summarises every slot from the indexed columns.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slot, player_name, player_level, location, saved_at FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			savedAt int64
		)
		if err := rows.Scan(&sum.Slot, &sum.Name, &sum.Level, &sum.Location, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		sum.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a slot.
func (s *SQLiteStore) Delete(ctx context.Context, slot int) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: slot %d", ErrNoSuchSave, slot)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
