package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleSnapshot(name string) Snapshot {
	return Snapshot{
		Version: SnapshotVersion,
		SavedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Player: Player{
			ID:               "8d7c1f0e-0000-4000-8000-000000000001",
			Name:             name,
			Level:            3,
			Damage:           18,
			Health:           77,
			MaxHealth:        120,
			Hunger:           64,
			MaxHunger:        100,
			Infection:        12,
			Experience:       40,
			ExperienceToNext: 150,
			SkillPoints:      1,
			BaseDamage:       10,
			BaseMaxHealth:    100,
			Capacity:         20,
			Weapon:           Weapon{ID: "weapon_knife", Name: "Kitchen Knife", Boost: 8},
			Inventory: []Item{
				{ID: "weapon_knife", Name: "Kitchen Knife", Category: "weapon", Quantity: 1, Space: 2, DamageBoost: 8},
				{ID: "med_bandage", Name: "Bandage", Category: "medical", Quantity: 2, Space: 1, Consumable: true, Usable: true, HealthRestore: 15, Potency: 1.4},
			},
			Skills: map[string]int{"healing": 1},
		},
		World: World{
			Location:       "loc_hospital",
			Chapter:        2,
			Visited:        true,
			Steps:          5,
			Quota:          1,
			TotalMoves:     31,
			Locations:      []string{"loc_ruined_city", "loc_hospital"},
			PickedUpLoot:   []string{"loc_ruined_city_up"},
			CollectedClues: []int{1, 4},
		},
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	y, err := NewYAMLStore(filepath.Join(dir, "yaml"))
	if err != nil {
		t.Fatalf("NewYAMLStore() error = %v", err)
	}
	s, err := OpenSQLite(filepath.Join(dir, "saves.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return map[string]Store{"yaml": y, "sqlite": s}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleSnapshot("Ellis")
			if err := store.Save(ctx, 3, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(ctx, 3)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Player.Name != "Ellis" || got.Player.Health != 77 || got.World.Location != "loc_hospital" {
				t.Errorf("Load() = %+v, want the saved snapshot", got)
			}
			if len(got.Player.Inventory) != 2 || got.Player.Inventory[1].Potency != 1.4 {
				t.Errorf("Load() inventory = %+v", got.Player.Inventory)
			}
			if !got.SavedAt.Equal(want.SavedAt) {
				t.Errorf("SavedAt = %v, want %v", got.SavedAt, want.SavedAt)
			}
		})
	}
}

func TestStoreOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			store.Save(ctx, 1, sampleSnapshot("First"))
			if err := store.Save(ctx, 1, sampleSnapshot("Second")); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(ctx, 1)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Player.Name != "Second" {
				t.Errorf("Name = %q, want Second", got.Player.Name)
			}
		})
	}
}

func TestStoreMissingSlot(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Load(ctx, 7); !errors.Is(err, ErrNoSuchSave) {
				t.Errorf("Load() error = %v, want ErrNoSuchSave", err)
			}
			if err := store.Delete(ctx, 7); !errors.Is(err, ErrNoSuchSave) {
				t.Errorf("Delete() error = %v, want ErrNoSuchSave", err)
			}
		})
	}
}

func TestStoreRejectsBadSlot(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, slot := range []int{0, -1, MaxSlots + 1} {
				if err := store.Save(ctx, slot, sampleSnapshot("Ellis")); !errors.Is(err, ErrInvalidSlot) {
					t.Errorf("Save(%d) error = %v, want ErrInvalidSlot", slot, err)
				}
				if _, err := store.Load(ctx, slot); !errors.Is(err, ErrInvalidSlot) {
					t.Errorf("Load(%d) error = %v, want ErrInvalidSlot", slot, err)
				}
			}
		})
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			store.Save(ctx, 4, sampleSnapshot("Four"))
			store.Save(ctx, 2, sampleSnapshot("Two"))

			list, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 2 || list[0].Slot != 2 || list[1].Slot != 4 {
				t.Fatalf("List() = %+v, want slots 2 and 4", list)
			}
			if list[0].Name != "Two" || list[0].Level != 3 || list[0].Location != "loc_hospital" {
				t.Errorf("List()[0] = %+v", list[0])
			}

			if err := store.Delete(ctx, 2); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			list, _ = store.List(ctx)
			if len(list) != 1 || list[0].Slot != 4 {
				t.Errorf("List() after delete = %+v", list)
			}
		})
	}
}

func TestYAMLStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewYAMLStore(dir)
	if err != nil {
		t.Fatalf("NewYAMLStore() error = %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "player: [unterminated"},
		{"wrong version", "version: 99\nplayer:\n  name: Ellis\n  level: 1\nworld:\n  location: loc_hospital\n"},
		{"no location", "version: 1\nplayer:\n  name: Ellis\n  level: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(dir, "slot_5.yaml"), []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Load(ctx, 5); !errors.Is(err, ErrCorruptSave) {
				t.Errorf("Load() error = %v, want ErrCorruptSave", err)
			}
			list, err := store.List(ctx)
			if err != nil || len(list) != 0 {
				t.Errorf("List() = %v, %v, want corrupt slot skipped", list, err)
			}
		})
	}
}

func TestYAMLStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewYAMLStore(dir)
	if err := store.Save(context.Background(), 1, sampleSnapshot("Ellis")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "slot_1.yaml" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir = %v, want only slot_1.yaml", names)
	}
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	first.Save(context.Background(), 1, sampleSnapshot("Ellis"))
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()
	got, err := second.Load(context.Background(), 1)
	if err != nil || got.Player.Name != "Ellis" {
		t.Errorf("Load() after reopen = %+v, %v", got.Player, err)
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CREATE TABLE a (x);", "CREATE TABLE a (x);"},
		{"-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;", "\nCREATE TABLE a (x);\n"},
		{"-- +migrate Up\nCREATE TABLE a (x);", "\nCREATE TABLE a (x);"},
	}
	for _, tt := range tests {
		if got := upSection(tt.in); got != tt.want {
			t.Errorf("upSection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("postgres", t.TempDir(), ""); err == nil {
		t.Error("Open(postgres) error = nil, want error")
	}
}
