// Package save persists session snapshots in numbered slots.
package save

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Persistence errors.
var (
	ErrNoSuchSave  = errors.New("no such save")
	ErrCorruptSave = errors.New("corrupt save")
	ErrInvalidSlot = errors.New("invalid save slot")
)

// Slot bounds.
const (
	FirstSlot = 1
	MaxSlots  = 10
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is everything needed to resume a session. The director is not
// part of it; it is rebuilt fresh on load.
type Snapshot struct {
	Version int       `yaml:"version"`
	SavedAt time.Time `yaml:"saved_at"`
	Player  Player    `yaml:"player"`
	World   World     `yaml:"world"`
}

// Player is the survivor's persisted state.
type Player struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Level            int            `yaml:"level"`
	Damage           int            `yaml:"damage"`
	Health           int            `yaml:"health"`
	MaxHealth        int            `yaml:"max_health"`
	Hunger           int            `yaml:"hunger"`
	MaxHunger        int            `yaml:"max_hunger"`
	Infection        int            `yaml:"infection"`
	Experience       int            `yaml:"experience"`
	ExperienceToNext int            `yaml:"experience_to_next"`
	SkillPoints      int            `yaml:"skill_points"`
	BaseDamage       int            `yaml:"base_damage"`
	BaseMaxHealth    int            `yaml:"base_max_health"`
	Capacity         int            `yaml:"capacity"`
	Weapon           Weapon         `yaml:"weapon"`
	Inventory        []Item         `yaml:"inventory"`
	Skills           map[string]int `yaml:"skills,omitempty"`
}

// Weapon is the equipped weapon. An empty id means bare fists.
type Weapon struct {
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name"`
	Boost int    `yaml:"boost"`
}

// Item is one carried stack with its full descriptor.
type Item struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Category      string  `yaml:"category"`
	Description   string  `yaml:"description,omitempty"`
	Quantity      int     `yaml:"quantity"`
	Space         int     `yaml:"space"`
	Consumable    bool    `yaml:"consumable,omitempty"`
	Usable        bool    `yaml:"usable,omitempty"`
	HealthRestore int     `yaml:"health_restore,omitempty"`
	HungerRestore int     `yaml:"hunger_restore,omitempty"`
	InfectionCure int     `yaml:"infection_cure,omitempty"`
	DamageBoost   int     `yaml:"damage_boost,omitempty"`
	Potency       float64 `yaml:"potency,omitempty"`
}

// World is the exploration progress.
type World struct {
	Location       string   `yaml:"location"`
	Chapter        int      `yaml:"chapter"`
	Visited        bool     `yaml:"visited"`
	Steps          int      `yaml:"steps"`
	Quota          int      `yaml:"quota"`
	ReadyToTravel  bool     `yaml:"ready_to_travel"`
	TotalMoves     int      `yaml:"total_moves"`
	Locations      []string `yaml:"visited_locations"`
	PickedUpLoot   []string `yaml:"picked_up_loot"`
	CollectedClues []int    `yaml:"collected_clues"`
	BossesDefeated []string `yaml:"bosses_defeated,omitempty"`
}

// Summary describes a filled slot.
type Summary struct {
	Slot     int
	Name     string
	Level    int
	Location string
	SavedAt  time.Time
}

func summarize(slot int, s Snapshot) Summary {
	return Summary{Slot: slot, Name: s.Player.Name, Level: s.Player.Level, Location: s.World.Location, SavedAt: s.SavedAt}
}

// Validate checks the shape of a snapshot. Content checks happen on restore.
func (s Snapshot) Validate() error {
	switch {
	case s.Version != SnapshotVersion:
		return fmt.Errorf("%w: version %d", ErrCorruptSave, s.Version)
	case s.Player.Name == "":
		return fmt.Errorf("%w: missing player name", ErrCorruptSave)
	case s.Player.Level < 1:
		return fmt.Errorf("%w: level %d", ErrCorruptSave, s.Player.Level)
	case s.World.Location == "":
		return fmt.Errorf("%w: missing location", ErrCorruptSave)
	}
	for _, it := range s.Player.Inventory {
		if it.ID == "" || it.Quantity <= 0 || it.Space < 0 {
			return fmt.Errorf("%w: bad inventory entry %q", ErrCorruptSave, it.ID)
		}
	}
	return nil
}

// Encode renders a snapshot as YAML.
func Encode(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

// Decode parses and validates a YAML snapshot.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// CheckSlot rejects slot numbers outside [FirstSlot, MaxSlots].
func CheckSlot(slot int) error {
	if slot < FirstSlot || slot > MaxSlots {
		return fmt.Errorf("%w: %d (use %d-%d)", ErrInvalidSlot, slot, FirstSlot, MaxSlots)
	}
	return nil
}
