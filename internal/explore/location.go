package explore

import (
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/world"
)

// ExploredSteps is the step count at which a location counts as explored.
const ExploredSteps = 12

// LootEntry is one loot spot of the current location.
type LootEntry struct {
	ID        string
	Item      *gamedata.ItemDef
	Quantity  int
	Direction Direction
	PickedUp  bool
}

// ClueEntry is one clue spot of the current location.
type ClueEntry struct {
	ClueID    int
	Name      string
	Direction Direction
	Collected bool
}

// LocationState is the exploration progress of the current location.
// It is rebuilt on every entry; picked-up and collected flags come from
// the explorer's global records.
type LocationState struct {
	Location      *world.Location
	Steps         int
	Loot          []LootEntry
	Clues         []ClueEntry
	Quota         int // encounters left to fight here
	MaxWaves      int
	ReadyToTravel bool
	BossDefeated  bool
}

// Progress returns the explored share as a percentage capped at 100.
func (s *LocationState) Progress() int {
	return min(100, s.Steps*100/ExploredSteps)
}

// BossPending returns true while the location's boss is still standing.
func (s *LocationState) BossPending() bool {
	return s.Location.HasBoss() && !s.BossDefeated
}

// lootAt returns the first unclaimed loot entry in a direction.
func (s *LocationState) lootAt(d Direction) *LootEntry {
	for i := range s.Loot {
		if s.Loot[i].Direction == d && !s.Loot[i].PickedUp {
			return &s.Loot[i]
		}
	}
	return nil
}

func (s *LocationState) loot(id string) *LootEntry {
	for i := range s.Loot {
		if s.Loot[i].ID == id {
			return &s.Loot[i]
		}
	}
	return nil
}

// clueAt returns the first uncollected clue in a direction, or in any
// direction when anywhere is set.
func (s *LocationState) clueAt(d Direction, anywhere bool) *ClueEntry {
	for i := range s.Clues {
		if !s.Clues[i].Collected && (anywhere || s.Clues[i].Direction == d) {
			return &s.Clues[i]
		}
	}
	return nil
}

// RemainingLoot returns the unclaimed loot entries.
func (s *LocationState) RemainingLoot() []LootEntry {
	var out []LootEntry
	for _, l := range s.Loot {
		if !l.PickedUp {
			out = append(out, l)
		}
	}
	return out
}

// RemainingClues returns how many clues here are still uncollected.
func (s *LocationState) RemainingClues() int {
	n := 0
	for _, c := range s.Clues {
		if !c.Collected {
			n++
		}
	}
	return n
}
