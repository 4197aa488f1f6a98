package entity

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// CommonVariant is the variant id of the ordinary infected.
const CommonVariant = "common"

// Roster spawns enemies from the variant registry and numbers them per variant.
type Roster struct {
	registry *gamedata.EnemyRegistry
	counters map[string]int
}

// NewRoster creates a roster over the given registry.
func NewRoster(registry *gamedata.EnemyRegistry) *Roster {
	return &Roster{
		registry: registry,
		counters: make(map[string]int),
	}
}

// Spawn creates one enemy of the named variant with health scaled by difficulty.
func (r *Roster) Spawn(variant string, difficulty float64) (Enemy, error) {
	def := r.registry.GetByID(variant)
	if def == nil {
		return nil, fmt.Errorf("unknown enemy variant %q", variant)
	}
	return r.spawnDef(def, difficulty), nil
}

func (r *Roster) spawnDef(def *gamedata.EnemyDef, difficulty float64) *Zombie {
	r.counters[def.ID]++
	id := fmt.Sprintf("%s_%d", def.ID, r.counters[def.ID])
	return NewZombie(def, id, difficulty)
}

// SpawnCommon creates an ordinary infected.
func (r *Roster) SpawnCommon(difficulty float64) Enemy {
	z, err := r.Spawn(CommonVariant, difficulty)
	if err != nil {
		// Content validation guarantees the common variant exists.
		panic(err)
	}
	return z
}

// SpawnSpecial picks a special variant by spawn weight. Falls back to a
// common infected when no variant carries weight.
func (r *Roster) SpawnSpecial(rng *rand.Rand, difficulty float64) Enemy {
	def := r.registry.SpawnRandom(rng)
	if def == nil {
		return r.SpawnCommon(difficulty)
	}
	return r.spawnDef(def, difficulty)
}

// SpawnBoss creates a scripted boss of the given variant under a display name.
// An empty variant uses the registry's boss variant.
func (r *Roster) SpawnBoss(variant, name string, difficulty float64) (Enemy, error) {
	def := r.registry.GetByID(variant)
	if variant == "" {
		def = r.registry.Boss()
	}
	if def == nil {
		return nil, fmt.Errorf("unknown boss variant %q", variant)
	}
	z := r.spawnDef(def, difficulty)
	z.Rename(name)
	return z, nil
}
