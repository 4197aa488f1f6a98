package director

import "github.com/sirupsen/logrus"

// AdjustZombieCount retunes a wave size for the survivor's state, within [2,8].
func (d *Director) AdjustZombieCount(base int) int {
	n := base
	switch {
	case d.healthRatio < 0.3:
		n -= 2
	case d.healthRatio < 0.5:
		n--
	}
	switch {
	case d.elapsed > 600:
		n += 2
	case d.elapsed > 300:
		n++
	}
	return min(max(n, MinZombies), MaxZombies)
}

// ZombieChance is the percent chance a combat roll actually spawns enemies.
func (d *Director) ZombieChance() int {
	chance := 50
	switch {
	case d.healthRatio > 0.7:
		chance += 15
	case d.healthRatio < 0.3:
		chance -= 10
	}
	if d.elapsed > 300 {
		chance += 10
	}
	return chance
}

// ShouldSpawnZombie rolls ZombieChance.
func (d *Director) ShouldSpawnZombie() bool {
	return d.roll(d.ZombieChance())
}

// LootChance is the percent chance a loot roll actually offers loot.
func (d *Director) LootChance() int {
	chance := 70
	switch {
	case d.healthRatio < 0.3:
		chance += 25
	case d.healthRatio < 0.5:
		chance += 15
	}
	return chance
}

// ShouldSpawnLoot rolls LootChance.
func (d *Director) ShouldSpawnLoot() bool {
	return d.roll(d.LootChance())
}

// ClueGuaranteed returns true once the survivor has wandered long enough
// that an unspawned clue must turn up.
func (d *Director) ClueGuaranteed() bool {
	return d.totalMoves > ClueGuaranteeMoves && !d.AllCluesSpawned()
}

// ShouldSpawnClue decides whether a clue roll offers a clue.
func (d *Director) ShouldSpawnClue() bool {
	if d.ClueGuaranteed() {
		return true
	}
	if d.clueCooldown > 0 || d.AllCluesSpawned() {
		return false
	}
	return d.roll(50)
}

// MarkClueSpawned records a clue as found and starts the clue cooldown.
func (d *Director) MarkClueSpawned(id int) {
	d.spawnedClues.Put(id)
	d.clueCooldown = ClueCooldown
	d.log.WithFields(logrus.Fields{"clue": id, "spawned": d.spawnedClues.Size()}).Debug("clue spawned")
}

// RecordCollected marks clues collected in an earlier session without a cooldown.
func (d *Director) RecordCollected(ids []int) {
	for _, id := range ids {
		d.spawnedClues.Put(id)
	}
}

// AllCluesSpawned returns true when every registered clue has been spawned.
func (d *Director) AllCluesSpawned() bool {
	all := true
	d.allClues.Each(func(id int) {
		if !d.spawnedClues.Has(id) {
			all = false
		}
	})
	return all
}

// SpecialZombieChance is the percent chance a wave slot holds a special variant.
func (d *Director) SpecialZombieChance() int {
	return int(d.tension*30) + d.elapsed/60
}

// ShouldSpawnSpecialZombie rolls SpecialZombieChance.
func (d *Director) ShouldSpawnSpecialZombie() bool {
	return d.roll(d.SpecialZombieChance())
}

// LootQualityModifier scales healing loot: generous when the survivor is hurt.
func (d *Director) LootQualityModifier() float64 {
	switch {
	case d.healthRatio < 0.3:
		return 1.8
	case d.healthRatio < 0.5:
		return 1.4
	case d.elapsed > 600:
		return 1.2
	default:
		return 1.0
	}
}

// BonusLootChance is extra percent chance for a second find.
func (d *Director) BonusLootChance() int {
	bonus := 0
	if d.healthRatio < 0.5 {
		bonus += 25
	}
	if d.elapsed > 300 {
		bonus += 10
	}
	return bonus
}

// ShouldGrantBonusLoot decides whether a critical survivor also finds first aid.
func (d *Director) ShouldGrantBonusLoot() bool {
	return d.healthRatio < 0.3 && d.roll(40)
}

// EventChance is the percent chance an event fires this move.
func (d *Director) EventChance() int {
	if d.eventCooldown > 0 || d.movesSinceEvent < minMovesBetweenEvent {
		return 0
	}
	chance := 5
	if d.tension > 0.7 {
		chance += 15
	}
	if d.elapsed > 300 && d.movesSinceEvent > 20 {
		chance += 10
	}
	return chance
}

// ShouldTriggerEvent rolls EventChance.
func (d *Director) ShouldTriggerEvent() bool {
	chance := d.EventChance()
	return chance > 0 && d.roll(chance)
}

// GenerateRandomEvent picks an event for the survivor's state and starts the cooldown.
func (d *Director) GenerateRandomEvent() Event {
	table := mixedEvents
	switch {
	case d.healthRatio < 0.3:
		table = criticalEvents
	case d.tension > 0.7:
		table = tenseEvents
	}
	e := table[d.rng.Intn(len(table))]

	d.movesSinceEvent = 0
	d.eventCooldown = EventCooldown
	d.log.WithFields(logrus.Fields{"event": e.String(), "tension": d.tension}).Info("random event")
	return e
}
