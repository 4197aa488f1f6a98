// Package ledger tracks the survivor's progression: vitals, leveling,
// inventory, equipped weapon and the skill tree.
package ledger

import (
	"math"

	"github.com/google/uuid"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Starting values for a new survivor.
const (
	StartHealth     = 100
	StartHunger     = 100
	StartDamage     = 15
	StartXPToNext   = 100
	DefaultCapacity = 20

	StarterWeaponID = "weapon_knife"
	fistsName       = "Fists"
	fistsPenalty    = -7

	// Per level gained.
	levelSkillPoints = 3
	levelDamage      = 2
	levelMaxHealth   = 10

	// Infection at or above this makes the survivor feverish.
	FeverThreshold = 50
	MaxInfection   = 100
)

// Weapon is the equipped weapon. An empty ID means bare fists.
type Weapon struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Boost int    `yaml:"boost"`
}

// Ledger is the survivor's full progression record.
type Ledger struct {
	id   string
	name string

	health, maxHealth int
	hunger, maxHunger int
	infection         int

	level       int
	experience  int
	xpToNext    int
	skillPoints int

	baseDamage    int
	baseMaxHealth int
	damage        int
	weapon        Weapon

	inv    *Inventory
	skills *SkillTree
	items  *gamedata.ItemRegistry
}

// New creates a level 1 survivor carrying and wielding the starter knife.
func New(name string, items *gamedata.ItemRegistry, skills []gamedata.SkillDef) *Ledger {
	l := &Ledger{
		id:            uuid.NewString(),
		name:          name,
		health:        StartHealth,
		maxHealth:     StartHealth,
		hunger:        StartHunger,
		maxHunger:     StartHunger,
		level:         1,
		xpToNext:      StartXPToNext,
		baseDamage:    StartDamage,
		baseMaxHealth: StartHealth,
		weapon:        Weapon{Name: fistsName, Boost: fistsPenalty},
		inv:           NewInventory(DefaultCapacity),
		skills:        NewSkillTree(skills),
		items:         items,
	}
	if knife := items.GetByID(StarterWeaponID); knife != nil {
		l.inv.Add(knife, 1)
		l.weapon = Weapon{ID: knife.ID, Name: knife.Name, Boost: knife.DamageBoost}
	}
	l.ApplySkillBonuses()
	return l
}

// ID returns the survivor's unique id.
func (l *Ledger) ID() string { return l.id }

// Name returns the survivor's name.
func (l *Ledger) Name() string { return l.name }

// Health returns current health.
func (l *Ledger) Health() int { return l.health }

// MaxHealth returns derived maximum health.
func (l *Ledger) MaxHealth() int { return l.maxHealth }

// Hunger returns current hunger; 0 is starving.
func (l *Ledger) Hunger() int { return l.hunger }

// MaxHunger returns maximum hunger.
func (l *Ledger) MaxHunger() int { return l.maxHunger }

// Level returns the survivor's level.
func (l *Ledger) Level() int { return l.level }

// Experience returns experience toward the next level.
func (l *Ledger) Experience() int { return l.experience }

// ExperienceToNext returns the current level-up threshold.
func (l *Ledger) ExperienceToNext() int { return l.xpToNext }

// SkillPoints returns unspent skill points.
func (l *Ledger) SkillPoints() int { return l.skillPoints }

// Damage returns derived attack damage.
func (l *Ledger) Damage() int { return l.damage }

// Weapon returns the equipped weapon.
func (l *Ledger) Weapon() Weapon { return l.weapon }

// Infection returns the infection level.
func (l *Ledger) Infection() int { return l.infection }

// Inventory returns the backpack.
func (l *Ledger) Inventory() *Inventory { return l.inv }

// Skills returns the skill tree.
func (l *Ledger) Skills() *SkillTree { return l.skills }

// Speed is derived from level.
func (l *Ledger) Speed() int { return l.level * 2 }

// IsAlive returns true if health remains.
func (l *Ledger) IsAlive() bool { return l.health > 0 }

// HealthRatio returns health / maxHealth in [0,1].
func (l *Ledger) HealthRatio() float64 {
	if l.maxHealth <= 0 {
		return 0
	}
	return float64(l.health) / float64(l.maxHealth)
}

// Feverish returns true once infection reaches the fever threshold.
func (l *Ledger) Feverish() bool { return l.infection >= FeverThreshold }

// TakeDamage reduces health and returns actual damage taken.
func (l *Ledger) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > l.health {
		actual = l.health
	}
	l.health -= actual
	return actual
}

// Heal restores health and returns actual amount healed.
func (l *Ledger) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if l.health+actual > l.maxHealth {
		actual = l.maxHealth - l.health
	}
	l.health += actual
	return actual
}

// SetHealth sets health clamped to [0, maxHealth].
func (l *Ledger) SetHealth(v int) {
	l.health = clamp(v, 0, l.maxHealth)
}

// SetHunger sets hunger clamped to [0, maxHunger].
func (l *Ledger) SetHunger(v int) {
	l.hunger = clamp(v, 0, l.maxHunger)
}

// Eat restores hunger and returns the actual amount restored.
func (l *Ledger) Eat(amount int) int {
	before := l.hunger
	l.SetHunger(l.hunger + amount)
	return l.hunger - before
}

// Infect raises infection, reduced by the infection resistance skill.
// Returns the infection actually gained.
func (l *Ledger) Infect(amount int) int {
	if amount <= 0 {
		return 0
	}
	resist := l.skills.Total(gamedata.BonusInfectionResistance)
	if resist > 100 {
		resist = 100
	}
	gained := int(math.Round(float64(amount) * (100 - resist) / 100))
	before := l.infection
	l.infection = clamp(l.infection+gained, 0, MaxInfection)
	return l.infection - before
}

// CureInfection lowers infection and returns the amount cured.
func (l *Ledger) CureInfection(amount int) int {
	before := l.infection
	l.infection = clamp(l.infection-amount, 0, MaxInfection)
	return before - l.infection
}

// GainExperience adds experience and resolves every level-up it causes.
// Each level costs the current threshold, grants skill points, base damage
// and base max health, and fully heals. Returns the number of levels gained.
func (l *Ledger) GainExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	l.experience += amount

	gained := 0
	for l.experience >= l.xpToNext {
		l.experience -= l.xpToNext
		l.xpToNext = int(math.Round(100 * float64(l.level) * 1.5))
		l.level++
		l.skillPoints += levelSkillPoints
		l.baseDamage += levelDamage
		l.baseMaxHealth += levelMaxHealth
		l.ApplySkillBonuses()
		l.health = l.maxHealth
		gained++
	}
	return gained
}

// ApplySkillBonuses recomputes damage and max health from base stats,
// skill totals and the weapon. Health keeps its ratio when max health grows.
func (l *Ledger) ApplySkillBonuses() {
	l.damage = max(1, l.baseDamage+int(l.skills.Total(gamedata.BonusDamage))+l.weapon.Boost)

	oldMax := l.maxHealth
	newMax := max(1, l.baseMaxHealth+int(l.skills.Total(gamedata.BonusMaxHealth)))
	if newMax > oldMax && oldMax > 0 {
		l.health = int(math.Round(float64(l.health) * float64(newMax) / float64(oldMax)))
	}
	l.maxHealth = newMax
	l.health = clamp(l.health, 0, l.maxHealth)
}

// LearnSkill spends points to unlock or upgrade a skill.
func (l *Ledger) LearnSkill(id string) error {
	cost, err := l.skills.Learn(id, l.skillPoints)
	if err != nil {
		return err
	}
	l.skillPoints -= cost
	l.ApplySkillBonuses()
	return nil
}

// Bonus returns the summed value of unlocked skills of the given type.
func (l *Ledger) Bonus(t gamedata.BonusType) float64 {
	return l.skills.Total(t)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
