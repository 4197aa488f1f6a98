package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Zombie is a data-driven Enemy built from an EnemyDef.
type Zombie struct {
	def       *gamedata.EnemyDef
	id        string
	name      string
	health    int
	maxHealth int
	damage    int
	enraged   bool // Enrage multiplier already applied
	cooldowns []int
	uses      []int
}

// NewZombie creates a zombie with the variant's stats, health scaled by scale.
func NewZombie(def *gamedata.EnemyDef, id string, scale float64) *Zombie {
	if scale <= 0 {
		scale = 1
	}
	hp := max(1, int(math.Round(float64(def.HP)*scale)))
	return &Zombie{
		def:       def,
		id:        id,
		name:      def.Name,
		health:    hp,
		maxHealth: hp,
		damage:    def.Damage,
		cooldowns: make([]int, len(def.Moves)),
		uses:      make([]int, len(def.Moves)),
	}
}

// Rename overrides the display name (scripted bosses).
func (z *Zombie) Rename(name string) {
	if name != "" {
		z.name = name
	}
}

func (z *Zombie) ID() string                { return z.id }
func (z *Zombie) Name() string              { return z.name }
func (z *Zombie) Variant() string           { return z.def.ID }
func (z *Zombie) Color() tcell.Color        { return z.def.TCellColor() }
func (z *Zombie) Health() int               { return z.health }
func (z *Zombie) MaxHealth() int            { return z.maxHealth }
func (z *Zombie) IsAlive() bool             { return z.health > 0 }
func (z *Zombie) Speed() int                { return z.def.Speed }
func (z *Zombie) AttackPower() int          { return z.damage }
func (z *Zombie) StatusEffectOnHit() string { return z.def.StatusEffect }

// Accuracy is the variant's base hit chance plus a per-speed bonus.
func (z *Zombie) Accuracy() float64 {
	return z.def.AccuracyBase + float64(z.def.Speed)*z.def.AccuracyPerSpeed
}

// IsEnraged returns true while the zombie is alive at or below its enrage threshold.
func (z *Zombie) IsEnraged() bool {
	if z.def.EnrageDivisor <= 0 || !z.IsAlive() {
		return false
	}
	return z.health <= z.maxHealth/z.def.EnrageDivisor
}

// ChooseAttack picks the first signature move that is off cooldown and has
// uses left, falling back to a basic attack.
func (z *Zombie) ChooseAttack() Attack {
	for i, m := range z.def.Moves {
		if z.cooldowns[i] > 0 {
			continue
		}
		if m.MaxUses > 0 && z.uses[i] >= m.MaxUses {
			continue
		}
		z.cooldowns[i] = m.Cooldown
		z.uses[i]++
		return Attack{Name: m.Name, Damage: m.Damage}
	}
	return Attack{Name: "Attack", Damage: z.damage}
}

func (z *Zombie) HasSpecialAbility() bool {
	return z.def.Special != nil && z.def.Special.Chance > 0
}

func (z *Zombie) SpecialAbilityChance() int {
	if z.def.Special == nil {
		return 0
	}
	return z.def.Special.Chance
}

// SpecialAbility hits the target for attack power times the ability multiplier.
func (z *Zombie) SpecialAbility(target Target) Attack {
	if !z.HasSpecialAbility() {
		return Attack{}
	}
	dmg := int(float64(z.damage) * z.def.Special.Multiplier)
	return Attack{Name: z.def.Special.Name, Damage: target.TakeDamage(dmg)}
}

// OnDeath runs the variant's death effect against the target, if any.
func (z *Zombie) OnDeath(target Target) Attack {
	if z.def.DeathEffect == nil || z.def.DeathEffect.Damage <= 0 {
		return Attack{}
	}
	return Attack{Name: z.def.DeathEffect.Name, Damage: target.TakeDamage(z.def.DeathEffect.Damage)}
}

// TakeDamage reduces health and returns actual damage taken.
// Crossing the enrage threshold permanently multiplies attack power once.
func (z *Zombie) TakeDamage(amount int) int {
	if amount <= 0 || !z.IsAlive() {
		return 0
	}
	actual := amount
	if actual > z.health {
		actual = z.health
	}
	z.health -= actual
	if !z.enraged && z.def.EnrageMultiplier > 1 && z.IsEnraged() {
		z.damage = int(float64(z.damage) * z.def.EnrageMultiplier)
		z.enraged = true
	}
	return actual
}

// TakeAreaDamage scales area damage by the variant's factor before applying it.
func (z *Zombie) TakeAreaDamage(amount int) int {
	factor := z.def.AreaDamageFactor
	if factor <= 0 {
		factor = 1
	}
	return z.TakeDamage(int(float64(amount) * factor))
}

// EndTurn ticks every move cooldown.
func (z *Zombie) EndTurn() {
	for i := range z.cooldowns {
		if z.cooldowns[i] > 0 {
			z.cooldowns[i]--
		}
	}
}

// Ensure Zombie implements Enemy
var _ Enemy = (*Zombie)(nil)
