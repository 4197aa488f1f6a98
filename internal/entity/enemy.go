// Package entity provides the hostile infected the survivor fights.
package entity

import "github.com/gdamore/tcell/v2"

// Target is anything an enemy can hurt.
type Target interface {
	TakeDamage(amount int) int // Returns actual damage taken
}

// Attack is one resolved enemy attack.
type Attack struct {
	Name   string
	Damage int
}

// Enemy is the capability contract every infected variant satisfies.
// Combat only talks to enemies through this interface.
type Enemy interface {
	// Identity
	ID() string
	Name() string
	Variant() string
	Color() tcell.Color

	// Stats
	Health() int
	MaxHealth() int
	IsAlive() bool
	Speed() int
	AttackPower() int
	Accuracy() float64
	StatusEffectOnHit() string
	IsEnraged() bool

	// Offense
	ChooseAttack() Attack
	HasSpecialAbility() bool
	SpecialAbilityChance() int
	SpecialAbility(target Target) Attack
	OnDeath(target Target) Attack

	// Mutations
	TakeDamage(amount int) int     // Returns actual damage taken
	TakeAreaDamage(amount int) int // Explosions and the like; some variants shrug part of it off
	EndTurn()                      // Ticks move cooldowns
}
