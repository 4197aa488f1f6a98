package gamedata

import "github.com/gdamore/tcell/v2"

// MoveDef is a signature attack an enemy can pick instead of its basic attack.
type MoveDef struct {
	Name     string `json:"name"`
	Damage   int    `json:"damage"`
	Cooldown int    `json:"cooldown"` // Turns before the move is ready again
	MaxUses  int    `json:"maxUses"`  // 0 means unlimited
}

// SpecialDef is an ability rolled for during a counter-attack.
type SpecialDef struct {
	Name       string  `json:"name"`
	Chance     int     `json:"chance"`     // Percent per counter-attack
	Multiplier float64 `json:"multiplier"` // Applied to attack power
}

// DeathEffectDef is damage dealt to the player when the enemy dies.
type DeathEffectDef struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
}

// EnemyDef defines an enemy variant loaded from JSON.
type EnemyDef struct {
	ID               string          `json:"id"`    // Variant identifier (e.g., "boomer")
	Name             string          `json:"name"`  // Display name (e.g., "Boomer")
	Color            string          `json:"color"` // Hex color code (e.g., "#9ACD32")
	HP               int             `json:"hp"`
	Damage           int             `json:"damage"`
	Speed            int             `json:"speed"`
	AccuracyBase     float64         `json:"accuracyBase"`
	AccuracyPerSpeed float64         `json:"accuracyPerSpeed"`
	StatusEffect     string          `json:"statusEffect"`     // Tag applied on hit
	EnrageDivisor    int             `json:"enrageDivisor"`    // Enraged at hp <= maxHP / divisor
	EnrageMultiplier float64         `json:"enrageMultiplier"` // Permanent damage multiplier once enraged (0 or 1 = none)
	AreaDamageFactor float64         `json:"areaDamageFactor"` // Scale for area damage taken (0 = 1.0)
	Moves            []MoveDef       `json:"moves"`
	Special          *SpecialDef     `json:"special"`
	DeathEffect      *DeathEffectDef `json:"deathEffect"`
	Boss             bool            `json:"boss"`        // Eligible as a scripted boss
	SpawnWeight      int             `json:"spawnWeight"` // Relative frequency among special spawns (0 = never random special)
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
