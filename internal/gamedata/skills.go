package gamedata

// BonusType is the stat a skill improves.
type BonusType string

const (
	BonusDamage              BonusType = "damage"
	BonusMaxHealth           BonusType = "max_health"
	BonusHealing             BonusType = "healing"              // Fractional, e.g. 0.25
	BonusScavenge            BonusType = "scavenge"             // Fractional, e.g. 0.25
	BonusCrafting            BonusType = "crafting"             // Fractional, e.g. 0.25
	BonusInfectionResistance BonusType = "infection_resistance" // Percent
)

// SkillBonus is the per-level improvement a skill grants.
type SkillBonus struct {
	Type  BonusType `json:"type"`
	Value float64   `json:"value"`
}

// SkillDef defines a node of the skill tree.
type SkillDef struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Branch      string     `json:"branch"`
	Parent      string     `json:"parent"` // Empty for roots
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	MaxLevel    int        `json:"maxLevel"`
	Bonus       SkillBonus `json:"bonus"`
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads skill definitions from the embedded skills.json file.
func LoadSkills() ([]SkillDef, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	return file.Skills, nil
}
