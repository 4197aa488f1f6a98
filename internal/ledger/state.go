package ledger

import (
	"errors"
	"fmt"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// ErrInvalidState is returned when a persisted state cannot be restored.
var ErrInvalidState = errors.New("invalid ledger state")

// State is the persisted form of a Ledger. Derived stats are not stored.
type State struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Health           int            `yaml:"health"`
	Hunger           int            `yaml:"hunger"`
	MaxHunger        int            `yaml:"max_hunger"`
	Infection        int            `yaml:"infection"`
	Level            int            `yaml:"level"`
	Experience       int            `yaml:"experience"`
	ExperienceToNext int            `yaml:"experience_to_next"`
	SkillPoints      int            `yaml:"skill_points"`
	BaseDamage       int            `yaml:"base_damage"`
	BaseMaxHealth    int            `yaml:"base_max_health"`
	Capacity         int            `yaml:"capacity"`
	Weapon           Weapon         `yaml:"weapon"`
	Inventory        []Stack        `yaml:"inventory"`
	Skills           map[string]int `yaml:"skills"`
}

// State captures the ledger for persistence.
func (l *Ledger) State() State {
	return State{
		ID:               l.id,
		Name:             l.name,
		Health:           l.health,
		Hunger:           l.hunger,
		MaxHunger:        l.maxHunger,
		Infection:        l.infection,
		Level:            l.level,
		Experience:       l.experience,
		ExperienceToNext: l.xpToNext,
		SkillPoints:      l.skillPoints,
		BaseDamage:       l.baseDamage,
		BaseMaxHealth:    l.baseMaxHealth,
		Capacity:         l.inv.Capacity(),
		Weapon:           l.weapon,
		Inventory:        l.inv.Stacks(),
		Skills:           l.skills.Levels(),
	}
}

// FromState rebuilds a ledger. Nothing is returned unless every field checks out.
func FromState(st State, items *gamedata.ItemRegistry, skills []gamedata.SkillDef) (*Ledger, error) {
	switch {
	case st.Level < 1:
		return nil, fmt.Errorf("%w: level %d", ErrInvalidState, st.Level)
	case st.ExperienceToNext <= 0 || st.Experience < 0 || st.Experience >= st.ExperienceToNext:
		return nil, fmt.Errorf("%w: experience %d/%d", ErrInvalidState, st.Experience, st.ExperienceToNext)
	case st.MaxHunger <= 0 || st.BaseMaxHealth <= 0 || st.Capacity <= 0:
		return nil, fmt.Errorf("%w: non-positive maximum", ErrInvalidState)
	case st.SkillPoints < 0:
		return nil, fmt.Errorf("%w: skill points %d", ErrInvalidState, st.SkillPoints)
	}

	inv := NewInventory(st.Capacity)
	for _, s := range st.Inventory {
		def := items.GetByID(s.ItemID)
		if def == nil {
			return nil, fmt.Errorf("%w: %w %s", ErrInvalidState, ErrUnknownItem, s.ItemID)
		}
		if !inv.AddPotent(def, s.Quantity, s.Potency) {
			return nil, fmt.Errorf("%w: inventory exceeds capacity at %s", ErrInvalidState, s.ItemID)
		}
	}

	tree := NewSkillTree(skills)
	if err := tree.restore(st.Skills); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	weapon := st.Weapon
	if weapon.ID != "" {
		def := items.GetByID(weapon.ID)
		if def == nil || def.Category != gamedata.CategoryWeapon {
			return nil, fmt.Errorf("%w: weapon %q", ErrInvalidState, weapon.ID)
		}
		weapon = Weapon{ID: def.ID, Name: def.Name, Boost: def.DamageBoost}
	} else {
		weapon = Weapon{Name: fistsName, Boost: fistsPenalty}
	}

	l := &Ledger{
		id:            st.ID,
		name:          st.Name,
		hunger:        st.Hunger,
		maxHunger:     st.MaxHunger,
		infection:     clamp(st.Infection, 0, MaxInfection),
		level:         st.Level,
		experience:    st.Experience,
		xpToNext:      st.ExperienceToNext,
		skillPoints:   st.SkillPoints,
		baseDamage:    st.BaseDamage,
		baseMaxHealth: st.BaseMaxHealth,
		weapon:        weapon,
		inv:           inv,
		skills:        tree,
		items:         items,
	}
	// Derive max health first so the stored health is not rescaled.
	l.ApplySkillBonuses()
	l.health = clamp(st.Health, 0, l.maxHealth)
	l.hunger = clamp(st.Hunger, 0, l.maxHunger)
	if l.health == 0 {
		return nil, fmt.Errorf("%w: saved survivor is dead", ErrInvalidState)
	}
	return l, nil
}
