package ledger

import (
	"errors"
	"fmt"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

const defaultSkillMaxLevel = 3

// Skill tree errors.
var (
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrSkillLocked        = errors.New("skill requires its parent first")
	ErrInsufficientPoints = errors.New("not enough skill points")
	ErrSkillMaxed         = errors.New("skill already at max level")
)

// SkillNode is a skill definition together with its current level.
type SkillNode struct {
	Def   gamedata.SkillDef
	Level int
}

// Unlocked returns true once the skill has at least one level.
func (n SkillNode) Unlocked() bool { return n.Level > 0 }

// SkillTree holds skill definitions and learned levels.
type SkillTree struct {
	defs   []gamedata.SkillDef
	index  map[string]int
	levels map[string]int
}

// NewSkillTree creates a tree with every skill at level 0.
func NewSkillTree(defs []gamedata.SkillDef) *SkillTree {
	t := &SkillTree{
		defs:   defs,
		index:  make(map[string]int, len(defs)),
		levels: make(map[string]int),
	}
	for i, d := range defs {
		t.index[d.ID] = i
	}
	return t
}

func maxLevel(d gamedata.SkillDef) int {
	if d.MaxLevel <= 0 {
		return defaultSkillMaxLevel
	}
	return d.MaxLevel
}

// Learn validates unlocking or upgrading a skill with the available points
// and applies it. Returns the points spent.
func (t *SkillTree) Learn(id string, available int) (int, error) {
	i, ok := t.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSkill, id)
	}
	def := t.defs[i]
	if def.Parent != "" && t.levels[def.Parent] == 0 {
		return 0, fmt.Errorf("%w: %s needs %s", ErrSkillLocked, id, def.Parent)
	}
	if t.levels[id] >= maxLevel(def) {
		return 0, fmt.Errorf("%w: %s", ErrSkillMaxed, id)
	}
	if available < def.Cost {
		return 0, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientPoints, id, def.Cost, available)
	}
	t.levels[id]++
	return def.Cost, nil
}

// Level returns the learned level of a skill.
func (t *SkillTree) Level(id string) int {
	return t.levels[id]
}

// Total sums value x level over unlocked skills of the given bonus type.
func (t *SkillTree) Total(bonus gamedata.BonusType) float64 {
	total := 0.0
	for _, d := range t.defs {
		if lvl := t.levels[d.ID]; lvl > 0 && d.Bonus.Type == bonus {
			total += d.Bonus.Value * float64(lvl)
		}
	}
	return total
}

// Nodes returns every skill with its level, in content order.
func (t *SkillTree) Nodes() []SkillNode {
	out := make([]SkillNode, len(t.defs))
	for i, d := range t.defs {
		out[i] = SkillNode{Def: d, Level: t.levels[d.ID]}
	}
	return out
}

// Levels returns a copy of learned levels keyed by skill id.
func (t *SkillTree) Levels() map[string]int {
	out := make(map[string]int, len(t.levels))
	for k, v := range t.levels {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// restore replaces learned levels after checking them against the definitions.
func (t *SkillTree) restore(levels map[string]int) error {
	next := make(map[string]int, len(levels))
	for id, lvl := range levels {
		i, ok := t.index[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSkill, id)
		}
		if lvl < 0 || lvl > maxLevel(t.defs[i]) {
			return fmt.Errorf("skill %s: level %d out of range", id, lvl)
		}
		next[id] = lvl
	}
	t.levels = next
	return nil
}
