package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/samdwyer/deadzone/internal/command"
	"github.com/samdwyer/deadzone/internal/save"
)

func (s *Session) statusLines() []string {
	p := s.survivor
	cur := s.explorer.Current()
	w := p.Weapon()

	lines := []string{
		fmt.Sprintf("%s, level %d. HP %d/%d, hunger %d/%d, infection %d%%.",
			p.Name(), p.Level(), p.Health(), p.MaxHealth(), p.Hunger(), p.MaxHunger(), p.Infection()),
		fmt.Sprintf("XP %d/%d, %d skill points. Wielding %s, damage %d.",
			p.Experience(), p.ExperienceToNext(), p.SkillPoints(), w.Name, p.Damage()),
		fmt.Sprintf("%s (chapter %d), %d%% explored, %d encounters left.",
			cur.Location.Name, cur.Location.Chapter.Number, cur.Progress(), cur.Quota),
		fmt.Sprintf("Clues %d/%d. Moves %d.", s.journal.Count(), s.journal.Total(), s.explorer.TotalMoves()),
	}
	if p.Feverish() {
		lines = append(lines, "You are running a fever.")
	}
	if cur.BossPending() {
		lines = append(lines, fmt.Sprintf("%s still waits here.", cur.Location.Boss.Name))
	}
	return lines
}

func (s *Session) inventoryLines() []string {
	inv := s.survivor.Inventory()
	lines := []string{fmt.Sprintf("Carrying %d/%d:", inv.Used(), inv.Capacity())}
	stacks := inv.Stacks()
	if len(stacks) == 0 {
		return append(lines, "  nothing")
	}
	weapon := s.survivor.Weapon().ID
	for i, st := range stacks {
		line := fmt.Sprintf("  %d. %s x%d (%s, %d space)", i+1, st.Name, st.Quantity, strings.ToLower(string(st.Category)), st.Space())
		if st.Potency > 1 {
			line += fmt.Sprintf(" potency %.2f", st.Potency)
		}
		if st.ItemID == weapon {
			line += " [wielded]"
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Session) clueLines() []string {
	j := s.journal
	lines := []string{fmt.Sprintf("Journal: %d/%d clues (%.0f%%).", j.Count(), j.Total(), j.Completion())}
	for _, c := range j.Entries() {
		lines = append(lines, fmt.Sprintf("  #%d %s: %s", c.ID, c.Name, c.Content))
	}
	if j.Complete() {
		lines = append(lines, "You know the whole truth now.")
	}
	return lines
}

func (s *Session) skillLines() []string {
	lines := []string{fmt.Sprintf("Skill points: %d.", s.survivor.SkillPoints())}
	tree := s.survivor.Skills()
	for _, n := range tree.Nodes() {
		top := n.Def.MaxLevel
		if top <= 0 {
			top = 3
		}
		line := fmt.Sprintf("  %-10s %-22s %d/%d  cost %d  %s", n.Def.Branch, n.Def.Name, n.Level, top, n.Def.Cost, n.Def.Description)
		if n.Def.Parent != "" && tree.Level(n.Def.Parent) == 0 {
			line += " (locked)"
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Session) locationLines() []string {
	loc := s.explorer.Current().Location
	lines := []string{fmt.Sprintf("You arrive at %s.", loc.Name)}
	if loc.Description != "" {
		lines = append(lines, loc.Description)
	}
	if loc.Atmosphere != "" {
		lines = append(lines, loc.Atmosphere)
	}
	if loc.Hazard.Active() {
		lines = append(lines, fmt.Sprintf("Hazard: %s.", loc.Hazard))
	}
	return lines
}

func (s *Session) saveLines(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []string{"No saves yet."}, nil
	}
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, fmt.Sprintf("Save slots (%d-%d):", save.FirstSlot, save.MaxSlots))
	for _, sum := range list {
		lines = append(lines, fmt.Sprintf("  %d. %s, level %d, %s, %s",
			sum.Slot, sum.Name, sum.Level, sum.Location, sum.SavedAt.Format("2006-01-02 15:04")))
	}
	return lines, nil
}

func helpLines(m command.Mode) []string {
	defs := command.Defs(m)
	lines := make([]string, 0, len(defs))
	for _, d := range defs {
		line := fmt.Sprintf("  %-26s %s", d.Usage, d.Summary)
		if len(d.Aliases) > 0 {
			line += " (" + strings.Join(d.Aliases, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
