package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deadzone/internal/explore"
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/save"
)

// Capture records the session for persistence. The director is left out;
// it is rebuilt fresh on restore.
func (s *Session) Capture() save.Snapshot {
	led := s.survivor.State()
	exp := s.explorer.State()
	loc := s.explorer.Current().Location

	items := make([]save.Item, 0, len(led.Inventory))
	for _, st := range led.Inventory {
		it := save.Item{
			ID:       st.ItemID,
			Name:     st.Name,
			Category: string(st.Category),
			Quantity: st.Quantity,
			Space:    st.UnitSpace,
			Potency:  st.Potency,
		}
		if def := s.catalog.Items.GetByID(st.ItemID); def != nil {
			it.Description = def.Description
			it.Consumable = def.Consumable
			it.Usable = def.Usable
			it.HealthRestore = def.HealthRestore
			it.HungerRestore = def.HungerRestore
			it.InfectionCure = def.InfectionCure
			it.DamageBoost = def.DamageBoost
		}
		items = append(items, it)
	}

	return save.Snapshot{
		Version: save.SnapshotVersion,
		SavedAt: s.now().UTC(),
		Player: save.Player{
			ID:               led.ID,
			Name:             led.Name,
			Level:            led.Level,
			Damage:           s.survivor.Damage(),
			Health:           led.Health,
			MaxHealth:        s.survivor.MaxHealth(),
			Hunger:           led.Hunger,
			MaxHunger:        led.MaxHunger,
			Infection:        led.Infection,
			Experience:       led.Experience,
			ExperienceToNext: led.ExperienceToNext,
			SkillPoints:      led.SkillPoints,
			BaseDamage:       led.BaseDamage,
			BaseMaxHealth:    led.BaseMaxHealth,
			Capacity:         led.Capacity,
			Weapon:           save.Weapon{ID: led.Weapon.ID, Name: led.Weapon.Name, Boost: led.Weapon.Boost},
			Inventory:        items,
			Skills:           led.Skills,
		},
		World: save.World{
			Location:       exp.Location,
			Chapter:        loc.Chapter.Number,
			Visited:        s.explorer.Visited(loc.ID),
			Steps:          exp.Steps,
			Quota:          exp.Quota,
			ReadyToTravel:  exp.ReadyToTravel,
			TotalMoves:     exp.TotalMoves,
			Locations:      exp.Visited,
			PickedUpLoot:   exp.PickedUp,
			CollectedClues: exp.Clues,
			BossesDefeated: exp.BossesDefeated,
		},
	}
}

// Restore replaces the session state with a snapshot. The new state is
// built completely before anything is swapped in; on error the session is
// untouched.
func (s *Session) Restore(snap save.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	p := snap.Player
	stacks := make([]ledger.Stack, len(p.Inventory))
	for i, it := range p.Inventory {
		stacks[i] = ledger.Stack{
			ItemID:    it.ID,
			Name:      it.Name,
			Category:  gamedata.Category(it.Category),
			Quantity:  it.Quantity,
			UnitSpace: it.Space,
			Potency:   it.Potency,
		}
	}
	survivor, err := ledger.FromState(ledger.State{
		ID:               p.ID,
		Name:             p.Name,
		Health:           p.Health,
		Hunger:           p.Hunger,
		MaxHunger:        p.MaxHunger,
		Infection:        p.Infection,
		Level:            p.Level,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
		SkillPoints:      p.SkillPoints,
		BaseDamage:       p.BaseDamage,
		BaseMaxHealth:    p.BaseMaxHealth,
		Capacity:         p.Capacity,
		Weapon:           ledger.Weapon{ID: p.Weapon.ID, Name: p.Weapon.Name, Boost: p.Weapon.Boost},
		Inventory:        stacks,
		Skills:           p.Skills,
	}, s.catalog.Items, s.catalog.Skills)
	if err != nil {
		return fmt.Errorf("%w: %w", save.ErrCorruptSave, err)
	}

	w := snap.World
	c, err := s.assemble(survivor, w.CollectedClues, func(deps explore.Deps) (*explore.Explorer, error) {
		return explore.Resume(deps, explore.State{
			Location:       w.Location,
			Steps:          w.Steps,
			Quota:          w.Quota,
			ReadyToTravel:  w.ReadyToTravel,
			TotalMoves:     w.TotalMoves,
			PickedUp:       w.PickedUpLoot,
			Visited:        w.Locations,
			BossesDefeated: w.BossesDefeated,
			Clues:          w.CollectedClues,
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %w", save.ErrCorruptSave, err)
	}

	s.core = c
	s.offers = nil
	s.queued = nil
	s.fight = nil
	s.ending = EndingNone
	s.pending = s.commandDecision()
	return nil
}

// Save writes the session to a slot.
func (s *Session) Save(ctx context.Context, slot int) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.Save(ctx, slot, s.Capture()); err != nil {
		s.log.WithError(err).WithField("slot", slot).Warn("save failed")
		return err
	}
	s.log.WithFields(logrus.Fields{"slot": slot, "location": s.explorer.Current().Location.ID}).Info("game saved")
	return nil
}

// Load replaces the session with a saved slot, all or nothing.
func (s *Session) Load(ctx context.Context, slot int) error {
	if s.store == nil {
		return ErrNoStore
	}
	snap, err := s.store.Load(ctx, slot)
	if err != nil {
		return err
	}
	if err := s.Restore(snap); err != nil {
		s.log.WithError(err).WithField("slot", slot).Warn("load failed")
		return err
	}
	s.log.WithFields(logrus.Fields{"slot": slot, "location": snap.World.Location}).Info("game loaded")
	return nil
}
