// Package session owns one game: every engine, the random source and the
// save store. The shell drives it through a single pending decision at a
// time; nothing inside blocks on input.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/combat"
	"github.com/samdwyer/deadzone/internal/crafting"
	"github.com/samdwyer/deadzone/internal/director"
	"github.com/samdwyer/deadzone/internal/entity"
	"github.com/samdwyer/deadzone/internal/explore"
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/save"
	"github.com/samdwyer/deadzone/internal/telemetry"
	"github.com/samdwyer/deadzone/internal/world"
)

// Session errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrGameOver     = errors.New("game is over")
	ErrNoStore      = errors.New("saving is not available")
)

const (
	// RestHeal is the health restored by resting.
	RestHeal = 25
	// DefaultSlot is used by save and load when no slot is given.
	DefaultSlot = 1
)

// Options configures a new session.
type Options struct {
	Name  string
	Start string // Location id; empty uses the atlas start
	Seed  int64  // 0 seeds from the clock
	Store save.Store
	Now   func() time.Time
}

// core is the state a load replaces wholesale.
type core struct {
	survivor *ledger.Ledger
	director *director.Director
	journal  *explore.Journal
	explorer *explore.Explorer
	resolver *combat.Resolver
}

// fight is a running encounter and the request that started it.
type fight struct {
	enc     *combat.Encounter
	request explore.Encounter
}

// Session is one game in progress.
type Session struct {
	id      string
	seed    int64
	catalog *gamedata.Catalog
	atlas   *world.Atlas
	roster  *entity.Roster
	crafter *crafting.Crafter
	store   save.Store
	rng     *rand.Rand
	now     func() time.Time
	log     *logrus.Entry

	*core

	pending Decision
	offers  []explore.LootEntry
	queued  *explore.Encounter
	fight   *fight
	ending  Ending
}

// New starts a fresh game over the catalog.
func New(ctx context.Context, catalog *gamedata.Catalog, opts Options) (*Session, error) {
	atlas, err := world.NewAtlas(ctx, catalog.Locations)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	name := opts.Name
	if name == "" {
		name = "Survivor"
	}
	start := opts.Start
	if start == "" {
		start = atlas.Start()
	}

	s := &Session{
		id:      uuid.NewString(),
		seed:    seed,
		catalog: catalog,
		atlas:   atlas,
		roster:  entity.NewRoster(catalog.Enemies),
		crafter: crafting.New(catalog.Recipes, catalog.Items),
		store:   opts.Store,
		rng:     rand.New(rand.NewSource(seed)),
		now:     now,
	}
	s.log = logger.For("session").WithField("session", s.id)

	survivor := ledger.New(name, catalog.Items, catalog.Skills)
	c, err := s.assemble(survivor, nil, func(deps explore.Deps) (*explore.Explorer, error) {
		return explore.New(deps, start)
	})
	if err != nil {
		return nil, err
	}
	s.core = c
	s.pending = s.commandDecision()

	s.log.WithFields(logrus.Fields{"seed": seed, "start": start, "player": name}).Info("session started")
	return s, nil
}

// assemble wires a survivor to a fresh director, journal and resolver.
func (s *Session) assemble(survivor *ledger.Ledger, collected []int, build func(explore.Deps) (*explore.Explorer, error)) (*core, error) {
	journal := explore.NewJournal(s.catalog.Clues)
	dir := director.New(s.rng, s.catalog.ClueIDs())
	dir.RecordCollected(collected)

	exp, err := build(explore.Deps{
		Atlas:    s.atlas,
		Items:    s.catalog.Items,
		Survivor: survivor,
		Director: dir,
		Journal:  journal,
		Rand:     s.rng,
	})
	if err != nil {
		return nil, err
	}
	return &core{
		survivor: survivor,
		director: dir,
		journal:  journal,
		explorer: exp,
		resolver: combat.NewResolver(s.rng, dir, s.roster),
	}, nil
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Seed() int64                  { return s.seed }
func (s *Session) Pending() Decision            { return s.pending }
func (s *Session) Ending() Ending               { return s.ending }
func (s *Session) Over() bool                   { return s.pending.Kind == KindGameOver }
func (s *Session) Survivor() *ledger.Ledger     { return s.survivor }
func (s *Session) Director() *director.Director { return s.director }
func (s *Session) Journal() *explore.Journal    { return s.journal }
func (s *Session) Explorer() *explore.Explorer  { return s.explorer }

// Encounter returns the running fight, or nil while exploring.
func (s *Session) Encounter() *combat.Encounter {
	if s.fight == nil {
		return nil
	}
	return s.fight.enc
}

// Submit answers the pending decision. A rejected input returns an error
// and leaves the session exactly as it was.
func (s *Session) Submit(ctx context.Context, input string) (Report, error) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "session.submit")
	defer span.End()

	kind := s.pending.Kind
	span.SetAttributes(attribute.String("session.decision", kind.String()))

	var (
		rep Report
		err error
	)
	switch kind {
	case KindGameOver:
		err = ErrGameOver
	case KindCommand:
		rep, err = s.command(ctx, input)
	case KindLootOffer:
		rep, err = s.answerOffer(ctx, input)
	case KindCombatAction:
		rep, err = s.combatAction(ctx, input)
	case KindCombatItem:
		rep, err = s.combatItem(ctx, input)
	case KindTravelChoice:
		rep, err = s.chooseTravel(ctx, input)
	case KindCraftChoice:
		rep, err = s.chooseCraft(ctx, input)
	case KindMenu:
		rep, err = s.menu(ctx, input)
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("session.rejected", true))
		s.log.WithError(err).WithField("decision", kind.String()).Debug("input rejected")
		return Report{}, err
	}

	rep.Ending = s.ending
	span.SetAttributes(attribute.String("session.next", s.pending.Kind.String()))
	return rep, nil
}

// advance picks the next decision after an exploration step: pending loot
// offers first, then any fight the step asked for.
func (s *Session) advance(ctx context.Context, rep *Report) {
	if len(s.offers) > 0 {
		s.pending = offerDecision(s.offers[0], s.survivor.Inventory().Free())
		return
	}
	if s.queued != nil {
		req := *s.queued
		s.queued = nil
		s.startFight(ctx, req, rep)
		return
	}
	s.pending = s.commandDecision()
}

// finish ends the story.
func (s *Session) finish(e Ending, rep *Report) {
	s.ending = e
	s.offers = nil
	s.queued = nil
	s.fight = nil
	s.pending = Decision{Kind: KindGameOver, Prompt: fmt.Sprintf("The end (%s ending).", e)}
	rep.add(e.Epilogue())

	s.log.WithFields(logrus.Fields{
		"ending": e.String(),
		"moves":  s.explorer.TotalMoves(),
		"level":  s.survivor.Level(),
		"clues":  s.journal.Count(),
	}).Info("game over")
}

func (s *Session) commandDecision() Decision {
	return Decision{Kind: KindCommand, Prompt: s.explorer.Current().Location.Name + " >"}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
