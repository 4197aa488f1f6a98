// Package explore runs the exploration state machine: moving through the
// current location, rolling for loot, clues, fights and hazards, and
// travelling between locations.
package explore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/combat"
	"github.com/samdwyer/deadzone/internal/director"
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/telemetry"
	"github.com/samdwyer/deadzone/internal/world"
)

// Exploration errors.
var (
	ErrNotReadyToTravel = errors.New("location not explored yet")
	ErrNotConnected     = errors.New("location not connected")
	ErrNoSuchLoot       = errors.New("no such loot here")
	ErrSurvivorDown     = errors.New("survivor is down")
)

// Balance constants.
const (
	HungerPerMove   = 2
	StarvingHunger  = 10
	baseLootBand    = 45
	maxLootBand     = 70
	clueBandEnd     = 80
	combatBandEnd   = 95
	BonusLootHeal   = 20
	hazardFallback  = 5
	harshHazard     = 5 // hazard damage above this doubles the waves per fight
	supplyDropHeal  = 50
	medicalHeal     = 20
	safeZoneHeal    = 30
	traderFood      = 25
	campFood        = 20
	campHeal        = 10
	hordeWaves      = 2
	patrolBaseCount = 2
)

// Outcome classifies what a move turned up.
type Outcome int

const (
	OutcomeQuiet Outcome = iota
	OutcomeEvent
	OutcomeLoot
	OutcomeClue
	OutcomeCombat
	OutcomeHazard
	OutcomeBoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuiet:
		return "quiet"
	case OutcomeEvent:
		return "event"
	case OutcomeLoot:
		return "loot"
	case OutcomeClue:
		return "clue"
	case OutcomeCombat:
		return "combat"
	case OutcomeHazard:
		return "hazard"
	case OutcomeBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Encounter asks the caller to run a fight.
type Encounter struct {
	Options combat.Options
	Quota   bool // one of the location's scripted encounters
}

// Step is the result of one move.
type Step struct {
	Direction   Direction
	Roll        int // -1 when an event replaced the roll
	Outcome     Outcome
	Event       director.Event
	Messages    []string
	Offers      []LootEntry
	Clue        *gamedata.ClueDef
	Encounter   *Encounter
	BecameReady bool
}

func (s *Step) say(format string, args ...any) {
	s.Messages = append(s.Messages, fmt.Sprintf(format, args...))
}

// Deps are the collaborators an explorer works with.
type Deps struct {
	Atlas    *world.Atlas
	Items    *gamedata.ItemRegistry
	Survivor *ledger.Ledger
	Director *director.Director
	Journal  *Journal
	Rand     *rand.Rand
}

// Explorer owns the current location and the global acquisition records.
type Explorer struct {
	Deps
	log *logrus.Entry

	current        *LocationState
	totalMoves     int
	pickedUp       mapset.Set[string]
	visited        mapset.Set[string]
	bossesDefeated mapset.Set[string]
}

// New creates an explorer standing at the given location.
func New(deps Deps, start string) (*Explorer, error) {
	e := &Explorer{
		Deps:           deps,
		log:            newLog(),
		pickedUp:       mapset.New[string](),
		visited:        mapset.New[string](),
		bossesDefeated: mapset.New[string](),
	}
	loc, err := deps.Atlas.Get(start)
	if err != nil {
		return nil, err
	}
	if err := e.Enter(loc); err != nil {
		return nil, err
	}
	return e, nil
}

func newLog() *logrus.Entry { return logger.For("explore") }

// Current returns the current location state.
func (e *Explorer) Current() *LocationState { return e.current }

// TotalMoves returns the moves made this session.
func (e *Explorer) TotalMoves() int { return e.totalMoves }

// Visited returns true if the location has been entered before.
func (e *Explorer) Visited(id string) bool { return e.visited.Has(id) }

// BossDefeated returns true if the boss of a location has fallen.
func (e *Explorer) BossDefeated(id string) bool { return e.bossesDefeated.Has(id) }

// Enter makes loc current. Flags are restored from the acquisition records.
func (e *Explorer) Enter(loc *world.Location) error {
	st := &LocationState{
		Location:     loc,
		Quota:        loc.Encounters,
		MaxWaves:     1,
		BossDefeated: e.bossesDefeated.Has(loc.ID),
	}
	if loc.Hazard.Damage > harshHazard {
		st.MaxWaves = 2
	}

	for _, spot := range loc.Loot {
		dir, err := ParseDirection(spot.Direction)
		if err != nil {
			return fmt.Errorf("%s loot %s: %w", loc.ID, spot.ID, err)
		}
		def := e.Items.GetByID(spot.ItemID)
		if def == nil {
			return fmt.Errorf("%s loot %s: %w: %s", loc.ID, spot.ID, ledger.ErrUnknownItem, spot.ItemID)
		}
		st.Loot = append(st.Loot, LootEntry{
			ID:        spot.ID,
			Item:      def,
			Quantity:  max(1, spot.Quantity),
			Direction: dir,
			PickedUp:  e.pickedUp.Has(spot.ID),
		})
	}
	for _, spot := range loc.Clues {
		dir, err := ParseDirection(spot.Direction)
		if err != nil {
			return fmt.Errorf("%s clue %d: %w", loc.ID, spot.ClueID, err)
		}
		entry := ClueEntry{ClueID: spot.ClueID, Direction: dir, Collected: e.Journal.Has(spot.ClueID)}
		if def, ok := e.Journal.clues[spot.ClueID]; ok {
			entry.Name = def.Name
		}
		st.Clues = append(st.Clues, entry)
	}

	e.current = st
	e.visited.Put(loc.ID)
	return nil
}

// Travel moves to a connected location once the current one is explored.
func (e *Explorer) Travel(ctx context.Context, id string) error {
	tracer := telemetry.Tracer("explore")
	_, span := tracer.Start(ctx, "explore.travel")
	defer span.End()

	from := e.current.Location
	span.SetAttributes(
		attribute.String("explore.from", from.ID),
		attribute.String("explore.to", id),
	)
	if !e.current.ReadyToTravel {
		return fmt.Errorf("%w: %s is %d%% explored", ErrNotReadyToTravel, from.Name, e.current.Progress())
	}
	if !from.ConnectedTo(id) {
		return fmt.Errorf("%w: %s to %s", ErrNotConnected, from.ID, id)
	}
	loc, err := e.Atlas.Get(id)
	if err != nil {
		return err
	}
	if err := e.Enter(loc); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{"from": from.ID, "to": id, "moves": e.totalMoves}).Info("travelled")
	return nil
}

// Destinations returns the locations reachable from here.
func (e *Explorer) Destinations() []*world.Location {
	return e.Atlas.Neighbors(e.current.Location.ID)
}

// MoveInDirection searches one direction of the current location.
func (e *Explorer) MoveInDirection(ctx context.Context, dir Direction) (Step, error) {
	s := e.Survivor
	if !s.IsAlive() {
		return Step{}, ErrSurvivorDown
	}

	tracer := telemetry.Tracer("explore")
	ctx, span := tracer.Start(ctx, "explore.move")
	defer span.End()

	step := Step{Direction: dir, Roll: -1}
	step.say("You search %s.", dir)

	hungerBefore := s.Hunger()
	s.SetHunger(hungerBefore - HungerPerMove)
	if hungerBefore <= StarvingHunger {
		s.TakeDamage(1)
		step.say("You are starving (-1 HP).")
	}
	if s.Feverish() {
		s.TakeDamage(1)
		step.say("Fever burns through you (-1 HP).")
	}

	e.totalMoves++
	e.current.Steps++
	e.Director.Update(ctx, s, e.totalMoves)

	if s.IsAlive() {
		if e.Director.ShouldTriggerEvent() {
			step.Outcome = OutcomeEvent
			step.Event = e.Director.GenerateRandomEvent()
			e.resolveEvent(&step)
		} else {
			step.Roll = e.Rand.Intn(100)
			e.resolveRoll(&step)
		}
	}

	if s.IsAlive() && e.current.Steps >= ExploredSteps && !e.current.ReadyToTravel {
		switch {
		case e.current.BossPending() && step.Encounter == nil:
			boss := e.current.Location.Boss
			step.Outcome = OutcomeBoss
			step.Encounter = &Encounter{Options: combat.Options{
				MaxWaves: 1,
				Boss:     &combat.Boss{Variant: boss.Variant, Name: boss.Name, Final: boss.Final},
			}}
			step.say("%s blocks the way out!", boss.Name)
		case !e.current.BossPending():
			e.current.ReadyToTravel = true
			step.BecameReady = true
			step.say("The area is fully explored. You can travel on.")
		}
	}

	span.SetAttributes(
		attribute.String("explore.location", e.current.Location.ID),
		attribute.String("explore.direction", dir.String()),
		attribute.Int("explore.roll", step.Roll),
		attribute.String("explore.outcome", step.Outcome.String()),
		attribute.Int("explore.steps", e.current.Steps),
	)
	e.log.WithFields(logrus.Fields{
		"location": e.current.Location.ID,
		"roll":     step.Roll,
		"outcome":  step.Outcome.String(),
		"event":    step.Event.String(),
	}).Debug("moved")

	return step, nil
}

func (e *Explorer) resolveEvent(step *Step) {
	s := e.Survivor
	ev := step.Event
	step.say("Event: %s.", ev)

	switch ev {
	case director.EventSupplyDrop:
		step.say("A supply drop restores %d HP.", s.Heal(supplyDropHeal))
	case director.EventMedicalCache:
		step.say("A medical cache restores %d HP.", s.Heal(medicalHeal))
	case director.EventSafeZone:
		step.say("You rest in a safe zone and recover %d HP.", s.Heal(safeZoneHeal))
	case director.EventWanderingTrader:
		step.say("A trader shares food (+%d hunger).", s.Eat(traderFood))
	case director.EventAbandonedCamp:
		fed := s.Eat(campFood)
		step.say("An abandoned camp yields food (+%d hunger) and rest (+%d HP).", fed, s.Heal(campHeal))
	case director.EventEnvironmentalHazard:
		dmg := e.current.Location.Hazard.Damage
		if dmg <= 0 {
			dmg = hazardFallback
		}
		step.say("The environment turns on you (-%d HP).", s.TakeDamage(dmg))
	case director.EventHordeIncoming:
		step.Encounter = &Encounter{Options: combat.Options{MaxWaves: hordeWaves}}
		step.say("A horde is coming!")
	case director.EventZombiePatrol:
		step.Encounter = &Encounter{Options: combat.Options{MaxWaves: 1, BaseCount: patrolBaseCount}}
		step.say("A patrol spots you.")
	case director.EventEliteZombie:
		step.Encounter = &Encounter{Options: combat.Options{MaxWaves: 1, Elite: true}}
		step.say("Something big is hunting you.")
	case director.EventMysteriousSound:
		step.say("A sound echoes in the distance. Nothing follows.")
	}
}

// LootBand returns the width of the loot band of the roll.
func (e *Explorer) LootBand() int {
	scav := e.Survivor.Bonus(gamedata.BonusScavenge)
	if scav <= 0 {
		return baseLootBand
	}
	return min(maxLootBand, int(baseLootBand*(1+scav)))
}

func (e *Explorer) resolveRoll(step *Step) {
	roll := step.Roll
	switch {
	case roll < e.LootBand():
		step.Outcome = OutcomeLoot
		e.rollLoot(step)
	case roll < clueBandEnd:
		step.Outcome = OutcomeClue
		e.rollClue(step)
	case roll < combatBandEnd && e.current.Quota > 0:
		if !e.Director.ShouldSpawnZombie() {
			step.Outcome = OutcomeQuiet
			step.say("Shapes shuffle past in the distance.")
			return
		}
		step.Outcome = OutcomeCombat
		step.Encounter = &Encounter{Options: combat.Options{MaxWaves: e.current.MaxWaves}, Quota: true}
		step.say("Zombies!")
	default:
		step.Outcome = OutcomeHazard
		hz := e.current.Location.Hazard
		if !hz.Active() {
			step.Outcome = OutcomeQuiet
			step.say("The area is quiet.")
			return
		}
		step.say("%s! You take %d damage.", hz, e.Survivor.TakeDamage(hz.Damage))
	}
}

func (e *Explorer) rollLoot(step *Step) {
	entry := e.current.lootAt(step.Direction)
	if entry == nil || !e.Director.ShouldSpawnLoot() {
		step.say("Nothing useful this way.")
		return
	}
	step.Offers = append(step.Offers, *entry)
	step.say("You find %s.", entry.Item.Name)

	if e.Director.ShouldGrantBonusLoot() {
		step.say("Emergency supplies restore %d HP.", e.Survivor.Heal(BonusLootHeal))
	}

	scav := e.Survivor.Bonus(gamedata.BonusScavenge)
	if scav <= 0 || e.Rand.Intn(100) >= int(scav*100)+e.Director.BonusLootChance() {
		return
	}
	if extra := e.current.lootAt(step.Direction.Next()); extra != nil && extra.ID != entry.ID {
		step.Offers = append(step.Offers, *extra)
		step.say("Your eye catches %s nearby.", extra.Item.Name)
	}
}

func (e *Explorer) rollClue(step *Step) {
	if !e.Director.ShouldSpawnClue() {
		step.say("You find nothing of note.")
		return
	}
	entry := e.current.clueAt(step.Direction, e.Director.ClueGuaranteed())
	if entry == nil {
		step.say("You find nothing of note.")
		return
	}
	def, ok := e.Journal.Collect(entry.ClueID)
	entry.Collected = true
	if !ok {
		return
	}
	e.Director.MarkClueSpawned(entry.ClueID)
	step.Clue = &def
	step.say("Clue found: %s.", def.Name)
	e.log.WithFields(logrus.Fields{"clue": def.ID, "collected": e.Journal.Count()}).Info("clue collected")
}

// TakeLoot picks up an offered loot entry. Healing items are scaled by the
// director's loot quality at the moment of pickup.
func (e *Explorer) TakeLoot(id string) (LootEntry, error) {
	entry := e.current.loot(id)
	if entry == nil || entry.PickedUp {
		return LootEntry{}, fmt.Errorf("%w: %s", ErrNoSuchLoot, id)
	}

	potency := 1.0
	if entry.Item.HealthRestore > 0 {
		potency = e.Director.LootQualityModifier()
	}
	if err := e.Survivor.AddPotentItem(entry.Item.ID, entry.Quantity, potency); err != nil {
		return LootEntry{}, err
	}
	entry.PickedUp = true
	e.pickedUp.Put(entry.ID)
	return *entry, nil
}

// ResolveEncounter books the outcome of a fight the explorer asked for.
func (e *Explorer) ResolveEncounter(enc Encounter, won bool) {
	if !won {
		return
	}
	switch {
	case enc.Options.Boss != nil:
		e.current.BossDefeated = true
		e.bossesDefeated.Put(e.current.Location.ID)
		if e.current.Steps >= ExploredSteps {
			e.current.ReadyToTravel = true
		}
	case enc.Quota && e.current.Quota > 0:
		e.current.Quota--
	}
}
