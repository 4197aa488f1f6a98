package combat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/entity"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// Balance constants.
const (
	HitChance       = 80
	DodgeChance     = 60
	FleeChance      = 50
	KillExperience  = 10
	HungryThreshold = 30
	InfectionOnHit  = 5
)

var (
	// ErrCombatOver is returned when acting in a resolved encounter.
	ErrCombatOver = errors.New("combat is over")
	// ErrNotPlayerTurn is returned when no player decision is pending.
	ErrNotPlayerTurn = errors.New("not the player's turn")
	// ErrUnknownAction is returned for an action kind the resolver does not know.
	ErrUnknownAction = errors.New("unknown combat action")
)

// Player is the survivor as seen by combat.
type Player interface {
	entity.Target
	Damage() int
	Hunger() int
	IsAlive() bool
	GainExperience(amount int) int
	UseItem(key string) (ledger.UseResult, error)
	Infect(amount int) int
}

// WaveSizer is the director view combat needs to size waves.
type WaveSizer interface {
	AdjustZombieCount(base int) int
	ShouldSpawnSpecialZombie() bool
	Difficulty() float64
}

// Spawner creates enemy instances.
type Spawner interface {
	SpawnCommon(difficulty float64) entity.Enemy
	SpawnSpecial(rng *rand.Rand, difficulty float64) entity.Enemy
	SpawnBoss(variant, name string, difficulty float64) (entity.Enemy, error)
}

// ActionKind is a player combat choice.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDodge
	ActionUseItem
	ActionFlee
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionDodge:
		return "dodge"
	case ActionUseItem:
		return "use_item"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is one player decision.
type Action struct {
	Kind ActionKind
	Item string // For ActionUseItem: item id or name
}

// Turn reports what one action did.
type Turn struct {
	Messages     []string
	Phase        Phase
	LevelsGained int
}

// Resolver runs encounters.
type Resolver struct {
	rng     *rand.Rand
	sizer   WaveSizer
	spawner Spawner
	log     *logrus.Entry
}

// NewResolver creates a resolver.
func NewResolver(rng *rand.Rand, sizer WaveSizer, spawner Spawner) *Resolver {
	return &Resolver{
		rng:     rng,
		sizer:   sizer,
		spawner: spawner,
		log:     logger.For("combat"),
	}
}

// Start spawns the first wave and engages its first enemy.
func (r *Resolver) Start(ctx context.Context, opts Options) (*Encounter, error) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	defer span.End()

	enc := newEncounter(opts)
	if err := r.spawnWave(enc); err != nil {
		return nil, err
	}
	r.engageNext(enc)

	span.SetAttributes(
		attribute.Int("combat.max_waves", enc.MaxWaves()),
		attribute.Int("combat.wave_size", enc.remaining()),
		attribute.Bool("combat.elite", opts.Elite),
		attribute.Bool("combat.boss", opts.Boss != nil),
	)
	r.log.WithFields(logrus.Fields{
		"waves":   enc.MaxWaves(),
		"enemies": enc.remaining(),
		"boss":    opts.Boss != nil,
	}).Info("combat started")

	return enc, nil
}

// spawnWave fills the queue with the next wave.
func (r *Resolver) spawnWave(enc *Encounter) error {
	enc.wave++
	enc.phase = PhaseWaveStart
	difficulty := r.sizer.Difficulty()

	switch {
	case enc.opts.Boss != nil:
		boss, err := r.spawner.SpawnBoss(enc.opts.Boss.Variant, enc.opts.Boss.Name, difficulty)
		if err != nil {
			return fmt.Errorf("spawn boss: %w", err)
		}
		enc.enqueue(boss)
	case enc.opts.Elite:
		enc.enqueue(r.spawner.SpawnSpecial(r.rng, difficulty))
	default:
		base := enc.opts.BaseCount
		if base <= 0 {
			base = 3 + r.rng.Intn(4)
		}
		n := max(1, r.sizer.AdjustZombieCount(base))
		for i := 0; i < n; i++ {
			if r.sizer.ShouldSpawnSpecialZombie() {
				enc.enqueue(r.spawner.SpawnSpecial(r.rng, difficulty))
			} else {
				enc.enqueue(r.spawner.SpawnCommon(difficulty))
			}
		}
	}
	enc.result.Waves = enc.wave
	return nil
}

// engageNext pulls the next enemy off the queue into the player's turn.
func (r *Resolver) engageNext(enc *Encounter) {
	enc.current = enc.dequeue()
	enc.phase = PhaseEnemyEngaged
	enc.history.Push(fmt.Sprintf("%s engages (%d/%d HP)",
		enc.current.Name(), enc.current.Health(), enc.current.MaxHealth()))
	enc.phase = PhasePlayerTurn
}

// Act resolves one player action and everything it triggers.
func (r *Resolver) Act(ctx context.Context, enc *Encounter, p Player, action Action) (Turn, error) {
	if enc.Over() {
		return Turn{Phase: enc.phase}, ErrCombatOver
	}
	if enc.phase != PhasePlayerTurn || enc.current == nil {
		return Turn{Phase: enc.phase}, ErrNotPlayerTurn
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.turn")
	defer span.End()

	t := &turn{enc: enc, player: p}
	switch action.Kind {
	case ActionAttack:
		r.attack(t)
	case ActionDodge:
		r.dodge(t)
	case ActionUseItem:
		if err := r.useItem(t, action.Item); err != nil {
			return Turn{Phase: enc.phase}, err
		}
	case ActionFlee:
		r.flee(t)
	default:
		return Turn{Phase: enc.phase}, fmt.Errorf("%w: %d", ErrUnknownAction, action.Kind)
	}

	if !enc.Over() && enc.current != nil {
		enc.current.EndTurn()
	}

	span.SetAttributes(
		attribute.String("combat.action", action.Kind.String()),
		attribute.String("combat.phase", enc.phase.String()),
		attribute.Int("combat.wave", enc.wave),
		attribute.Int("combat.damage_dealt", enc.result.DamageDealt),
		attribute.Int("combat.damage_taken", enc.result.DamageTaken),
	)
	if enc.Over() {
		r.finish(ctx, enc)
	}

	return Turn{Messages: t.messages, Phase: enc.phase, LevelsGained: t.levels}, nil
}

// turn collects the messages of one action.
type turn struct {
	enc      *Encounter
	player   Player
	messages []string
	levels   int
}

func (t *turn) say(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.messages = append(t.messages, msg)
	t.enc.history.Push(msg)
}

// hurt applies damage to the player and resolves defeat immediately.
// Returns false once the player is dead.
func (t *turn) hurt(amount int) bool {
	t.enc.result.DamageTaken += t.player.TakeDamage(amount)
	return t.checkAlive()
}

func (t *turn) checkAlive() bool {
	if t.player.IsAlive() {
		return true
	}
	t.enc.phase = PhaseDefeat
	t.say("You have fallen.")
	return false
}

func (r *Resolver) roll(percent int) bool {
	return r.rng.Intn(100) < percent
}

func (r *Resolver) attack(t *turn) {
	enemy := t.enc.current
	if !r.roll(HitChance) {
		t.say("You miss %s.", enemy.Name())
		r.enemyStrike(t, false)
		return
	}

	dmg := t.player.Damage() + r.rng.Intn(5) - 2
	if t.player.Hunger() <= HungryThreshold {
		dmg /= 2
	}
	dmg = max(1, dmg)
	dealt := enemy.TakeDamage(dmg)
	t.enc.result.DamageDealt += dealt
	t.say("You hit %s for %d.", enemy.Name(), dealt)

	if !enemy.IsAlive() {
		r.kill(t, enemy)
		if t.enc.phase == PhaseEnemyDefeated {
			r.advance(t)
		}
		return
	}
	r.counter(t)
}

// counter is the surviving enemy's reply to a hit.
func (r *Resolver) counter(t *turn) {
	enemy := t.enc.current
	t.enc.phase = PhaseEnemyCounter
	if enemy.HasSpecialAbility() && r.roll(enemy.SpecialAbilityChance()) {
		atk := enemy.SpecialAbility(t.player)
		t.enc.result.DamageTaken += atk.Damage
		t.say("%s uses %s for %d!", enemy.Name(), atk.Name, atk.Damage)
		if !t.checkAlive() {
			return
		}
		t.enc.phase = PhasePlayerTurn
		return
	}
	r.enemyStrike(t, true)
}

// enemyStrike resolves an enemy attack, optionally subject to accuracy.
func (r *Resolver) enemyStrike(t *turn, checkAccuracy bool) {
	enemy := t.enc.current
	t.enc.phase = PhaseEnemyCounter
	// Accuracy is rolled before a move is picked so a miss never spends a
	// signature move's cooldown or uses.
	if checkAccuracy && r.rng.Float64() >= enemy.Accuracy() {
		t.say("%s misses.", enemy.Name())
		t.enc.phase = PhasePlayerTurn
		return
	}
	atk := enemy.ChooseAttack()
	t.say("%s hits you with %s for %d.", enemy.Name(), atk.Name, atk.Damage)
	if !t.hurt(atk.Damage) {
		return
	}
	if enemy.StatusEffectOnHit() == "infection" {
		if n := t.player.Infect(InfectionOnHit); n > 0 {
			t.say("The wound festers (+%d infection).", n)
		}
	}
	t.enc.phase = PhasePlayerTurn
}

func (r *Resolver) dodge(t *turn) {
	enemy := t.enc.current
	t.enc.phase = PhaseEnemyCounter
	if r.roll(DodgeChance) {
		t.say("You dodge %s.", enemy.Name())
		t.enc.phase = PhasePlayerTurn
		return
	}
	dmg := enemy.AttackPower() / 2
	t.say("You partly dodge %s and take %d.", enemy.Name(), dmg)
	if t.hurt(dmg) {
		t.enc.phase = PhasePlayerTurn
	}
}

func (r *Resolver) useItem(t *turn, key string) error {
	res, err := t.player.UseItem(key)
	if err != nil {
		return err
	}
	switch {
	case res.Equipped:
		t.say("You ready the %s.", res.ItemName)
	case res.Healed > 0 || res.Fed > 0 || res.Cured > 0:
		t.say("You use %s (+%d HP, +%d food, -%d infection).", res.ItemName, res.Healed, res.Fed, res.Cured)
	default:
		t.say("You use %s.", res.ItemName)
	}
	if res.AreaDamage <= 0 {
		return nil
	}

	// Blast everything present: the current enemy, then the queue.
	enemy := t.enc.current
	dealt := enemy.TakeAreaDamage(res.AreaDamage)
	t.enc.result.DamageDealt += dealt
	t.say("The blast hits %s for %d.", enemy.Name(), dealt)

	survivors := t.enc.queue[:0]
	var fallen []entity.Enemy
	for _, q := range t.enc.queue {
		d := q.TakeAreaDamage(res.AreaDamage)
		t.enc.result.DamageDealt += d
		if q.IsAlive() {
			survivors = append(survivors, q)
		} else {
			fallen = append(fallen, q)
		}
	}
	t.enc.queue = survivors
	for _, q := range fallen {
		r.kill(t, q)
		if t.enc.phase == PhaseDefeat {
			return nil
		}
	}

	if !enemy.IsAlive() {
		r.kill(t, enemy)
		if t.enc.phase == PhaseEnemyDefeated {
			r.advance(t)
		}
		return nil
	}
	if t.enc.phase != PhaseDefeat {
		t.enc.phase = PhasePlayerTurn
	}
	return nil
}

func (r *Resolver) flee(t *turn) {
	if r.roll(FleeChance) {
		t.enc.phase = PhaseFled
		t.enc.result.Fled = true
		t.say("You escape!")
		return
	}
	t.say("You fail to escape.")
	r.enemyStrike(t, true)
}

// kill awards experience and runs the enemy's death effect.
func (r *Resolver) kill(t *turn, enemy entity.Enemy) {
	t.enc.phase = PhaseEnemyDefeated
	t.enc.result.Kills++
	t.say("%s is down.", enemy.Name())

	if fx := enemy.OnDeath(t.player); fx.Name != "" {
		t.enc.result.DamageTaken += fx.Damage
		t.say("%s's %s hits you for %d!", enemy.Name(), fx.Name, fx.Damage)
		if !t.checkAlive() {
			return
		}
	}

	t.enc.result.Experience += KillExperience
	t.levels += t.player.GainExperience(KillExperience)
}

// advance moves to the next enemy, the next wave, or victory.
func (r *Resolver) advance(t *turn) {
	enc := t.enc
	enc.current = nil
	if len(enc.queue) > 0 {
		enc.phase = PhaseNextEnemy
		r.engageNext(enc)
		return
	}

	enc.phase = PhaseWaveCleared
	if enc.wave < enc.opts.MaxWaves {
		enc.phase = PhaseNextWave
		t.say("Another wave approaches!")
		if err := r.spawnWave(enc); err != nil {
			// Only boss encounters can fail to spawn and they have one wave.
			r.log.WithError(err).Warn("wave spawn failed")
			enc.phase = PhaseVictory
			enc.result.Won = true
			return
		}
		r.engageNext(enc)
		return
	}

	enc.phase = PhaseVictory
	enc.result.Won = true
	t.say("The area is clear.")
}

// finish closes the books on a resolved encounter.
func (r *Resolver) finish(ctx context.Context, enc *Encounter) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	defer span.End()

	enc.result.Remaining = enc.remaining()
	span.SetAttributes(
		attribute.String("combat.outcome", enc.phase.String()),
		attribute.Int("combat.kills", enc.result.Kills),
		attribute.Int("combat.remaining", enc.result.Remaining),
	)
	r.log.WithFields(logrus.Fields{
		"outcome": enc.phase.String(),
		"kills":   enc.result.Kills,
		"dealt":   enc.result.DamageDealt,
		"taken":   enc.result.DamageTaken,
	}).Info("combat ended")
}
