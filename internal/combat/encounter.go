// Package combat provides the turn-based combat resolver: a FIFO queue of
// infected fought one at a time, wave after wave.
package combat

import (
	"fmt"

	"github.com/samdwyer/deadzone/internal/entity"
)

// MaxQueue is the hard capacity of the enemy queue.
const MaxQueue = 8

// HistorySize is how many recent actions an encounter remembers.
const HistorySize = 5

// Phase is a state of the combat state machine.
type Phase int

const (
	PhaseWaveStart Phase = iota
	PhaseEnemyEngaged
	PhasePlayerTurn
	PhaseEnemyCounter
	PhaseEnemyDefeated
	PhaseNextEnemy
	PhaseWaveCleared
	PhaseNextWave
	PhaseVictory
	PhaseDefeat
	PhaseFled
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaveStart:
		return "wave_start"
	case PhaseEnemyEngaged:
		return "enemy_engaged"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyCounter:
		return "enemy_counter"
	case PhaseEnemyDefeated:
		return "enemy_defeated"
	case PhaseNextEnemy:
		return "next_enemy"
	case PhaseWaveCleared:
		return "wave_cleared"
	case PhaseNextWave:
		return "next_wave"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal returns true for phases that end the encounter.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

// Boss describes a scripted boss fight.
type Boss struct {
	Variant string
	Name    string
	Final   bool
}

// Options configures an encounter.
type Options struct {
	MaxWaves  int   // At least 1
	BaseCount int   // Wave base size before director adjustment; 0 rolls 3-6
	Elite     bool  // Each wave is a single special infected
	Boss      *Boss // The boss alone, one wave
}

// Result summarizes a finished encounter.
type Result struct {
	Won         bool
	Fled        bool
	Kills       int
	DamageDealt int
	DamageTaken int
	Remaining   int
	Waves       int
	Experience  int
}

// History is a bounded log of recent actions; the oldest entry is evicted.
type History struct {
	entries []string
}

// Push appends an entry, evicting the oldest when full.
func (h *History) Push(entry string) {
	if len(h.entries) == HistorySize {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:HistorySize-1]
	}
	h.entries = append(h.entries, entry)
}

// Entries returns the log, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Encounter is one combat session.
type Encounter struct {
	opts    Options
	phase   Phase
	queue   []entity.Enemy
	current entity.Enemy
	wave    int
	history History
	result  Result
}

func newEncounter(opts Options) *Encounter {
	if opts.MaxWaves < 1 || opts.Boss != nil {
		opts.MaxWaves = 1
	}
	return &Encounter{opts: opts, phase: PhaseWaveStart}
}

// enqueue adds an enemy to the back of the queue. Overfilling the queue is
// a programming error and panics.
func (e *Encounter) enqueue(enemy entity.Enemy) {
	if len(e.queue) >= MaxQueue {
		panic(fmt.Sprintf("combat: enemy queue over capacity (%d)", MaxQueue))
	}
	e.queue = append(e.queue, enemy)
}

// dequeue pops the front of the queue, or returns nil.
func (e *Encounter) dequeue() entity.Enemy {
	if len(e.queue) == 0 {
		return nil
	}
	next := e.queue[0]
	e.queue = e.queue[1:]
	return next
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase { return e.phase }

// Over returns true once the encounter has resolved.
func (e *Encounter) Over() bool { return e.phase.Terminal() }

// Current returns the engaged enemy, or nil between enemies.
func (e *Encounter) Current() entity.Enemy { return e.current }

// Queue returns the waiting enemies in spawn order.
func (e *Encounter) Queue() []entity.Enemy {
	return append([]entity.Enemy(nil), e.queue...)
}

// Wave returns the current wave number, starting at 1.
func (e *Encounter) Wave() int { return e.wave }

// MaxWaves returns the number of waves in this encounter.
func (e *Encounter) MaxWaves() int { return e.opts.MaxWaves }

// Boss returns the boss description, or nil.
func (e *Encounter) Boss() *Boss { return e.opts.Boss }

// History returns recent actions, oldest first.
func (e *Encounter) History() []string { return e.history.Entries() }

// Result returns the tallies so far; final once Over.
func (e *Encounter) Result() Result { return e.result }

// remaining counts enemies still standing.
func (e *Encounter) remaining() int {
	n := len(e.queue)
	if e.current != nil && e.current.IsAlive() {
		n++
	}
	return n
}
