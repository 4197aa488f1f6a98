// Package director implements the adaptive director: it turns elapsed time
// and the survivor's condition into tension, difficulty and spawn decisions.
package director

import (
	"context"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// Tuning constants.
const (
	SecondsPerMove = 5

	tensionTimeScale  = 600.0 // seconds until time tension saturates
	tensionTimeWeight = 0.6
	tensionHPWeight   = 0.4

	difficultyTimeScale = 300.0
	difficultyTimeRate  = 0.5

	MinZombies = 2
	MaxZombies = 8

	EventCooldown        = 15
	minMovesBetweenEvent = 10
	ClueCooldown         = 5
	ClueGuaranteeMoves   = 60
)

// Vitals is the read-only view of the survivor the director watches.
type Vitals interface {
	HealthRatio() float64
	Level() int
}

// Director is the adaptive difficulty model for one session.
type Director struct {
	rng *rand.Rand
	log *logrus.Entry

	totalMoves  int
	elapsed     int // seconds
	healthRatio float64
	level       int
	tension     float64
	difficulty  float64

	eventCooldown   int
	clueCooldown    int
	movesSinceEvent int

	allClues     mapset.Set[int]
	spawnedClues mapset.Set[int]
}

// New creates a director for a fresh session over the given clue registry.
func New(rng *rand.Rand, clueIDs []int) *Director {
	d := &Director{
		rng:          rng,
		log:          logger.For("director"),
		healthRatio:  1,
		level:        1,
		difficulty:   1,
		allClues:     mapset.New[int](),
		spawnedClues: mapset.New[int](),
	}
	for _, id := range clueIDs {
		d.allClues.Put(id)
	}
	return d
}

// Update refreshes the model from the survivor and the move count.
// It must run before any decision is queried for the same action.
func (d *Director) Update(ctx context.Context, v Vitals, totalMoves int) {
	tracer := telemetry.Tracer("director")
	_, span := tracer.Start(ctx, "director.update")
	defer span.End()

	d.totalMoves = totalMoves
	d.elapsed = totalMoves * SecondsPerMove
	d.healthRatio = v.HealthRatio()
	d.level = v.Level()
	d.tension = Tension(d.elapsed, d.healthRatio)
	d.difficulty = Difficulty(d.elapsed, d.healthRatio, d.level)

	d.movesSinceEvent++
	if d.eventCooldown > 0 {
		d.eventCooldown--
	}
	if d.clueCooldown > 0 {
		d.clueCooldown--
	}

	span.SetAttributes(
		attribute.Int("director.moves", totalMoves),
		attribute.Int("director.elapsed", d.elapsed),
		attribute.Float64("director.health_ratio", d.healthRatio),
		attribute.Float64("director.tension", d.tension),
		attribute.Float64("director.difficulty", d.difficulty),
	)
	d.log.WithFields(logrus.Fields{
		"moves":      totalMoves,
		"tension":    d.tension,
		"difficulty": d.difficulty,
	}).Debug("director updated")
}

// Tension blends time pressure and health deficit into [0,1].
func Tension(elapsed int, healthRatio float64) float64 {
	timeTension := math.Min(float64(elapsed)/tensionTimeScale, 1)
	healthTension := 1 - healthRatio
	return clampUnit(tensionTimeWeight*timeTension + tensionHPWeight*healthTension)
}

// Difficulty grows with time, eases off for a hurt survivor and rises for veterans.
func Difficulty(elapsed int, healthRatio float64, level int) float64 {
	d := 1 + (float64(max(elapsed, 0))/difficultyTimeScale)*difficultyTimeRate
	switch {
	case healthRatio < 0.3:
		d *= 0.6
	case healthRatio < 0.5:
		d *= 0.8
	}
	if level >= 5 {
		d *= 1.2
	}
	return d
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Elapsed returns in-game seconds.
func (d *Director) Elapsed() int { return d.elapsed }

// TotalMoves returns the move count seen by the last Update.
func (d *Director) TotalMoves() int { return d.totalMoves }

// Tension returns the current tension in [0,1].
func (d *Director) Tension() float64 { return d.tension }

// Difficulty returns the current difficulty multiplier.
func (d *Director) Difficulty() float64 { return d.difficulty }

// HealthRatio returns the survivor's health ratio at the last Update.
func (d *Director) HealthRatio() float64 { return d.healthRatio }

// EventCooldown returns moves left before another event may fire.
func (d *Director) EventCooldown() int { return d.eventCooldown }

// roll returns true with the given percent chance.
func (d *Director) roll(percent int) bool {
	return d.rng.Intn(100) < percent
}
