package director

import (
	"context"
	"math"
	"math/rand"
	"testing"
)

// mockVitals is a fixed survivor view.
type mockVitals struct {
	ratio float64
	level int
}

func (m mockVitals) HealthRatio() float64 { return m.ratio }
func (m mockVitals) Level() int           { return m.level }

func newDirector(seed int64, clues ...int) *Director {
	return New(rand.New(rand.NewSource(seed)), clues)
}

func TestAdjustZombieCountScenario(t *testing.T) {
	d := newDirector(12345)
	// 130 moves = 650 seconds.
	d.Update(context.Background(), mockVitals{ratio: 0.25, level: 1}, 130)

	if d.Elapsed() != 650 {
		t.Fatalf("Elapsed() = %d, want 650", d.Elapsed())
	}
	// 5 - 2 (critical health) + 2 (past 600s) = 5.
	if got := d.AdjustZombieCount(5); got != 5 {
		t.Errorf("AdjustZombieCount(5) = %d, want 5", got)
	}
}

func TestAdjustZombieCountBounds(t *testing.T) {
	ratios := []float64{0, 0.1, 0.29, 0.3, 0.45, 0.5, 0.8, 1}
	moves := []int{0, 10, 61, 121, 500}
	bases := []int{-10, 0, 1, 2, 3, 5, 6, 8, 12, 100}

	for _, r := range ratios {
		for _, m := range moves {
			d := newDirector(1)
			d.Update(context.Background(), mockVitals{ratio: r, level: 1}, m)
			for _, b := range bases {
				got := d.AdjustZombieCount(b)
				if got < MinZombies || got > MaxZombies {
					t.Errorf("AdjustZombieCount(%d) at ratio %v moves %d = %d, out of [2,8]", b, r, m, got)
				}
			}
		}
	}
}

func TestTensionAlwaysInUnitRange(t *testing.T) {
	elapsed := []int{-100, 0, 1, 300, 600, 10_000, math.MaxInt32}
	ratios := []float64{-5, 0, 0.25, 0.5, 1, 3, math.NaN()}

	for _, e := range elapsed {
		for _, r := range ratios {
			got := Tension(e, r)
			if math.IsNaN(got) || got < 0 || got > 1 {
				t.Errorf("Tension(%d, %v) = %v, outside [0,1]", e, r, got)
			}
		}
	}
}

func TestTensionValues(t *testing.T) {
	tests := []struct {
		elapsed int
		ratio   float64
		want    float64
	}{
		{0, 1, 0},
		{300, 1, 0.3},
		{600, 1, 0.6},
		{1200, 0, 1},
		{0, 0.5, 0.2},
	}
	for _, tt := range tests {
		if got := Tension(tt.elapsed, tt.ratio); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Tension(%d, %v) = %v, want %v", tt.elapsed, tt.ratio, got, tt.want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		elapsed int
		ratio   float64
		level   int
		want    float64
	}{
		{0, 1, 1, 1},
		{300, 1, 1, 1.5},
		{600, 0.2, 1, 1.2},
		{600, 0.4, 1, 1.6},
		{300, 1, 5, 1.8},
	}
	for _, tt := range tests {
		if got := Difficulty(tt.elapsed, tt.ratio, tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Difficulty(%d, %v, %d) = %v, want %v", tt.elapsed, tt.ratio, tt.level, got, tt.want)
		}
	}
}

func TestDifficultyIncreasesWithTime(t *testing.T) {
	for _, ratio := range []float64{0.1, 0.4, 0.9} {
		for _, level := range []int{1, 7} {
			prev := Difficulty(0, ratio, level)
			for e := 5; e <= 5000; e += 5 {
				got := Difficulty(e, ratio, level)
				if math.IsNaN(got) || got <= 0 {
					t.Fatalf("Difficulty(%d, %v, %d) = %v", e, ratio, level, got)
				}
				if got <= prev {
					t.Fatalf("Difficulty not increasing at %d: %v <= %v", e, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestSpawnChanceTable(t *testing.T) {
	tests := []struct {
		name   string
		ratio  float64
		moves  int
		zombie int
		loot   int
	}{
		{"healthy early", 0.9, 1, 65, 70},
		{"middling", 0.6, 1, 50, 70},
		{"hurt", 0.4, 1, 50, 85},
		{"critical", 0.2, 1, 40, 95},
		{"healthy late", 0.9, 61, 75, 70},
		{"critical late", 0.2, 61, 50, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDirector(1)
			d.Update(context.Background(), mockVitals{ratio: tt.ratio, level: 1}, tt.moves)
			if got := d.ZombieChance(); got != tt.zombie {
				t.Errorf("ZombieChance() = %d, want %d", got, tt.zombie)
			}
			if got := d.LootChance(); got != tt.loot {
				t.Errorf("LootChance() = %d, want %d", got, tt.loot)
			}
		})
	}
}

func TestLootQualityAndBonus(t *testing.T) {
	tests := []struct {
		ratio   float64
		moves   int
		quality float64
		bonus   int
	}{
		{0.2, 1, 1.8, 25},
		{0.4, 1, 1.4, 25},
		{0.9, 130, 1.2, 10},
		{0.9, 1, 1.0, 0},
	}
	for _, tt := range tests {
		d := newDirector(1)
		d.Update(context.Background(), mockVitals{ratio: tt.ratio, level: 1}, tt.moves)
		if got := d.LootQualityModifier(); got != tt.quality {
			t.Errorf("LootQualityModifier() at %v/%d = %v, want %v", tt.ratio, tt.moves, got, tt.quality)
		}
		if got := d.BonusLootChance(); got != tt.bonus {
			t.Errorf("BonusLootChance() at %v/%d = %d, want %d", tt.ratio, tt.moves, got, tt.bonus)
		}
	}
}

func TestEventGating(t *testing.T) {
	d := newDirector(12345)
	ctx := context.Background()
	v := mockVitals{ratio: 1, level: 1}

	for m := 1; m < 10; m++ {
		d.Update(ctx, v, m)
		if d.EventChance() != 0 {
			t.Fatalf("EventChance() at move %d = %d, want 0 before 10 moves", m, d.EventChance())
		}
	}
	d.Update(ctx, v, 10)
	if d.EventChance() != 5 {
		t.Errorf("EventChance() = %d, want 5", d.EventChance())
	}

	d.GenerateRandomEvent()
	if d.EventCooldown() != EventCooldown {
		t.Errorf("EventCooldown() = %d, want %d", d.EventCooldown(), EventCooldown)
	}
	for m := 11; m < 25; m++ {
		d.Update(ctx, v, m)
		if d.ShouldTriggerEvent() {
			t.Fatalf("event fired during cooldown at move %d", m)
		}
	}
}

func TestEventChanceLateAndTense(t *testing.T) {
	d := newDirector(1)
	ctx := context.Background()
	// Critical health past 600s keeps tension above 0.7.
	v := mockVitals{ratio: 0.05, level: 1}
	for m := 1; m <= 130; m++ {
		d.Update(ctx, v, m)
	}
	if got := d.EventChance(); got != 30 {
		t.Errorf("EventChance() = %d, want 30", got)
	}
}

func TestGenerateRandomEventTables(t *testing.T) {
	inTable := func(e Event, table []Event) bool {
		for _, x := range table {
			if x == e {
				return true
			}
		}
		return false
	}

	tests := []struct {
		name  string
		ratio float64
		moves int
		table []Event
	}{
		{"critical", 0.1, 1, criticalEvents},
		{"tense", 0.4, 200, tenseEvents},
		{"calm", 1, 1, mixedEvents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDirector(12345)
			d.Update(context.Background(), mockVitals{ratio: tt.ratio, level: 1}, tt.moves)
			for i := 0; i < 20; i++ {
				if e := d.GenerateRandomEvent(); !inTable(e, tt.table) {
					t.Errorf("GenerateRandomEvent() = %v, not in %s table", e, tt.name)
				}
			}
		})
	}
}

func TestClueGuaranteeLiveness(t *testing.T) {
	clues := []int{1, 2, 6, 8, 11}
	d := newDirector(12345, clues...)
	ctx := context.Background()
	v := mockVitals{ratio: 1, level: 1}

	next := 0
	for m := 1; m <= ClueGuaranteeMoves+len(clues)+1 && !d.AllCluesSpawned(); m++ {
		d.Update(ctx, v, m)
		if d.ShouldSpawnClue() {
			d.MarkClueSpawned(clues[next])
			next++
		}
	}

	if !d.AllCluesSpawned() {
		t.Errorf("AllCluesSpawned() = false after guarantee window, spawned %d/%d", next, len(clues))
	}
	if d.ShouldSpawnClue() {
		t.Error("ShouldSpawnClue() should be false once every clue spawned")
	}
}

func TestClueCooldown(t *testing.T) {
	d := newDirector(1, 1, 2, 3)
	ctx := context.Background()
	d.Update(ctx, mockVitals{ratio: 1, level: 1}, 1)
	d.MarkClueSpawned(1)

	for m := 2; m < 2+ClueCooldown-1; m++ {
		d.Update(ctx, mockVitals{ratio: 1, level: 1}, m)
		if d.ShouldSpawnClue() {
			t.Fatalf("ShouldSpawnClue() during cooldown at move %d", m)
		}
	}
}

func TestRecordCollected(t *testing.T) {
	d := newDirector(1, 1, 2)
	d.RecordCollected([]int{1, 2})
	if !d.AllCluesSpawned() {
		t.Error("AllCluesSpawned() should be true after recording every clue")
	}
}

func TestSpecialZombieChance(t *testing.T) {
	d := newDirector(1)
	d.Update(context.Background(), mockVitals{ratio: 1, level: 1}, 240)
	// elapsed 1200: tension 0.6 -> 18, plus 1200/60 = 20.
	if got := d.SpecialZombieChance(); got != 38 {
		t.Errorf("SpecialZombieChance() = %d, want 38", got)
	}
}

func TestEventString(t *testing.T) {
	if EventHordeIncoming.String() != "Horde Incoming" {
		t.Errorf("String() = %q", EventHordeIncoming.String())
	}
	if !EventZombiePatrol.Hostile() || EventSafeZone.Hostile() {
		t.Error("Hostile() misclassified")
	}
}
