package entity

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// mockTarget records damage it receives.
type mockTarget struct {
	hp    int
	taken int
}

func (m *mockTarget) TakeDamage(amount int) int {
	if amount > m.hp {
		amount = m.hp
	}
	m.hp -= amount
	m.taken += amount
	return amount
}

func newRoster(t *testing.T) *Roster {
	t.Helper()
	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		t.Fatalf("LoadEnemyRegistry() error = %v", err)
	}
	return NewRoster(registry)
}

func TestRosterIDsArePerVariant(t *testing.T) {
	r := newRoster(t)

	a := r.SpawnCommon(1)
	b := r.SpawnCommon(1)
	tank, err := r.Spawn("tank", 1)
	if err != nil {
		t.Fatal(err)
	}

	if a.ID() != "common_1" || b.ID() != "common_2" || tank.ID() != "tank_1" {
		t.Errorf("ids = %s, %s, %s", a.ID(), b.ID(), tank.ID())
	}
}

func TestRosterScalesHealthByDifficulty(t *testing.T) {
	r := newRoster(t)

	tests := []struct {
		difficulty float64
		want       int
	}{
		{1.0, 25},
		{1.5, 38},
		{0.6, 15},
		{0, 25},
	}

	for _, tt := range tests {
		z := r.SpawnCommon(tt.difficulty)
		if z.MaxHealth() != tt.want || z.Health() != tt.want {
			t.Errorf("SpawnCommon(%v) health = %d/%d, want %d", tt.difficulty, z.Health(), z.MaxHealth(), tt.want)
		}
	}
}

func TestSpawnSpecialNeverCommon(t *testing.T) {
	r := newRoster(t)
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 100; i++ {
		if z := r.SpawnSpecial(rng, 1); z.Variant() == CommonVariant {
			t.Fatalf("SpawnSpecial() produced a common infected on draw %d", i)
		}
	}
}

func TestSpawnBoss(t *testing.T) {
	r := newRoster(t)

	boss, err := r.SpawnBoss("tank", "Patient Zero", 1)
	if err != nil {
		t.Fatal(err)
	}
	if boss.Name() != "Patient Zero" || boss.Variant() != "tank" {
		t.Errorf("boss = %s (%s), want Patient Zero (tank)", boss.Name(), boss.Variant())
	}
	if _, err := r.SpawnBoss("dragon", "", 1); err == nil {
		t.Error("SpawnBoss(dragon) should fail")
	}
	if z, err := r.SpawnBoss("", "", 1); err != nil || z.Variant() != "tank" {
		t.Errorf("SpawnBoss(\"\") = %v, %v, want tank", z, err)
	}
}

func TestZombieAccuracy(t *testing.T) {
	r := newRoster(t)

	tests := []struct {
		variant string
		want    float64
	}{
		{"common", 0.81},
		{"boomer", 0.62},
		{"spitter", 0.745},
		{"tank", 0.67},
	}

	for _, tt := range tests {
		z, _ := r.Spawn(tt.variant, 1)
		if got := z.Accuracy(); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s Accuracy() = %v, want %v", tt.variant, got, tt.want)
		}
	}
}

func TestBoomerVomitsOnceThenAttacks(t *testing.T) {
	r := newRoster(t)
	z, _ := r.Spawn("boomer", 1)

	first := z.ChooseAttack()
	if first.Name != "Vomit" || first.Damage != 22 {
		t.Errorf("first attack = %+v, want Vomit 22", first)
	}
	for i := 0; i < 5; i++ {
		z.EndTurn()
	}
	if got := z.ChooseAttack(); got.Name != "Attack" || got.Damage != 12 {
		t.Errorf("later attack = %+v, want basic 12", got)
	}
}

func TestTankMovesUseIndependentCooldowns(t *testing.T) {
	r := newRoster(t)
	z, _ := r.Spawn("tank", 1)

	want := []string{"Rock Throw", "Pound", "Attack", "Attack", "Pound", "Attack"}
	for i, name := range want {
		got := z.ChooseAttack()
		if got.Name != name {
			t.Errorf("turn %d attack = %s, want %s", i, got.Name, name)
		}
		z.EndTurn()
	}
}

func TestTankEnragesOnce(t *testing.T) {
	r := newRoster(t)
	z, _ := r.Spawn("tank", 1)

	z.TakeDamage(400)
	if z.IsEnraged() {
		t.Fatal("tank at 300/700 should not be enraged")
	}
	z.TakeDamage(100)
	if !z.IsEnraged() {
		t.Fatal("tank at 200/700 should be enraged")
	}
	if z.AttackPower() != 52 {
		t.Errorf("AttackPower() = %d, want 52", z.AttackPower())
	}
	z.TakeDamage(10)
	if z.AttackPower() != 52 {
		t.Errorf("enrage multiplier applied twice: %d", z.AttackPower())
	}
}

func TestTankResistsAreaDamage(t *testing.T) {
	r := newRoster(t)
	tank, _ := r.Spawn("tank", 1)
	common := r.SpawnCommon(1)

	if got := tank.TakeAreaDamage(40); got != 30 {
		t.Errorf("tank TakeAreaDamage(40) = %d, want 30", got)
	}
	if got := common.TakeAreaDamage(10); got != 10 {
		t.Errorf("common TakeAreaDamage(10) = %d, want 10", got)
	}
}

func TestZombieDeathIsTerminal(t *testing.T) {
	r := newRoster(t)
	z := r.SpawnCommon(1)

	if got := z.TakeDamage(100); got != 25 {
		t.Errorf("TakeDamage(100) = %d, want 25", got)
	}
	if z.IsAlive() || z.Health() != 0 {
		t.Error("zombie should be dead at 0")
	}
	if got := z.TakeDamage(5); got != 0 {
		t.Errorf("TakeDamage on corpse = %d, want 0", got)
	}
	if z.IsEnraged() {
		t.Error("a dead zombie is not enraged")
	}
}

func TestBoomerExplodesOnDeath(t *testing.T) {
	r := newRoster(t)
	boomer, _ := r.Spawn("boomer", 1)
	common := r.SpawnCommon(1)
	target := &mockTarget{hp: 100}

	if got := boomer.OnDeath(target); got.Damage != 35 || target.taken != 35 {
		t.Errorf("boomer OnDeath = %+v, taken %d, want 35", got, target.taken)
	}
	if got := common.OnDeath(target); got.Damage != 0 {
		t.Errorf("common OnDeath = %+v, want no effect", got)
	}
}

func TestSpecialAbility(t *testing.T) {
	r := newRoster(t)
	spitter, _ := r.Spawn("spitter", 1)
	common := r.SpawnCommon(1)
	target := &mockTarget{hp: 100}

	if !spitter.HasSpecialAbility() || spitter.SpecialAbilityChance() != 25 {
		t.Errorf("spitter special = %v/%d", spitter.HasSpecialAbility(), spitter.SpecialAbilityChance())
	}
	if got := spitter.SpecialAbility(target); got.Damage != 15 {
		t.Errorf("SpecialAbility() damage = %d, want 15", got.Damage)
	}
	if common.HasSpecialAbility() {
		t.Error("common infected has no special")
	}
	if got := common.SpecialAbility(target); got.Damage != 0 {
		t.Errorf("common SpecialAbility() = %+v, want none", got)
	}
}
