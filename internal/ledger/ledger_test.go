package ledger

import (
	"errors"
	"testing"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		t.Fatalf("LoadItemRegistry() error = %v", err)
	}
	skills, err := gamedata.LoadSkills()
	if err != nil {
		t.Fatalf("LoadSkills() error = %v", err)
	}
	return New("Tester", items, skills)
}

func TestNewLedgerDefaults(t *testing.T) {
	l := newTestLedger(t)

	if l.Health() != 100 || l.MaxHealth() != 100 {
		t.Errorf("health = %d/%d, want 100/100", l.Health(), l.MaxHealth())
	}
	if l.Hunger() != 100 {
		t.Errorf("Hunger() = %d, want 100", l.Hunger())
	}
	if l.Level() != 1 || l.ExperienceToNext() != 100 {
		t.Errorf("level = %d, threshold = %d, want 1, 100", l.Level(), l.ExperienceToNext())
	}
	if l.Weapon().ID != StarterWeaponID {
		t.Errorf("Weapon() = %v, want knife", l.Weapon())
	}
	if l.Damage() != 15 {
		t.Errorf("Damage() = %d, want 15", l.Damage())
	}
	if l.Inventory().Capacity() != 20 {
		t.Errorf("Capacity() = %d, want 20", l.Inventory().Capacity())
	}
	if l.ID() == "" {
		t.Error("ID() should be generated")
	}
}

func TestGainExperienceMultipleLevels(t *testing.T) {
	l := newTestLedger(t)

	gained := l.GainExperience(250)

	if gained != 2 {
		t.Errorf("GainExperience(250) = %d, want 2", gained)
	}
	if l.Level() != 3 {
		t.Errorf("Level() = %d, want 3", l.Level())
	}
	if l.Experience() != 0 {
		t.Errorf("Experience() = %d, want 0", l.Experience())
	}
	if l.ExperienceToNext() != 300 {
		t.Errorf("ExperienceToNext() = %d, want 300", l.ExperienceToNext())
	}
	if l.SkillPoints() != 6 {
		t.Errorf("SkillPoints() = %d, want 6", l.SkillPoints())
	}
	if l.Damage() != 19 {
		t.Errorf("Damage() = %d, want 19", l.Damage())
	}
	if l.MaxHealth() != 120 || l.Health() != 120 {
		t.Errorf("health = %d/%d, want 120/120", l.Health(), l.MaxHealth())
	}
}

func TestGainExperienceLeavesRemainderBelowThreshold(t *testing.T) {
	amounts := []int{0, 1, 99, 100, 149, 250, 1000, 5000}
	for _, amt := range amounts {
		l := newTestLedger(t)
		prevLevel := l.Level()
		l.GainExperience(amt)
		if l.Experience() >= l.ExperienceToNext() {
			t.Errorf("GainExperience(%d): xp %d >= threshold %d", amt, l.Experience(), l.ExperienceToNext())
		}
		if l.Level() < prevLevel {
			t.Errorf("GainExperience(%d): level decreased", amt)
		}
	}
}

func TestTakeDamageAndHealClamp(t *testing.T) {
	l := newTestLedger(t)

	if got := l.TakeDamage(30); got != 30 {
		t.Errorf("TakeDamage(30) = %d, want 30", got)
	}
	if got := l.Heal(50); got != 30 {
		t.Errorf("Heal(50) = %d, want 30", got)
	}
	if got := l.TakeDamage(500); got != 100 {
		t.Errorf("TakeDamage(500) = %d, want 100", got)
	}
	if l.Health() != 0 || l.IsAlive() {
		t.Error("survivor should be dead at 0 health")
	}
	if got := l.TakeDamage(-4); got != 0 {
		t.Errorf("TakeDamage(-4) = %d, want 0", got)
	}
}

func TestSetHungerClamps(t *testing.T) {
	l := newTestLedger(t)

	l.SetHunger(-10)
	if l.Hunger() != 0 {
		t.Errorf("SetHunger(-10) -> %d, want 0", l.Hunger())
	}
	l.SetHunger(500)
	if l.Hunger() != 100 {
		t.Errorf("SetHunger(500) -> %d, want 100", l.Hunger())
	}
	l.SetHealth(250)
	if l.Health() != 100 {
		t.Errorf("SetHealth(250) -> %d, want 100", l.Health())
	}
}

func TestHealthRatio(t *testing.T) {
	l := newTestLedger(t)
	l.TakeDamage(75)
	if got := l.HealthRatio(); got != 0.25 {
		t.Errorf("HealthRatio() = %v, want 0.25", got)
	}
}

func TestApplySkillBonusesRescalesHealth(t *testing.T) {
	l := newTestLedger(t)
	l.skillPoints = 5
	l.TakeDamage(50)

	if err := l.LearnSkill("survival_health_1"); err != nil {
		t.Fatalf("LearnSkill() error = %v", err)
	}

	if l.MaxHealth() != 120 {
		t.Errorf("MaxHealth() = %d, want 120", l.MaxHealth())
	}
	if l.Health() != 60 {
		t.Errorf("Health() = %d, want 60 (ratio kept)", l.Health())
	}
	if l.SkillPoints() != 4 {
		t.Errorf("SkillPoints() = %d, want 4", l.SkillPoints())
	}
}

func TestLearnSkillErrors(t *testing.T) {
	l := newTestLedger(t)

	tests := []struct {
		name   string
		points int
		setup  func()
		id     string
		want   error
	}{
		{"unknown", 5, nil, "flying", ErrUnknownSkill},
		{"locked", 5, nil, "combat_melee_2", ErrSkillLocked},
		{"no points", 0, nil, "combat_melee_1", ErrInsufficientPoints},
		{"maxed", 5, func() { l.skills.levels["scavenge_loot_1"] = 3 }, "scavenge_loot_1", ErrSkillMaxed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.skillPoints = tt.points
			if tt.setup != nil {
				tt.setup()
			}
			if err := l.LearnSkill(tt.id); !errors.Is(err, tt.want) {
				t.Errorf("LearnSkill(%q) error = %v, want %v", tt.id, err, tt.want)
			}
			if l.SkillPoints() != tt.points {
				t.Errorf("SkillPoints() = %d, want unchanged %d", l.SkillPoints(), tt.points)
			}
		})
	}
}

func TestDamageSkillStacksWithWeapon(t *testing.T) {
	l := newTestLedger(t)
	l.skillPoints = 10

	if err := l.LearnSkill("combat_melee_1"); err != nil {
		t.Fatalf("LearnSkill() error = %v", err)
	}
	if err := l.LearnSkill("combat_melee_2"); err != nil {
		t.Fatalf("LearnSkill(child) error = %v", err)
	}
	if l.Damage() != 15+5+10 {
		t.Errorf("Damage() = %d, want 30", l.Damage())
	}

	l.Unequip()
	if l.Damage() != 30-7 {
		t.Errorf("Damage() with fists = %d, want 23", l.Damage())
	}
}

func TestInfectionResistance(t *testing.T) {
	l := newTestLedger(t)

	if got := l.Infect(40); got != 40 {
		t.Errorf("Infect(40) = %d, want 40", got)
	}
	if l.Feverish() {
		t.Error("40 infection should not be feverish")
	}

	l.skillPoints = 3
	if err := l.LearnSkill("survival_health_1"); err != nil {
		t.Fatal(err)
	}
	if err := l.LearnSkill("survival_health_2"); err != nil {
		t.Fatal(err)
	}
	if got := l.Infect(20); got != 14 {
		t.Errorf("Infect(20) with 30%% resistance = %d, want 14", got)
	}
	if !l.Feverish() {
		t.Errorf("Infection() = %d, should be feverish", l.Infection())
	}
	if got := l.CureInfection(100); got != 54 {
		t.Errorf("CureInfection(100) = %d, want 54", got)
	}
}
