package ledger

import (
	"errors"
	"testing"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

func TestInventoryRejectsOverflow(t *testing.T) {
	inv := NewInventory(20)
	filler := &gamedata.ItemDef{ID: "filler", Name: "Filler", Space: 9}
	bandage := &gamedata.ItemDef{ID: "loot_001", Name: "Bandage", Space: 3}

	if !inv.Add(filler, 2) {
		t.Fatal("Add(filler x2) should fit")
	}
	if inv.Used() != 18 {
		t.Fatalf("Used() = %d, want 18", inv.Used())
	}
	if inv.Add(bandage, 1) {
		t.Error("Add(bandage) should be rejected at 18/20")
	}
	if inv.Used() != 18 || inv.Count("loot_001") != 0 {
		t.Error("rejected Add must not change the inventory")
	}
}

func TestInventoryStacksMerge(t *testing.T) {
	inv := NewInventory(20)
	cloth := &gamedata.ItemDef{ID: "mat_cloth", Name: "Cloth", Space: 2}

	inv.Add(cloth, 2)
	inv.Add(cloth, 3)

	if got := len(inv.Stacks()); got != 1 {
		t.Errorf("stacks = %d, want 1", got)
	}
	if inv.Count("mat_cloth") != 5 || inv.Used() != 10 {
		t.Errorf("count/used = %d/%d, want 5/10", inv.Count("mat_cloth"), inv.Used())
	}

	if !inv.Remove("mat_cloth", 5) {
		t.Error("Remove all should succeed")
	}
	if len(inv.Stacks()) != 0 {
		t.Error("empty stack should be removed")
	}
	if inv.Remove("mat_cloth", 1) {
		t.Error("Remove from empty should fail")
	}
}

func TestInventoryPotencyAverages(t *testing.T) {
	inv := NewInventory(20)
	kit := &gamedata.ItemDef{ID: "item_first_aid", Name: "First Aid Kit", Space: 4}

	inv.AddPotent(kit, 1, 1.5)
	inv.Add(kit, 1)

	s, _ := inv.Find("item_first_aid")
	if s.Strength() != 1.25 {
		t.Errorf("Strength() = %v, want 1.25", s.Strength())
	}
	if (Stack{}).Strength() != 1 {
		t.Error("zero potency should read as 1")
	}
}

func TestUseItemPotentStack(t *testing.T) {
	l := newTestLedger(t)
	l.TakeDamage(50)
	if err := l.AddPotentItem("loot_001", 1, 1.8); err != nil {
		t.Fatal(err)
	}

	res, err := l.UseItem("loot_001")
	if err != nil {
		t.Fatal(err)
	}
	if res.Healed != 27 {
		t.Errorf("Healed = %d, want 27", res.Healed)
	}
}

func TestInventoryFindByName(t *testing.T) {
	inv := NewInventory(20)
	inv.Add(&gamedata.ItemDef{ID: "loot_002", Name: "Canned Food", Space: 4}, 1)

	if _, ok := inv.Find("canned food"); !ok {
		t.Error("Find by name should match case-insensitively")
	}
	if _, ok := inv.Find("loot_002"); !ok {
		t.Error("Find by id should match")
	}
	if _, ok := inv.Find("axe"); ok {
		t.Error("Find(axe) should miss")
	}
}

func TestAddItemErrors(t *testing.T) {
	l := newTestLedger(t)

	if err := l.AddItem("loot_nothing", 1); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("AddItem(unknown) error = %v, want ErrUnknownItem", err)
	}
	if err := l.AddItem("loot_rifle", 2); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("AddItem(rifle x2) error = %v, want ErrInventoryFull", err)
	}
}

func TestUseItemHealsAndConsumes(t *testing.T) {
	l := newTestLedger(t)
	l.TakeDamage(50)
	if err := l.AddItem("loot_001", 2); err != nil {
		t.Fatal(err)
	}

	res, err := l.UseItem("Bandage")
	if err != nil {
		t.Fatalf("UseItem() error = %v", err)
	}
	if res.Healed != 15 || !res.Consumed {
		t.Errorf("UseItem() = %+v, want 15 healed and consumed", res)
	}
	if l.Inventory().Count("loot_001") != 1 {
		t.Errorf("bandages left = %d, want 1", l.Inventory().Count("loot_001"))
	}
}

func TestUseItemHealingSkill(t *testing.T) {
	l := newTestLedger(t)
	l.skillPoints = 1
	if err := l.LearnSkill("medical_heal_1"); err != nil {
		t.Fatal(err)
	}
	l.TakeDamage(50)
	l.AddItem("item_first_aid", 1)

	res, err := l.UseItem("item_first_aid")
	if err != nil {
		t.Fatal(err)
	}
	if res.Healed != 31 {
		t.Errorf("Healed = %d, want 31 (25 x 1.25)", res.Healed)
	}
}

func TestUseItemFoodDefaultRestore(t *testing.T) {
	items := gamedata.NewItemRegistry([]gamedata.ItemDef{
		{ID: "weapon_knife", Name: "Knife", Category: gamedata.CategoryWeapon, Space: 2},
		{ID: "jerky", Name: "Jerky", Category: gamedata.CategoryFood, Space: 1, Consumable: true, Usable: true},
	})
	l := New("Eater", items, nil)
	l.SetHunger(10)
	l.AddItem("jerky", 1)

	res, err := l.UseItem("jerky")
	if err != nil {
		t.Fatal(err)
	}
	if res.Fed != 30 || l.Hunger() != 40 {
		t.Errorf("Fed = %d hunger = %d, want 30 and 40", res.Fed, l.Hunger())
	}
}

func TestUseItemAreaDamage(t *testing.T) {
	l := newTestLedger(t)
	l.AddItem("loot_pipe_bomb", 1)

	res, err := l.UseItem("Pipe Bomb")
	if err != nil {
		t.Fatal(err)
	}
	if res.AreaDamage != 30 {
		t.Errorf("AreaDamage = %d, want 30", res.AreaDamage)
	}
}

func TestUseItemRejectsMaterialsAndMissing(t *testing.T) {
	l := newTestLedger(t)
	l.AddItem("mat_wire", 1)

	if _, err := l.UseItem("mat_wire"); !errors.Is(err, ErrNotUsable) {
		t.Errorf("UseItem(wire) error = %v, want ErrNotUsable", err)
	}
	if _, err := l.UseItem("loot_medkit"); !errors.Is(err, ErrNotCarried) {
		t.Errorf("UseItem(medkit) error = %v, want ErrNotCarried", err)
	}
}

func TestEquipAndDropWeapon(t *testing.T) {
	l := newTestLedger(t)
	l.AddItem("loot_004", 1)

	if err := l.Equip("Axe"); err != nil {
		t.Fatalf("Equip() error = %v", err)
	}
	if l.Damage() != 25 {
		t.Errorf("Damage() with axe = %d, want 25", l.Damage())
	}
	if err := l.Equip("Knife"); err != nil {
		t.Fatal(err)
	}
	if err := l.Equip("loot_004"); err != nil {
		t.Fatal(err)
	}

	if err := l.Drop("Axe", 1); err != nil {
		t.Fatalf("Drop() error = %v", err)
	}
	if l.Weapon().Name != "Fists" || l.Damage() != 8 {
		t.Errorf("after drop weapon = %v damage = %d, want fists and 8", l.Weapon(), l.Damage())
	}

	l.AddItem("mat_cloth", 1)
	if err := l.Equip("Cloth"); !errors.Is(err, ErrNotAWeapon) {
		t.Errorf("Equip(cloth) error = %v, want ErrNotAWeapon", err)
	}
}
