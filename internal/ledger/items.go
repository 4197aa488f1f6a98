package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Item errors.
var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrNotCarried    = errors.New("item not in inventory")
	ErrNotUsable     = errors.New("item cannot be used")
	ErrNotAWeapon    = errors.New("item is not a weapon")
	ErrInventoryFull = errors.New("inventory full")
)

// defaultFoodRestore applies to FOOD items that declare no hunger value.
const defaultFoodRestore = 30

// UseResult describes what using an item did.
type UseResult struct {
	ItemID     string
	ItemName   string
	Healed     int
	Fed        int
	Cured      int
	AreaDamage int  // Damage to deal to every enemy present
	Equipped   bool // A weapon was equipped instead of consumed
	Consumed   bool
}

// AddItem puts quantity units of an item into the inventory.
func (l *Ledger) AddItem(itemID string, quantity int) error {
	return l.AddPotentItem(itemID, quantity, 1)
}

// AddPotentItem is AddItem for units whose restore values are scaled by potency.
func (l *Ledger) AddPotentItem(itemID string, quantity int, potency float64) error {
	def := l.items.GetByID(itemID)
	if def == nil {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if !l.inv.AddPotent(def, quantity, potency) {
		return fmt.Errorf("%w: %s x%d needs %d space, %d free",
			ErrInventoryFull, def.Name, quantity, def.Space*quantity, l.inv.Free())
	}
	return nil
}

// ItemDef returns the definition for an item id.
func (l *Ledger) ItemDef(itemID string) *gamedata.ItemDef {
	return l.items.GetByID(itemID)
}

// UseItem applies one unit of a carried item found by id or name.
// Restores are scaled by the stack's potency and healing by the healing
// skill. Weapons are equipped.
func (l *Ledger) UseItem(key string) (UseResult, error) {
	stack, ok := l.inv.Find(key)
	if !ok {
		return UseResult{}, fmt.Errorf("%w: %s", ErrNotCarried, key)
	}
	def := l.items.GetByID(stack.ItemID)
	if def == nil {
		return UseResult{}, fmt.Errorf("%w: %s", ErrUnknownItem, stack.ItemID)
	}

	res := UseResult{ItemID: def.ID, ItemName: def.Name}
	if def.Category == gamedata.CategoryWeapon {
		if err := l.Equip(def.ID); err != nil {
			return UseResult{}, err
		}
		res.Equipped = true
		return res, nil
	}
	if !def.Usable {
		return UseResult{}, fmt.Errorf("%w: %s", ErrNotUsable, def.Name)
	}

	if def.HealthRestore > 0 {
		heal := int(math.Round(float64(def.HealthRestore) * stack.Strength() * (1 + l.Bonus(gamedata.BonusHealing))))
		res.Healed = l.Heal(heal)
	}
	hunger := def.HungerRestore
	if def.Category == gamedata.CategoryFood && hunger == 0 {
		hunger = defaultFoodRestore
	}
	if hunger > 0 {
		res.Fed = l.Eat(int(math.Round(float64(hunger) * stack.Strength())))
	}
	if def.InfectionCure > 0 {
		res.Cured = l.CureInfection(def.InfectionCure)
	}
	res.AreaDamage = def.AreaDamage

	if def.Consumable {
		l.inv.Remove(def.ID, 1)
		res.Consumed = true
	}
	return res, nil
}

// Equip wields a carried weapon.
func (l *Ledger) Equip(key string) error {
	stack, ok := l.inv.Find(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotCarried, key)
	}
	def := l.items.GetByID(stack.ItemID)
	if def == nil || def.Category != gamedata.CategoryWeapon {
		return fmt.Errorf("%w: %s", ErrNotAWeapon, stack.Name)
	}
	l.weapon = Weapon{ID: def.ID, Name: def.Name, Boost: def.DamageBoost}
	l.ApplySkillBonuses()
	return nil
}

// Unequip falls back to bare fists.
func (l *Ledger) Unequip() {
	l.weapon = Weapon{Name: fistsName, Boost: fistsPenalty}
	l.ApplySkillBonuses()
}

// Drop discards quantity units of a carried item. Dropping the last
// equipped weapon unequips it.
func (l *Ledger) Drop(key string, quantity int) error {
	stack, ok := l.inv.Find(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotCarried, key)
	}
	if quantity <= 0 || quantity > stack.Quantity {
		quantity = stack.Quantity
	}
	l.inv.Remove(stack.ItemID, quantity)
	if l.weapon.ID == stack.ItemID && l.inv.Count(stack.ItemID) == 0 {
		l.Unequip()
	}
	return nil
}

// Exchange removes units of several items and adds a result in one step.
// Nothing changes unless every removal succeeds and the result fits.
func (l *Ledger) Exchange(take map[string]int, itemID string, quantity int, potency float64) error {
	def := l.items.GetByID(itemID)
	if def == nil {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}

	inv := l.inv.Clone()
	for id, n := range take {
		if !inv.Remove(id, n) {
			return fmt.Errorf("%w: %s x%d", ErrNotCarried, id, n)
		}
	}
	if !inv.AddPotent(def, quantity, potency) {
		return fmt.Errorf("%w: %s needs %d space, %d free", ErrInventoryFull, def.Name, def.Space*quantity, inv.Free())
	}

	l.inv = inv
	if l.weapon.ID != "" && l.inv.Count(l.weapon.ID) == 0 {
		l.Unequip()
	}
	return nil
}
