package ledger

import (
	"strings"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Stack is a pile of identical items. Space is per unit.
// Potency scales restore values; zero reads as 1.
type Stack struct {
	ItemID    string            `yaml:"item_id"`
	Name      string            `yaml:"name"`
	Category  gamedata.Category `yaml:"category"`
	Quantity  int               `yaml:"quantity"`
	UnitSpace int               `yaml:"unit_space"`
	Potency   float64           `yaml:"potency,omitempty"`
}

// Space returns the total space the stack occupies.
func (s Stack) Space() int {
	return s.UnitSpace * s.Quantity
}

// Strength returns the stack's restore multiplier.
func (s Stack) Strength() float64 {
	if s.Potency <= 0 {
		return 1
	}
	return s.Potency
}

// Inventory is an ordered list of stacks bounded by total space.
type Inventory struct {
	stacks   []Stack
	capacity int
}

// NewInventory creates an empty inventory.
func NewInventory(capacity int) *Inventory {
	return &Inventory{capacity: capacity}
}

// Capacity returns the maximum total space.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Used returns the occupied space.
func (inv *Inventory) Used() int {
	used := 0
	for _, s := range inv.stacks {
		used += s.Space()
	}
	return used
}

// Free returns the unoccupied space.
func (inv *Inventory) Free() int {
	return inv.capacity - inv.Used()
}

// CanFit returns true if space more units of space fit.
func (inv *Inventory) CanFit(space int) bool {
	return inv.Used()+space <= inv.capacity
}

// Add places quantity units of def, merging into an existing stack.
// Returns false without changing anything when the result would not fit.
func (inv *Inventory) Add(def *gamedata.ItemDef, quantity int) bool {
	return inv.AddPotent(def, quantity, 1)
}

// AddPotent is Add for units of a given potency. Merged stacks average
// their potency by quantity.
func (inv *Inventory) AddPotent(def *gamedata.ItemDef, quantity int, potency float64) bool {
	if def == nil || quantity <= 0 {
		return false
	}
	if !inv.CanFit(def.Space * quantity) {
		return false
	}
	if potency <= 0 {
		potency = 1
	}
	for i := range inv.stacks {
		s := &inv.stacks[i]
		if s.ItemID == def.ID {
			total := s.Strength()*float64(s.Quantity) + potency*float64(quantity)
			s.Quantity += quantity
			s.Potency = total / float64(s.Quantity)
			return true
		}
	}
	inv.stacks = append(inv.stacks, Stack{
		ItemID:    def.ID,
		Name:      def.Name,
		Category:  def.Category,
		Quantity:  quantity,
		UnitSpace: def.Space,
		Potency:   potency,
	})
	return true
}

// Remove takes quantity units of the item. Returns false if fewer are held.
func (inv *Inventory) Remove(itemID string, quantity int) bool {
	for i := range inv.stacks {
		if inv.stacks[i].ItemID != itemID {
			continue
		}
		if inv.stacks[i].Quantity < quantity {
			return false
		}
		inv.stacks[i].Quantity -= quantity
		if inv.stacks[i].Quantity == 0 {
			inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
		}
		return true
	}
	return false
}

// Count returns how many units of the item are held.
func (inv *Inventory) Count(itemID string) int {
	for _, s := range inv.stacks {
		if s.ItemID == itemID {
			return s.Quantity
		}
	}
	return 0
}

// Find returns the stack matching an item id or a case-insensitive name.
func (inv *Inventory) Find(key string) (Stack, bool) {
	norm := strings.ToLower(strings.TrimSpace(key))
	for _, s := range inv.stacks {
		if s.ItemID == key || strings.ToLower(s.Name) == norm {
			return s, true
		}
	}
	return Stack{}, false
}

// Stacks returns a copy of the stacks in order.
func (inv *Inventory) Stacks() []Stack {
	return append([]Stack(nil), inv.stacks...)
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	return &Inventory{stacks: inv.Stacks(), capacity: inv.capacity}
}
