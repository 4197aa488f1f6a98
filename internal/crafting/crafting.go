// Package crafting turns carried materials into items.
package crafting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/ledger"
	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// Crafting errors.
var (
	ErrUnknownRecipe    = errors.New("unknown recipe")
	ErrMissingMaterials = errors.New("missing materials")
)

// Shortfall is a material the survivor does not carry enough of.
type Shortfall struct {
	Item string
	Have int
	Need int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s %d/%d", s.Item, s.Have, s.Need)
}

// Result describes a finished craft.
type Result struct {
	Recipe  gamedata.RecipeDef
	Item    *gamedata.ItemDef
	Potency float64
}

// Crafter holds the recipe table.
type Crafter struct {
	recipes []gamedata.RecipeDef
	items   *gamedata.ItemRegistry
	log     *logrus.Entry
}

// New creates a crafter over the given recipes.
func New(recipes []gamedata.RecipeDef, items *gamedata.ItemRegistry) *Crafter {
	return &Crafter{recipes: recipes, items: items, log: logger.For("crafting")}
}

// Recipes returns the recipe table in display order.
func (c *Crafter) Recipes() []gamedata.RecipeDef {
	return append([]gamedata.RecipeDef(nil), c.recipes...)
}

// Recipe finds a recipe by id, name or 1-based position.
func (c *Crafter) Recipe(key string) (gamedata.RecipeDef, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(c.recipes) {
			return gamedata.RecipeDef{}, fmt.Errorf("%w: #%d", ErrUnknownRecipe, n)
		}
		return c.recipes[n-1], nil
	}
	for _, r := range c.recipes {
		if r.ID == key || strings.EqualFold(r.Name, key) {
			return r, nil
		}
	}
	return gamedata.RecipeDef{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, key)
}

// matches reports whether a stack counts as the named material.
func matches(s ledger.Stack, material string) bool {
	return s.ItemID == material || strings.EqualFold(s.Name, material)
}

// plan decides which stacks pay for a recipe. It returns the shortfalls
// when the inventory cannot cover it.
func plan(r gamedata.RecipeDef, inv *ledger.Inventory) (map[string]int, []Shortfall) {
	take := make(map[string]int)
	var short []Shortfall
	for _, m := range r.Materials {
		need := m.Quantity
		have := 0
		for _, s := range inv.Stacks() {
			if !matches(s, m.Item) {
				continue
			}
			have += s.Quantity
			if need > 0 {
				n := min(need, s.Quantity-take[s.ItemID])
				if n > 0 {
					take[s.ItemID] += n
					need -= n
				}
			}
		}
		if need > 0 {
			short = append(short, Shortfall{Item: m.Item, Have: have, Need: m.Quantity})
		}
	}
	return take, short
}

// Missing lists what the survivor lacks for a recipe.
func (c *Crafter) Missing(r gamedata.RecipeDef, inv *ledger.Inventory) []Shortfall {
	_, short := plan(r, inv)
	return short
}

// Craft consumes the materials of a recipe and adds its result. The
// crafting skill raises the result's potency.
func (c *Crafter) Craft(ctx context.Context, key string, l *ledger.Ledger) (Result, error) {
	tracer := telemetry.Tracer("crafting")
	_, span := tracer.Start(ctx, "crafting.craft")
	defer span.End()

	r, err := c.Recipe(key)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(attribute.String("crafting.recipe", r.ID))

	item := c.items.GetByID(r.Result)
	if item == nil {
		return Result{}, fmt.Errorf("recipe %s: %w: %s", r.ID, ledger.ErrUnknownItem, r.Result)
	}

	take, short := plan(r, l.Inventory())
	if len(short) > 0 {
		parts := make([]string, len(short))
		for i, s := range short {
			parts[i] = s.String()
		}
		return Result{}, fmt.Errorf("%w for %s: %s", ErrMissingMaterials, r.Name, strings.Join(parts, ", "))
	}

	potency := 1 + l.Bonus(gamedata.BonusCrafting)
	if err := l.Exchange(take, item.ID, 1, potency); err != nil {
		return Result{}, err
	}

	span.SetAttributes(attribute.Float64("crafting.potency", potency))
	c.log.WithFields(logrus.Fields{"recipe": r.ID, "result": item.ID, "potency": potency}).Info("crafted")
	return Result{Recipe: r, Item: item, Potency: potency}, nil
}
