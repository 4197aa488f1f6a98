package gamedata

import (
	"fmt"
	"strings"
)

// Catalog bundles every content table the engines read.
type Catalog struct {
	Enemies   *EnemyRegistry
	Items     *ItemRegistry
	Locations LocationsFile
	Clues     []ClueDef
	Recipes   []RecipeDef
	Skills    []SkillDef
}

// LoadCatalog loads all embedded content and checks cross references.
func LoadCatalog() (*Catalog, error) {
	enemies, err := LoadEnemyRegistry()
	if err != nil {
		return nil, err
	}
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	locations, err := LoadLocations()
	if err != nil {
		return nil, err
	}
	clues, err := LoadClues()
	if err != nil {
		return nil, err
	}
	recipes, err := LoadRecipes()
	if err != nil {
		return nil, err
	}
	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Enemies:   enemies,
		Items:     items,
		Locations: locations,
		Clues:     clues,
		Recipes:   recipes,
		Skills:    skills,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Clue returns the clue with the given id, or nil.
func (c *Catalog) Clue(id int) *ClueDef {
	for i := range c.Clues {
		if c.Clues[i].ID == id {
			return &c.Clues[i]
		}
	}
	return nil
}

// ClueIDs returns every clue id in content order.
func (c *Catalog) ClueIDs() []int {
	ids := make([]int, len(c.Clues))
	for i, clue := range c.Clues {
		ids[i] = clue.ID
	}
	return ids
}

// Validate checks that every id referenced by one table exists in another.
func (c *Catalog) Validate() error {
	if c.Enemies.GetByID("common") == nil {
		return fmt.Errorf("enemies: missing common variant")
	}
	for _, item := range c.Items.All() {
		if !item.Category.Valid() {
			return fmt.Errorf("item %s: unknown category %q", item.ID, item.Category)
		}
	}

	known := make(map[string]bool, len(c.Locations.Locations))
	for _, loc := range c.Locations.Locations {
		known[loc.ID] = true
	}
	if !known[c.Locations.Start] {
		return fmt.Errorf("locations: start %q is not defined", c.Locations.Start)
	}
	for _, loc := range c.Locations.Locations {
		for _, next := range loc.Connections {
			if !known[next] {
				return fmt.Errorf("location %s: unknown connection %q", loc.ID, next)
			}
		}
		for _, loot := range loc.Loot {
			if c.Items.GetByID(loot.Item) == nil {
				return fmt.Errorf("location %s: loot %s references unknown item %q", loc.ID, loot.ID, loot.Item)
			}
		}
		for _, spot := range loc.Clues {
			if c.Clue(spot.ID) == nil {
				return fmt.Errorf("location %s: unknown clue %d", loc.ID, spot.ID)
			}
		}
		if loc.Boss != nil && c.Enemies.GetByID(loc.Boss.Variant) == nil {
			return fmt.Errorf("location %s: unknown boss variant %q", loc.ID, loc.Boss.Variant)
		}
	}

	for _, r := range c.Recipes {
		if c.Items.GetByID(r.Result) == nil {
			return fmt.Errorf("recipe %s: unknown result %q", r.ID, r.Result)
		}
		for _, m := range r.Materials {
			if c.Items.Find(m.Item) == nil {
				return fmt.Errorf("recipe %s: unknown material %q", r.ID, m.Item)
			}
		}
	}

	skills := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		skills[s.ID] = true
	}
	for _, s := range c.Skills {
		if s.Parent != "" && !skills[s.Parent] {
			return fmt.Errorf("skill %s: unknown parent %q", s.ID, s.Parent)
		}
	}
	return nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
