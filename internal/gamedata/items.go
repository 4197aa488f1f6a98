package gamedata

// Category classifies items.
type Category string

const (
	CategoryWeapon     Category = "WEAPON"
	CategoryMedical    Category = "MEDICAL"
	CategoryFood       Category = "FOOD"
	CategoryMaterial   Category = "MATERIAL"
	CategoryTool       Category = "TOOL"
	CategoryKeyItem    Category = "KEY_ITEM"
	CategoryConsumable Category = "CONSUMABLE"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeapon, CategoryMedical, CategoryFood, CategoryMaterial,
		CategoryTool, CategoryKeyItem, CategoryConsumable:
		return true
	default:
		return false
	}
}

// ItemDef defines an item loaded from JSON. Space is per unit.
type ItemDef struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Description   string   `json:"description"`
	Space         int      `json:"space"`
	Consumable    bool     `json:"consumable"`
	Usable        bool     `json:"usable"`
	HealthRestore int      `json:"healthRestore"`
	HungerRestore int      `json:"hungerRestore"`
	InfectionCure int      `json:"infectionCure"`
	DamageBoost   int      `json:"damageBoost"`
	AreaDamage    int      `json:"areaDamage"`
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
