package gamedata

// MaterialDef is one ingredient line of a recipe.
type MaterialDef struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// RecipeDef turns materials into one result item.
type RecipeDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Materials   []MaterialDef `json:"materials"`
	Result      string        `json:"result"`
}

// RecipesFile represents the structure of recipes.json.
type RecipesFile struct {
	Recipes []RecipeDef `json:"recipes"`
}

// LoadRecipes loads recipe definitions from the embedded recipes.json file.
func LoadRecipes() ([]RecipeDef, error) {
	file, err := Load[RecipesFile]("recipes.json")
	if err != nil {
		return nil, err
	}
	return file.Recipes, nil
}
