package gamedata

// ClueDef is a piece of lore the player can collect.
type ClueDef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Location string `json:"location"`
	Effect   string `json:"effect"`
}

// CluesFile represents the structure of clues.json.
type CluesFile struct {
	Clues []ClueDef `json:"clues"`
}

// LoadClues loads clue definitions from the embedded clues.json file.
func LoadClues() ([]ClueDef, error) {
	file, err := Load[CluesFile]("clues.json")
	if err != nil {
		return nil, err
	}
	return file.Clues, nil
}
