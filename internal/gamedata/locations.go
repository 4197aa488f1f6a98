package gamedata

// ChapterDef names the story chapter a location belongs to.
type ChapterDef struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// HazardDef is a location's environmental hazard and its per-tick damage.
type HazardDef struct {
	Type   string `json:"type"`
	Damage int    `json:"damage"`
}

// BossDef marks a scripted boss fought as a location's last encounter.
type BossDef struct {
	Variant string `json:"variant"`
	Name    string `json:"name"`
	Final   bool   `json:"final"` // Defeating it ends the story
}

// LootDef places an item stack in one direction of a location.
type LootDef struct {
	ID        string `json:"id"` // Unique across the game; recorded once picked up
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"`
}

// ClueSpotDef places a clue in one direction of a location.
type ClueSpotDef struct {
	ID        int    `json:"id"`
	Direction string `json:"direction"`
}

// LocationDef defines a location loaded from JSON.
type LocationDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Atmosphere  string        `json:"atmosphere"`
	Chapter     ChapterDef    `json:"chapter"`
	Hazard      HazardDef     `json:"hazard"`
	Connections []string      `json:"connections"`
	Encounters  int           `json:"encounters"`
	Boss        *BossDef      `json:"boss"`
	Loot        []LootDef     `json:"loot"`
	Clues       []ClueSpotDef `json:"clues"`
}

// LocationsFile represents the structure of locations.json.
type LocationsFile struct {
	Start     string        `json:"start"`
	Locations []LocationDef `json:"locations"`
}

// LoadLocations loads the location file from the embedded locations.json.
func LoadLocations() (LocationsFile, error) {
	return Load[LocationsFile]("locations.json")
}
