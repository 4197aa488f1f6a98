package world

// Chapter is the story chapter a location belongs to.
type Chapter struct {
	Number int
	Title  string
}

// Boss is a scripted boss fought as the location's last encounter.
type Boss struct {
	Variant string
	Name    string
	Final   bool
}

// LootSpot is an item stack waiting in one direction of a location.
type LootSpot struct {
	ID        string
	ItemID    string
	Quantity  int
	Direction string
}

// ClueSpot is a clue waiting in one direction of a location.
type ClueSpot struct {
	ClueID    int
	Direction string
}

// Location is a node of the atlas.
type Location struct {
	ID          string
	Name        string
	Type        string
	Description string
	Atmosphere  string
	Chapter     Chapter
	Hazard      Hazard
	Connections []string
	Encounters  int
	Boss        *Boss
	Loot        []LootSpot
	Clues       []ClueSpot
}

// HasBoss returns true if the location ends with a scripted boss.
func (l *Location) HasBoss() bool {
	return l.Boss != nil
}

// IsFinal returns true if defeating this location's boss ends the story.
func (l *Location) IsFinal() bool {
	return l.Boss != nil && l.Boss.Final
}

// ConnectedTo returns true if id is reachable in one hop.
func (l *Location) ConnectedTo(id string) bool {
	for _, c := range l.Connections {
		if c == id {
			return true
		}
	}
	return false
}
