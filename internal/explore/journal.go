package explore

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/deadzone/internal/gamedata"
)

// Journal records the clues found so far, in the order they were found.
type Journal struct {
	clues     map[int]gamedata.ClueDef
	collected []int
	has       mapset.Set[int]
}

// NewJournal creates an empty journal over the full clue table.
func NewJournal(clues []gamedata.ClueDef) *Journal {
	j := &Journal{
		clues: make(map[int]gamedata.ClueDef, len(clues)),
		has:   mapset.New[int](),
	}
	for _, c := range clues {
		j.clues[c.ID] = c
	}
	return j
}

// Collect files a clue. It returns false for unknown or already collected ids.
func (j *Journal) Collect(id int) (gamedata.ClueDef, bool) {
	c, ok := j.clues[id]
	if !ok || j.has.Has(id) {
		return gamedata.ClueDef{}, false
	}
	j.has.Put(id)
	j.collected = append(j.collected, id)
	return c, true
}

// Has returns true if the clue has been collected.
func (j *Journal) Has(id int) bool { return j.has.Has(id) }

// Count returns the number of collected clues.
func (j *Journal) Count() int { return len(j.collected) }

// Total returns the number of clues in the game.
func (j *Journal) Total() int { return len(j.clues) }

// Complete returns true once every clue in a non-empty table is collected.
func (j *Journal) Complete() bool {
	return j.Total() > 0 && j.Count() == j.Total()
}

// Completion returns the collected share as a percentage.
func (j *Journal) Completion() float64 {
	if j.Total() == 0 {
		return 0
	}
	return float64(j.Count()) / float64(j.Total()) * 100
}

// Entries returns the collected clues in the order found.
func (j *Journal) Entries() []gamedata.ClueDef {
	out := make([]gamedata.ClueDef, 0, len(j.collected))
	for _, id := range j.collected {
		out = append(out, j.clues[id])
	}
	return out
}

// CollectedIDs returns the collected ids in the order found.
func (j *Journal) CollectedIDs() []int {
	return append([]int(nil), j.collected...)
}

// Missing returns the ids not yet collected, ascending.
func (j *Journal) Missing() []int {
	var out []int
	for id := range j.clues {
		if !j.has.Has(id) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
