package explore

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidState is returned when a persisted exploration state does not fit the content.
var ErrInvalidState = errors.New("invalid exploration state")

// State is the persisted form of an Explorer.
type State struct {
	Location       string   `yaml:"location"`
	Steps          int      `yaml:"steps"`
	Quota          int      `yaml:"quota"`
	ReadyToTravel  bool     `yaml:"ready_to_travel"`
	TotalMoves     int      `yaml:"total_moves"`
	PickedUp       []string `yaml:"picked_up"`
	Visited        []string `yaml:"visited"`
	BossesDefeated []string `yaml:"bosses_defeated"`
	Clues          []int    `yaml:"clues"`
}

// State captures the explorer for persistence.
func (e *Explorer) State() State {
	return State{
		Location:       e.current.Location.ID,
		Steps:          e.current.Steps,
		Quota:          e.current.Quota,
		ReadyToTravel:  e.current.ReadyToTravel,
		TotalMoves:     e.totalMoves,
		PickedUp:       sortedKeys(e.pickedUp),
		Visited:        sortedKeys(e.visited),
		BossesDefeated: sortedKeys(e.bossesDefeated),
		Clues:          e.Journal.CollectedIDs(),
	}
}

func sortedKeys(s mapset.Set[string]) []string {
	out := make([]string, 0, s.Size())
	s.Each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}

// Resume rebuilds an explorer from a persisted state. deps.Journal must be
// empty; the state's clues are collected into it.
func Resume(deps Deps, st State) (*Explorer, error) {
	loc, err := deps.Atlas.Get(st.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	switch {
	case st.Steps < 0 || st.TotalMoves < 0:
		return nil, fmt.Errorf("%w: negative counters", ErrInvalidState)
	case st.Quota < 0 || st.Quota > loc.Encounters:
		return nil, fmt.Errorf("%w: quota %d of %d", ErrInvalidState, st.Quota, loc.Encounters)
	}

	lootIDs := mapset.New[string]()
	for _, l := range deps.Atlas.All() {
		for _, spot := range l.Loot {
			lootIDs.Put(spot.ID)
		}
	}

	e := &Explorer{
		Deps:           deps,
		log:            newLog(),
		totalMoves:     st.TotalMoves,
		pickedUp:       mapset.New[string](),
		visited:        mapset.New[string](),
		bossesDefeated: mapset.New[string](),
	}
	for _, id := range st.PickedUp {
		if !lootIDs.Has(id) {
			return nil, fmt.Errorf("%w: unknown loot %q", ErrInvalidState, id)
		}
		e.pickedUp.Put(id)
	}
	for _, id := range slices.Concat(st.Visited, st.BossesDefeated) {
		if _, err := deps.Atlas.Get(id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	}
	for _, id := range st.Visited {
		e.visited.Put(id)
	}
	for _, id := range st.BossesDefeated {
		e.bossesDefeated.Put(id)
	}
	for _, id := range st.Clues {
		if _, ok := deps.Journal.Collect(id); !ok {
			return nil, fmt.Errorf("%w: clue %d unknown or repeated", ErrInvalidState, id)
		}
	}

	if err := e.Enter(loc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	e.current.Steps = st.Steps
	e.current.Quota = st.Quota
	e.current.ReadyToTravel = st.ReadyToTravel
	return e, nil
}
