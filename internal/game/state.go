// Package game provides the terminal shell around a session.
package game

import "github.com/samdwyer/deadzone/internal/session"

// State represents what the shell is showing.
type State int

const (
	// StateExplore is free command entry between events.
	StateExplore State = iota
	// StateCombat is an encounter waiting for an action.
	StateCombat
	// StateChoice is a numbered choice: loot, travel, crafting or the menu.
	StateChoice
	// StateOver means the story has ended and only quitting is left.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateChoice:
		return "choice"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// stateOf maps the pending decision to a shell state.
func stateOf(d session.Decision) State {
	switch d.Kind {
	case session.KindCommand:
		return StateExplore
	case session.KindCombatAction, session.KindCombatItem:
		return StateCombat
	case session.KindGameOver:
		return StateOver
	default:
		return StateChoice
	}
}
