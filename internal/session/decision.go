package session

// Kind is the sort of input the session is waiting for.
type Kind int

const (
	KindCommand Kind = iota
	KindLootOffer
	KindCombatAction
	KindCombatItem
	KindTravelChoice
	KindCraftChoice
	KindMenu
	KindGameOver
)

// String returns the decision name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindLootOffer:
		return "loot_offer"
	case KindCombatAction:
		return "combat_action"
	case KindCombatItem:
		return "combat_item"
	case KindTravelChoice:
		return "travel_choice"
	case KindCraftChoice:
		return "craft_choice"
	case KindMenu:
		return "menu"
	case KindGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Decision is what the session needs from the player next.
// Options are numbered from 1 when the decision is a choice.
type Decision struct {
	Kind    Kind
	Prompt  string
	Options []string
}

// Ending is how a story finished.
type Ending int

const (
	EndingNone Ending = iota
	EndingBad
	EndingNormal
	EndingPerfectionist
	EndingTrue
)

// String returns the ending name.
func (e Ending) String() string {
	switch e {
	case EndingBad:
		return "bad"
	case EndingNormal:
		return "normal"
	case EndingPerfectionist:
		return "perfectionist"
	case EndingTrue:
		return "true"
	default:
		return "none"
	}
}

// Epilogue returns the closing text of an ending.
func (e Ending) Epilogue() string {
	switch e {
	case EndingBad:
		return "You fall among the infected. The outbreak goes on without you."
	case EndingNormal:
		return "The source of the outbreak is destroyed, but its origin stays a mystery."
	case EndingPerfectionist:
		return "You escape with every piece of the truth, leaving the horror behind to be dealt with another day."
	case EndingTrue:
		return "The horror is destroyed and the truth behind the outbreak is in your hands."
	default:
		return ""
	}
}

// Report is what one submitted input did.
type Report struct {
	Messages []string
	Ending   Ending
	Quit     bool
}

func (r *Report) add(msgs ...string) {
	r.Messages = append(r.Messages, msgs...)
}
