// Package command turns typed lines into commands for the current mode.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/samdwyer/deadzone/internal/explore"
)

// Parse errors.
var (
	ErrEmpty           = errors.New("empty command")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

// Verb is the canonical name of a command.
type Verb string

// Exploration verbs.
const (
	Go        Verb = "go"
	Travel    Verb = "travel"
	Craft     Verb = "craft"
	Rest      Verb = "rest"
	Status    Verb = "status"
	Inventory Verb = "inventory"
	Clues     Verb = "clues"
	Skills    Verb = "skills"
	Learn     Verb = "learn"
	Use       Verb = "use"
	Equip     Verb = "equip"
	Unequip   Verb = "unequip"
	Drop      Verb = "drop"
	Save      Verb = "save"
	Load      Verb = "load"
	Saves     Verb = "saves"
	Menu      Verb = "menu"
	Help      Verb = "help"
	Quit      Verb = "quit"
)

// Combat verbs.
const (
	Attack Verb = "attack"
	Dodge  Verb = "dodge"
	Item   Verb = "item"
	Flee   Verb = "flee"
)

// Mode selects the command table.
type Mode int

const (
	ModeExplore Mode = iota
	ModeCombat
)

// Def describes one command.
type Def struct {
	Verb    Verb
	Aliases []string
	Usage   string
	Summary string
	MinArgs int
}

var exploreDefs = []Def{
	{Verb: Go, Aliases: []string{"move", "walk"}, Usage: "go <left|right|up|down>", Summary: "search in a direction", MinArgs: 1},
	{Verb: Travel, Aliases: []string{"t"}, Usage: "travel [n]", Summary: "move on to a connected location"},
	{Verb: Craft, Aliases: []string{"c"}, Usage: "craft [n]", Summary: "craft an item from materials"},
	{Verb: Rest, Usage: "rest", Summary: "recover some health"},
	{Verb: Status, Aliases: []string{"stats", "st"}, Usage: "status", Summary: "show your condition"},
	{Verb: Inventory, Aliases: []string{"inv", "i", "bag"}, Usage: "inventory", Summary: "list carried items"},
	{Verb: Clues, Aliases: []string{"journal", "j"}, Usage: "clues", Summary: "read the clue journal"},
	{Verb: Skills, Aliases: []string{"tree"}, Usage: "skills", Summary: "show the skill tree"},
	{Verb: Learn, Usage: "learn <skill>", Summary: "spend skill points", MinArgs: 1},
	{Verb: Use, Aliases: []string{"eat", "drink"}, Usage: "use <item>", Summary: "use a carried item", MinArgs: 1},
	{Verb: Equip, Aliases: []string{"wield"}, Usage: "equip <item>", Summary: "wield a weapon", MinArgs: 1},
	{Verb: Unequip, Usage: "unequip", Summary: "put your weapon away"},
	{Verb: Drop, Usage: "drop <item>", Summary: "discard an item", MinArgs: 1},
	{Verb: Save, Usage: "save [slot]", Summary: "save the game"},
	{Verb: Load, Usage: "load [slot]", Summary: "load a saved game"},
	{Verb: Saves, Usage: "saves", Summary: "list save slots"},
	{Verb: Menu, Usage: "menu", Summary: "open the menu"},
	{Verb: Help, Aliases: []string{"h", "?"}, Usage: "help", Summary: "list commands"},
	{Verb: Quit, Aliases: []string{"exit", "q"}, Usage: "quit", Summary: "leave the game"},
}

var combatDefs = []Def{
	{Verb: Attack, Aliases: []string{"1", "a", "hit"}, Usage: "attack", Summary: "strike the enemy"},
	{Verb: Dodge, Aliases: []string{"2", "d"}, Usage: "dodge", Summary: "try to avoid the next blow"},
	{Verb: Item, Aliases: []string{"3", "use", "i"}, Usage: "item [name]", Summary: "use an item"},
	{Verb: Flee, Aliases: []string{"4", "run", "f"}, Usage: "flee", Summary: "try to escape"},
	{Verb: Help, Aliases: []string{"h", "?"}, Usage: "help", Summary: "list commands"},
}

// Defs returns the command table of a mode.
func Defs(m Mode) []Def {
	if m == ModeCombat {
		return combatDefs
	}
	return exploreDefs
}

// Command is a parsed line.
type Command struct {
	Verb Verb
	Args []string
}

// Arg returns the arguments joined by spaces.
func (c Command) Arg() string {
	return strings.Join(c.Args, " ")
}

// UnknownError reports an unrecognised verb and the closest known one.
type UnknownError struct {
	Word       string
	Suggestion string
}

func (e *UnknownError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown command %q", e.Word)
	}
	return fmt.Sprintf("unknown command %q, did you mean %q?", e.Word, e.Suggestion)
}

func (e *UnknownError) Unwrap() error { return ErrUnknownCommand }

// Parse reads one line in the given mode. In exploration a bare direction
// word is shorthand for go.
func Parse(line string, m Mode) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}
	word, args := fields[0], fields[1:]

	if m == ModeExplore && len(args) == 0 {
		if _, err := explore.ParseDirection(word); err == nil {
			return Command{Verb: Go, Args: []string{word}}, nil
		}
	}

	def, ok := lookup(word, m)
	if !ok {
		return Command{}, &UnknownError{Word: word, Suggestion: Suggest(word, m)}
	}
	if len(args) < def.MinArgs {
		return Command{}, fmt.Errorf("%w: usage: %s", ErrMissingArgument, def.Usage)
	}
	return Command{Verb: def.Verb, Args: args}, nil
}

func lookup(word string, m Mode) (Def, bool) {
	for _, d := range Defs(m) {
		if string(d.Verb) == word {
			return d, true
		}
		for _, a := range d.Aliases {
			if a == word {
				return d, true
			}
		}
	}
	return Def{}, false
}

// Suggest returns the known verb closest to word, or "" when nothing is close.
func Suggest(word string, m Mode) string {
	best, bestDist := "", -1
	for _, d := range Defs(m) {
		for _, cand := range append([]string{string(d.Verb)}, d.Aliases...) {
			if len(cand) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(word, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = string(d.Verb), dist
			}
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
