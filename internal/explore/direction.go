package explore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned for a direction word nobody recognises.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the four ways to search a location, in clockwise order.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction clockwise from Up.
var Directions = []Direction{Up, Right, Down, Left}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Next returns the neighbouring direction clockwise.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

var directionWords = map[string]Direction{
	"up": Up, "north": Up, "n": Up, "u": Up,
	"right": Right, "east": Right, "e": Right, "r": Right,
	"down": Down, "south": Down, "s": Down, "d": Down,
	"left": Left, "west": Left, "w": Left, "l": Left,
}

// ParseDirection accepts relative words, compass points and their initials.
func ParseDirection(word string) (Direction, error) {
	d, ok := directionWords[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, word)
	}
	return d, nil
}
