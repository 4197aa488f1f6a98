package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

// ErrUnknownLocation is returned when an id names no location.
var ErrUnknownLocation = errors.New("unknown location")

// Atlas is the immutable location graph built from content.
type Atlas struct {
	locations map[string]*Location
	order     []string
	start     string
}

// NewAtlas builds the graph from the locations file.
func NewAtlas(ctx context.Context, file gamedata.LocationsFile) (*Atlas, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.load")
	defer span.End()

	startTime := time.Now()

	a := &Atlas{
		locations: make(map[string]*Location, len(file.Locations)),
		order:     make([]string, 0, len(file.Locations)),
		start:     file.Start,
	}

	for _, def := range file.Locations {
		if _, dup := a.locations[def.ID]; dup {
			return nil, fmt.Errorf("duplicate location %q", def.ID)
		}
		a.locations[def.ID] = fromDef(def)
		a.order = append(a.order, def.ID)
	}

	for _, id := range a.order {
		for _, next := range a.locations[id].Connections {
			if _, ok := a.locations[next]; !ok {
				return nil, fmt.Errorf("location %s: %w %q", id, ErrUnknownLocation, next)
			}
		}
	}
	if _, ok := a.locations[a.start]; !ok {
		return nil, fmt.Errorf("start: %w %q", ErrUnknownLocation, a.start)
	}

	span.SetAttributes(
		attribute.Int("world.locations", len(a.order)),
		attribute.String("world.start", a.start),
		attribute.Int64("world.load_us", time.Since(startTime).Microseconds()),
	)

	return a, nil
}

func fromDef(def gamedata.LocationDef) *Location {
	loc := &Location{
		ID:          def.ID,
		Name:        def.Name,
		Type:        def.Type,
		Description: def.Description,
		Atmosphere:  def.Atmosphere,
		Chapter:     Chapter{Number: def.Chapter.Number, Title: def.Chapter.Title},
		Hazard:      Hazard{Kind: HazardKind(def.Hazard.Type), Damage: def.Hazard.Damage},
		Connections: append([]string(nil), def.Connections...),
		Encounters:  def.Encounters,
	}
	if def.Boss != nil {
		loc.Boss = &Boss{Variant: def.Boss.Variant, Name: def.Boss.Name, Final: def.Boss.Final}
	}
	for _, l := range def.Loot {
		loc.Loot = append(loc.Loot, LootSpot{ID: l.ID, ItemID: l.Item, Quantity: l.Quantity, Direction: l.Direction})
	}
	for _, c := range def.Clues {
		loc.Clues = append(loc.Clues, ClueSpot{ClueID: c.ID, Direction: c.Direction})
	}
	return loc
}

// Start returns the id of the starting location.
func (a *Atlas) Start() string {
	return a.start
}

// Get returns the location with the given id.
func (a *Atlas) Get(id string) (*Location, error) {
	loc, ok := a.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLocation, id)
	}
	return loc, nil
}

// Neighbors returns the locations connected to id, in content order.
func (a *Atlas) Neighbors(id string) []*Location {
	loc, ok := a.locations[id]
	if !ok {
		return nil
	}
	out := make([]*Location, 0, len(loc.Connections))
	for _, next := range loc.Connections {
		out = append(out, a.locations[next])
	}
	return out
}

// All returns every location in content order.
func (a *Atlas) All() []*Location {
	out := make([]*Location, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.locations[id])
	}
	return out
}

// Len returns the number of locations.
func (a *Atlas) Len() int {
	return len(a.order)
}
