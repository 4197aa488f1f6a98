// Package world provides the location graph the survivor travels through.
package world

// HazardKind names an environmental hazard.
type HazardKind string

const (
	HazardNone              HazardKind = "none"
	HazardToxicFog          HazardKind = "toxic_fog"
	HazardDarkness          HazardKind = "darkness"
	HazardCollapsedFloor    HazardKind = "collapsed_floor"
	HazardContaminatedWater HazardKind = "contaminated_water"
)

// Hazard is a location's environmental danger and the damage it deals per tick.
type Hazard struct {
	Kind   HazardKind
	Damage int
}

// Active returns true if the hazard can hurt the player.
func (h Hazard) Active() bool {
	return h.Kind != HazardNone && h.Kind != "" && h.Damage > 0
}

// String returns a short human description of the hazard.
func (h Hazard) String() string {
	switch h.Kind {
	case HazardToxicFog:
		return "toxic fog"
	case HazardDarkness:
		return "darkness"
	case HazardCollapsedFloor:
		return "collapsed floor"
	case HazardContaminatedWater:
		return "contaminated water"
	case HazardNone, "":
		return "none"
	default:
		return string(h.Kind)
	}
}
