package director

// Event is a random narrative event.
type Event int

const (
	EventNone Event = iota
	EventSupplyDrop
	EventSafeZone
	EventMedicalCache
	EventHordeIncoming
	EventEnvironmentalHazard
	EventEliteZombie
	EventWanderingTrader
	EventZombiePatrol
	EventMysteriousSound
	EventAbandonedCamp
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventSupplyDrop:
		return "Supply Drop"
	case EventSafeZone:
		return "Safe Zone"
	case EventMedicalCache:
		return "Medical Cache"
	case EventHordeIncoming:
		return "Horde Incoming"
	case EventEnvironmentalHazard:
		return "Environmental Hazard"
	case EventEliteZombie:
		return "Elite Zombie"
	case EventWanderingTrader:
		return "Wandering Trader"
	case EventZombiePatrol:
		return "Zombie Patrol"
	case EventMysteriousSound:
		return "Mysterious Sound"
	case EventAbandonedCamp:
		return "Abandoned Camp"
	default:
		return "None"
	}
}

// Hostile returns true if the event forces a fight.
func (e Event) Hostile() bool {
	switch e {
	case EventHordeIncoming, EventZombiePatrol, EventEliteZombie:
		return true
	default:
		return false
	}
}

var (
	criticalEvents = []Event{EventSupplyDrop, EventSafeZone, EventMedicalCache}
	tenseEvents    = []Event{EventHordeIncoming, EventEnvironmentalHazard, EventEliteZombie}
	mixedEvents    = []Event{
		EventSupplyDrop,
		EventWanderingTrader,
		EventZombiePatrol,
		EventMysteriousSound,
		EventAbandonedCamp,
	}
)
