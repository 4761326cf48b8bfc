package domain

// Event is the NWS event category of an alert. The zero value is
// EventUnknown, used for any event name outside the known vocabulary.
type Event int

const (
	EventUnknown Event = iota
	EventHazardousWeatherOutlook

	// Winter weather / cold weather
	EventWinterStormWatch
	EventBlizzardWarning
	EventWinterStormWarning
	EventIceStormWarning
	EventWinterWeatherAdvisory
	EventFreezeWatch
	EventFreezeWarning
	EventFrostAdvisory
	EventColdWeatherAdvisory
	EventExtremeColdWarning

	// Fire weather
	EventFireWeatherWatch
	EventRedFlagWarning

	// Fog / wind / severe weather
	EventDenseFogAdvisory
	EventHighWindWatch
	EventHighWindWarning
	EventWindAdvisory
	EventSevereThunderstormWatch
	EventSevereThunderstormWarning
	EventTornadoWatch
	EventTornadoWarning
	EventExtremeWindWarning

	// Marine
	EventSmallCraftAdvisory
	EventGaleWarning
	EventStormWarning
	EventHurricaneForceWindWarning
	EventSpecialMarineWarning

	// Flooding
	EventCoastalFloodWatch
	EventCoastalFloodWarning
	EventCoastalFloodAdvisory
	EventFloodWatch
	EventFlashFloodWarning
	EventFloodWarning
	EventRiverFloodWatch
	EventRiverFloodWarning

	// Excessive heat
	EventExcessiveHeatWatch
	EventExcessiveHeatWarning
	EventHeatAdvisory

	// Tropical
	EventTropicalStormWatch
	EventTropicalStormWarning
	EventHurricaneWatch
	EventHurricaneWarning

	// EventTest is synthetic and only ever produced by TestAlert.
	EventTest
)

// FeedEvents lists every event the feed parser can produce from a known
// NWS event name, in declaration order.
var FeedEvents = func() []Event {
	events := make([]Event, 0, int(EventTest)-1)
	for e := EventHazardousWeatherOutlook; e < EventTest; e++ {
		events = append(events, e)
	}
	return events
}()

// AllEvents lists every Event value including the fallback and test members.
var AllEvents = append(append([]Event{EventUnknown}, FeedEvents...), EventTest)

var eventsByName = func() map[string]Event {
	m := make(map[string]Event, len(FeedEvents))
	for _, e := range FeedEvents {
		m[e.String()] = e
	}
	return m
}()

// ParseEvent maps an NWS event name to an Event. Names are matched exactly,
// the way the API spells them. Anything else, including "Test", is
// EventUnknown.
func ParseEvent(name string) Event {
	if e, ok := eventsByName[name]; ok {
		return e
	}
	return EventUnknown
}

func (e Event) String() string {
	return DisplayName(e)
}

// DisplayName returns the human-readable label for an event.
func DisplayName(e Event) string {
	switch e {
	case EventHazardousWeatherOutlook:
		return "Hazardous Weather Outlook"
	case EventWinterStormWatch:
		return "Winter Storm Watch"
	case EventBlizzardWarning:
		return "Blizzard Warning"
	case EventWinterStormWarning:
		return "Winter Storm Warning"
	case EventIceStormWarning:
		return "Ice Storm Warning"
	case EventWinterWeatherAdvisory:
		return "Winter Weather Advisory"
	case EventFreezeWatch:
		return "Freeze Watch"
	case EventFreezeWarning:
		return "Freeze Warning"
	case EventFrostAdvisory:
		return "Frost Advisory"
	case EventColdWeatherAdvisory:
		return "Cold Weather Advisory"
	case EventExtremeColdWarning:
		return "Extreme Cold Warning"
	case EventFireWeatherWatch:
		return "Fire Weather Watch"
	case EventRedFlagWarning:
		return "Red Flag Warning"
	case EventDenseFogAdvisory:
		return "Dense Fog Advisory"
	case EventHighWindWatch:
		return "High Wind Watch"
	case EventHighWindWarning:
		return "High Wind Warning"
	case EventWindAdvisory:
		return "Wind Advisory"
	case EventSevereThunderstormWatch:
		return "Severe Thunderstorm Watch"
	case EventSevereThunderstormWarning:
		return "Severe Thunderstorm Warning"
	case EventTornadoWatch:
		return "Tornado Watch"
	case EventTornadoWarning:
		return "Tornado Warning"
	case EventExtremeWindWarning:
		return "Extreme Wind Warning"
	case EventSmallCraftAdvisory:
		return "Small Craft Advisory"
	case EventGaleWarning:
		return "Gale Warning"
	case EventStormWarning:
		return "Storm Warning"
	case EventHurricaneForceWindWarning:
		return "Hurricane Force Wind Warning"
	case EventSpecialMarineWarning:
		return "Special Marine Warning"
	case EventCoastalFloodWatch:
		return "Coastal Flood Watch"
	case EventCoastalFloodWarning:
		return "Coastal Flood Warning"
	case EventCoastalFloodAdvisory:
		return "Coastal Flood Advisory"
	case EventFloodWatch:
		return "Flood Watch"
	case EventFlashFloodWarning:
		return "Flash Flood Warning"
	case EventFloodWarning:
		return "Flood Warning"
	case EventRiverFloodWatch:
		return "River Flood Watch"
	case EventRiverFloodWarning:
		return "River Flood Warning"
	case EventExcessiveHeatWatch:
		return "Excessive Heat Watch"
	case EventExcessiveHeatWarning:
		return "Excessive Heat Warning"
	case EventHeatAdvisory:
		return "Heat Advisory"
	case EventTropicalStormWatch:
		return "Tropical Storm Watch"
	case EventTropicalStormWarning:
		return "Tropical Storm Warning"
	case EventHurricaneWatch:
		return "Hurricane Watch"
	case EventHurricaneWarning:
		return "Hurricane Warning"
	case EventTest:
		return "Test Alert"
	case EventUnknown:
		return "Unknown Event"
	}
	return "Unknown Event"
}
