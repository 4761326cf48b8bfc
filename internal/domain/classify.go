package domain

import "time"

// Urgency is the notification priority tier. Values match the byte the
// freedesktop notification spec expects in the "urgency" hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	}
	return "normal"
}

// NeverExpire is the timeout for notifications that stay up until the user
// dismisses them.
const NeverExpire time.Duration = 0

// minorTimeout is how long a Minor alert stays on screen.
const minorTimeout = 120 * time.Second

// Icon file names from the symbolic status icon set.
const (
	IconSnow        = "weather-snow-symbolic.svg"
	IconWindy       = "weather-windy-symbolic.svg"
	IconFog         = "weather-fog-symbolic.svg"
	IconStorm       = "weather-storm-symbolic.svg"
	IconTornado     = "weather-tornado-symbolic.svg"
	IconShowers     = "weather-showers-symbolic.svg"
	IconClear       = "weather-clear-symbolic.svg"
	IconSevereAlert = "weather-severe-alert-symbolic.svg"
)

// UrgencyFor maps a severity to a notification urgency.
func UrgencyFor(s Severity) Urgency {
	switch s {
	case SeverityExtreme, SeveritySevere:
		return UrgencyCritical
	case SeverityModerate, SeverityUnknown:
		return UrgencyNormal
	case SeverityMinor:
		return UrgencyLow
	}
	return UrgencyNormal
}

// TimeoutFor maps a severity to how long its notification stays on screen.
// Only Minor alerts expire on their own.
func TimeoutFor(s Severity) time.Duration {
	switch s {
	case SeverityExtreme, SeveritySevere, SeverityModerate, SeverityUnknown:
		return NeverExpire
	case SeverityMinor:
		return minorTimeout
	}
	return NeverExpire
}

// IconFor picks the status icon for an event, grouped by hazard family.
func IconFor(e Event) string {
	switch e {
	// Winter weather / cold weather
	case EventWinterStormWatch, EventWinterStormWarning, EventBlizzardWarning, EventIceStormWarning,
		EventWinterWeatherAdvisory, EventFreezeWatch, EventFreezeWarning, EventFrostAdvisory,
		EventExtremeColdWarning, EventColdWeatherAdvisory:
		return IconSnow

	// Fire weather
	case EventFireWeatherWatch, EventRedFlagWarning:
		return IconWindy

	// Fog / wind / severe weather
	case EventDenseFogAdvisory:
		return IconFog
	case EventHighWindWatch, EventHighWindWarning, EventWindAdvisory:
		return IconWindy
	case EventSevereThunderstormWatch, EventSevereThunderstormWarning:
		return IconStorm
	case EventTornadoWatch, EventTornadoWarning, EventExtremeWindWarning:
		return IconTornado

	// Marine
	case EventSmallCraftAdvisory, EventGaleWarning, EventStormWarning, EventHurricaneForceWindWarning:
		return IconWindy
	case EventSpecialMarineWarning:
		return IconStorm

	// Flooding
	case EventCoastalFloodWatch, EventCoastalFloodWarning, EventCoastalFloodAdvisory,
		EventFloodWatch, EventFlashFloodWarning, EventFloodWarning,
		EventRiverFloodWatch, EventRiverFloodWarning:
		return IconShowers

	// Excessive heat
	case EventExcessiveHeatWatch, EventExcessiveHeatWarning, EventHeatAdvisory:
		return IconClear

	// Tropical
	case EventTropicalStormWatch, EventTropicalStormWarning, EventHurricaneWatch, EventHurricaneWarning:
		return IconStorm

	case EventUnknown, EventHazardousWeatherOutlook, EventTest:
		return IconSevereAlert
	}
	return IconSevereAlert
}
