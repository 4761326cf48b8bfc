package domain

import "time"

// Alert is one reported hazard occurrence from the active alerts feed.
// ID is the only field used to decide whether two alerts are the same
// occurrence.
type Alert struct {
	ID          string
	Headline    string
	Description string
	Severity    Severity
	Event       Event

	// EventName is the event string exactly as the feed sent it. It is kept
	// so unknown events can still be shown by name.
	EventName string

	AreaDesc string
	Sent     time.Time
	Expires  time.Time
}

// Label is the event name used in console output. Unknown events carry
// the upstream name alongside the fallback label.
func (a Alert) Label() string {
	if a.Event == EventUnknown && a.EventName != "" {
		return a.Event.String() + " (" + a.EventName + ")"
	}
	return a.Event.String()
}

// Notification is a rendered desktop notification request together with
// the alert it was built from.
type Notification struct {
	Alert   Alert
	Summary string
	Body    string
	Icon    string
	AppName string
	Urgency Urgency
	Timeout time.Duration
}
