package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// featureCollection is the GeoJSON envelope returned by /alerts/active.
type featureCollection struct {
	Features *[]feature `json:"features"`
}

type feature struct {
	Properties *alertProperties `json:"properties"`
}

// alertProperties holds the CAP fields we read from each feature. Severity
// and event are decoded as plain strings so that vocabulary the API adds
// later never fails decoding.
type alertProperties struct {
	ID          string `json:"id"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Sent        string `json:"sent"`
	Expires     string `json:"expires"`
}

// ParseFeed decodes an active alerts payload into alerts, in feed order.
// It returns an error wrapping ErrMalformedPayload when the payload is not
// a feature collection or a feature lacks an identity. Unrecognized
// severity and event values decode to their Unknown members.
func ParseFeed(payload []byte) ([]Alert, error) {
	var fc featureCollection
	if err := json.Unmarshal(payload, &fc); err != nil {
		return nil, fmt.Errorf("%w: decode feature collection: %v", ErrMalformedPayload, err)
	}
	if fc.Features == nil {
		return nil, fmt.Errorf("%w: missing features", ErrMalformedPayload)
	}

	alerts := make([]Alert, 0, len(*fc.Features))
	for i, f := range *fc.Features {
		if f.Properties == nil {
			return nil, fmt.Errorf("%w: feature %d has no properties", ErrMalformedPayload, i)
		}
		p := f.Properties
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%w: feature %d has no id", ErrMalformedPayload, i)
		}
		alerts = append(alerts, Alert{
			ID:          p.ID,
			Headline:    p.Headline,
			Description: p.Description,
			Severity:    ParseSeverity(p.Severity),
			Event:       ParseEvent(p.Event),
			EventName:   p.Event,
			AreaDesc:    p.AreaDesc,
			Sent:        parseTimeOrZero(p.Sent),
			Expires:     parseTimeOrZero(p.Expires),
		})
	}
	return alerts, nil
}

// parseTimeOrZero parses an RFC 3339 timestamp, returning the zero time on
// failure.
func parseTimeOrZero(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
