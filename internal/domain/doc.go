// Package domain models National Weather Service (NWS) active alerts and the
// rules for presenting them as desktop notifications.
//
// # Data Source
//
// Alerts come from the NWS public API, https://api.weather.gov, which serves
// the alerts in effect for a point at:
//
//	/alerts/active?point=<lat>,<lon>
//
// The response is a GeoJSON FeatureCollection. Each feature's "properties"
// object carries the Common Alerting Protocol (CAP) fields we use:
//
//	id           globally unique alert URN, stable while the alert is active
//	headline     one-line summary (may be null)
//	description  full text of the product
//	severity     "Extreme" | "Severe" | "Moderate" | "Minor" | "Unknown"
//	event        product name, e.g. "Tornado Warning", "Flood Watch"
//	areaDesc     affected zones, e.g. "Santa Cruz Mountains"
//	sent/expires RFC 3339 timestamps
//
// # Lenient Decoding
//
// The NWS event vocabulary grows over time (e.g. "Extreme Heat Warning"
// replacing "Excessive Heat Warning"). Unrecognized severity and event
// strings decode to SeverityUnknown and EventUnknown instead of failing, and
// the raw event string is kept on the alert for display. Only a payload
// that is not a feature collection at all, or a feature without an id, is
// rejected with ErrMalformedPayload.
//
// # Presentation
//
// Severity drives urgency and timeout:
//
//	Extreme, Severe  -> critical, never expires
//	Moderate         -> normal, never expires
//	Unknown          -> normal, never expires
//	Minor            -> low, expires after 120s
//
// Event drives the icon, grouped by hazard family (winter, fire, fog, wind,
// thunderstorm, tornado, marine, flood, heat, tropical). The outlook product,
// unknown events and the self-test all use the generic severe-alert icon.
//
// # Identity
//
// An alert's id is the only deduplication key. Two alerts with the same id
// are the same occurrence regardless of any other field, see
// [AcknowledgedSet].
package domain
