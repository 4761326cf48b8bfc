package domain

// Fixed content of the self-test alert.
const (
	TestAlertID          = "storm-alertd-self-test"
	TestAlertHeadline    = "Test alert issued by storm-alertd"
	TestAlertDescription = "This is a test of the storm-alertd notification pipeline. " +
		"If you can read this, weather alerts for your location will be delivered the same way. " +
		"No action is required."
)

// TestAlert builds the canonical self-test alert with the given severity.
// This is the only place an EventTest alert is created.
func TestAlert(s Severity) Alert {
	return Alert{
		ID:          TestAlertID,
		Headline:    TestAlertHeadline,
		Description: TestAlertDescription,
		Severity:    s,
		Event:       EventTest,
		EventName:   EventTest.String(),
	}
}
