package domain

// AcknowledgedSet holds the identity of every alert already acted on since
// the daemon started. It only grows and is not safe for concurrent use; the
// poll loop that owns it is single-threaded.
type AcknowledgedSet struct {
	ids map[string]struct{}
}

// NewAcknowledgedSet returns an empty set.
func NewAcknowledgedSet() *AcknowledgedSet {
	return &AcknowledgedSet{ids: make(map[string]struct{})}
}

// IsNovel reports whether the alert's identity has not been recorded yet.
func (s *AcknowledgedSet) IsNovel(a Alert) bool {
	_, seen := s.ids[a.ID]
	return !seen
}

// Record marks the alert's identity as acknowledged. Recording an identity
// twice is a no-op.
func (s *AcknowledgedSet) Record(a Alert) {
	s.ids[a.ID] = struct{}{}
}

// Len returns the number of acknowledged identities.
func (s *AcknowledgedSet) Len() int {
	return len(s.ids)
}
