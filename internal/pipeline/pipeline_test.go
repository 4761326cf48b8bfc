package pipeline_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/observability"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type fakeResponse struct {
	status int
	body   []byte
	err    error
}

// fakeFetcher replays responses in order and repeats the last one.
type fakeFetcher struct {
	mu         sync.Mutex
	responses  []fakeResponse
	urls       []string
	userAgents []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url, userAgent string) (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	f.userAgents = append(f.userAgents, userAgent)
	r := f.responses[min(len(f.urls), len(f.responses))-1]
	return r.status, r.body, r.err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

type recordingNotifier struct {
	mu    sync.Mutex
	shown []domain.Notification
	fail  map[string]error
}

func (r *recordingNotifier) Show(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
	return r.fail[n.Alert.ID]
}

func (r *recordingNotifier) Shown() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.shown...)
}

// --- helpers ---

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	return &s
}

type testFeature struct {
	ID          string
	Event       string
	Severity    string
	Headline    string
	Description string
}

func feedPayload(t *testing.T, features ...testFeature) []byte {
	t.Helper()
	type props struct {
		ID          string `json:"id"`
		Event       string `json:"event"`
		Severity    string `json:"severity"`
		Headline    string `json:"headline"`
		Description string `json:"description"`
	}
	type feature struct {
		Type       string `json:"type"`
		Properties props  `json:"properties"`
	}
	doc := struct {
		Type     string    `json:"type"`
		Features []feature `json:"features"`
	}{Type: "FeatureCollection", Features: []feature{}}
	for _, f := range features {
		doc.Features = append(doc.Features, feature{
			Type:       "Feature",
			Properties: props(f),
		})
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func ok(body []byte) fakeResponse {
	return fakeResponse{status: 200, body: body}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
