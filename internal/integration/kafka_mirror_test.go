//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/storm-alertd/internal/adapter/kafka"
	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/observability"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-weather-alerts"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	kc, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("storm-alertd-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = kc.Terminate(context.Background()) })

	brokers, err := kc.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type fixtureFetcher struct {
	body []byte
}

func (f fixtureFetcher) Fetch(context.Context, string, string) (int, []byte, error) {
	return 200, f.body, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	shown []domain.Notification
}

func (r *recordingNotifier) Show(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n)
	return nil
}

// mirroredAlert is the subset of the published record the test checks.
type mirroredAlert struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Severity  string `json:"severity"`
	Urgency   string `json:"urgency"`
	TimeoutMS int64  `json:"timeout_ms"`
}

// TestPollerMirrorsDispatchedAlerts runs two poll cycles over the fixture
// feed and checks that each alert reaches Kafka exactly once.
func TestPollerMirrorsDispatchedAlerts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	payload, err := os.ReadFile(filepath.Join("..", "domain", "testdata", "alerts_active.json"))
	require.NoError(t, err)

	env := &config.Env{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC))
	writer := kafka.NewWriter(env, clock, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	desktop := &recordingNotifier{}
	settings := config.DefaultSettings()
	metrics := observability.NewMetricsForTesting()
	dispatcher := pipeline.NewDispatcher(pipeline.FanOut{desktop, pipeline.NewMirror(writer, discardLogger(), metrics)}, &settings, "", discardLogger(), metrics)
	poller := pipeline.NewPoller(fixtureFetcher{body: payload}, dispatcher, &settings, clock, discardLogger(), metrics)

	first := poller.RunCycle(ctx)
	require.NoError(t, first.Err)
	require.Equal(t, 3, first.Dispatched)

	second := poller.RunCycle(ctx)
	require.Zero(t, second.Dispatched)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MaxWait:   500 * time.Millisecond,
	})
	t.Cleanup(func() { _ = reader.Close() })

	got := map[string]mirroredAlert{}
	headers := map[string]map[string]string{}
	for range 3 {
		msg, err := reader.ReadMessage(ctx)
		require.NoError(t, err, "read mirrored alert")

		var rec mirroredAlert
		require.NoError(t, json.Unmarshal(msg.Value, &rec))
		assert.Equal(t, rec.ID, string(msg.Key))
		got[rec.ID] = rec

		h := make(map[string]string, len(msg.Headers))
		for _, kv := range msg.Headers {
			h[kv.Key] = string(kv.Value)
		}
		headers[rec.ID] = h
	}

	require.Len(t, got, 3)
	wind := got["urn:oid:2.49.0.1.840.0.6b1f0e2c4a1d8e7f.001.1"]
	assert.Equal(t, "High Wind Warning", wind.Event)
	assert.Equal(t, "Severe", wind.Severity)
	assert.Equal(t, "critical", wind.Urgency)
	assert.Equal(t, int64(0), wind.TimeoutMS)
	assert.Equal(t, "Severe", headers[wind.ID]["severity"])

	// Nothing beyond the first cycle's three records.
	readCtx, readCancel := context.WithTimeout(ctx, 2*time.Second)
	defer readCancel()
	_, err = reader.ReadMessage(readCtx)
	require.Error(t, err)

	assert.Len(t, desktop.shown, 3)
}
