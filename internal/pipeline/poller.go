package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"unicode/utf8"

	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultBaseURL is the NWS API root.
const DefaultBaseURL = "https://api.weather.gov"

// Fetcher performs a GET request and returns the response status and body.
// Network-level failures are returned as errors; non-success statuses are not.
type Fetcher interface {
	Fetch(ctx context.Context, url, userAgent string) (status int, body []byte, err error)
}

// CycleResult summarizes one poll cycle.
type CycleResult struct {
	Fetched    int
	Novel      int
	Dispatched int
	Failed     int

	// Err is set when the cycle was skipped because the fetch or the parse
	// failed. It wraps domain.ErrTransport or domain.ErrMalformedPayload.
	Err error
}

// Poller drives the fetch-parse-filter-dispatch loop and owns the set of
// acknowledged alerts. It is not safe for concurrent use; cycles run one at
// a time on the goroutine that calls Run.
type Poller struct {
	fetcher    Fetcher
	dispatcher *Dispatcher
	acked      *domain.AcknowledgedSet
	settings   *config.Settings
	baseURL    string
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// NewPoller creates a Poller with an empty acknowledged set.
func NewPoller(f Fetcher, d *Dispatcher, settings *config.Settings, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		fetcher:    f,
		dispatcher: d,
		acked:      domain.NewAcknowledgedSet(),
		settings:   settings,
		baseURL:    DefaultBaseURL,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
}

// AlertsURL returns the active alerts URL for a point.
func AlertsURL(baseURL string, lat, lon float64) string {
	return fmt.Sprintf("%s/alerts/active?point=%s,%s",
		baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
}

// URL returns the active alerts URL for the configured point.
func (p *Poller) URL() string {
	return AlertsURL(p.baseURL, p.settings.Lat, p.settings.Lon)
}

// Acknowledged returns how many alert identities have been acknowledged.
func (p *Poller) Acknowledged() int {
	return p.acked.Len()
}

// CheckReadiness returns nil once a poll has fetched and parsed the feed
// successfully, or an error describing why the service is not yet ready.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful poll yet")
	}
	return nil
}

// Run polls immediately and then once per configured interval until the
// context is cancelled. Cycle failures are logged and never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.settings.Interval()
	p.logger.Info("poller started",
		"interval", interval.String(),
		"lat", p.settings.Lat,
		"lon", p.settings.Lon,
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		default:
		}

		p.RunCycle(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-p.clock.After(interval):
		}
	}
}

// RunCycle performs one fetch-parse-filter-dispatch pass. Each novel alert
// is recorded before it is dispatched, so a failed notification is never
// retried on a later cycle.
func (p *Poller) RunCycle(ctx context.Context) CycleResult {
	start := p.clock.Now()

	alerts, err := p.FetchAlerts(ctx)
	if err != nil {
		p.metrics.Polls.WithLabelValues(outcomeFor(err)).Inc()
		p.logger.Error("poll cycle skipped", "error", err)
		return CycleResult{Err: err}
	}
	p.ready.Store(true)

	res := CycleResult{Fetched: len(alerts)}
	for _, a := range alerts {
		if !p.acked.IsNovel(a) {
			p.logger.Debug("skipping acknowledged alert", "alert_id", a.ID)
			continue
		}
		p.acked.Record(a)
		res.Novel++

		if err := p.dispatcher.Dispatch(ctx, a); err != nil {
			res.Failed++
			p.logger.Error("dispatch failed", "alert_id", a.ID, "event", a.Label(), "error", err)
			continue
		}
		res.Dispatched++
	}

	p.metrics.Polls.WithLabelValues(observability.OutcomeSuccess).Inc()
	p.metrics.AlertsFetched.Add(float64(res.Fetched))
	p.metrics.AlertsNovel.Add(float64(res.Novel))
	p.metrics.AcknowledgedAlerts.Set(float64(p.acked.Len()))
	p.metrics.PollDuration.Observe(p.clock.Since(start).Seconds())

	p.logger.Info("poll cycle complete",
		"fetched", res.Fetched,
		"novel", res.Novel,
		"dispatched", res.Dispatched,
		"failed", res.Failed,
	)
	return res
}

// FetchAlerts fetches and parses the active alerts for the configured point
// without touching the acknowledged set.
func (p *Poller) FetchAlerts(ctx context.Context) ([]domain.Alert, error) {
	return FetchAlerts(ctx, p.fetcher, p.URL(), p.settings.UserAgent, p.logger)
}

// FetchAlerts retrieves url and parses it as an active alerts payload.
// Transport failures and non-2xx statuses wrap domain.ErrTransport; decode
// failures wrap domain.ErrMalformedPayload.
func FetchAlerts(ctx context.Context, f Fetcher, url, userAgent string, logger *slog.Logger) ([]domain.Alert, error) {
	logger.Info("updating weather service information", "url", url)

	status, body, err := f.Fetch(ctx, url, userAgent)
	if err != nil {
		if !errors.Is(err, domain.ErrTransport) {
			err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
		}
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, status, snippet(body))
	}

	logger.Debug("response received", "bytes", len(body), "body", string(body))

	return domain.ParseFeed(body)
}

func outcomeFor(err error) string {
	if errors.Is(err, domain.ErrMalformedPayload) {
		return observability.OutcomeMalformed
	}
	return observability.OutcomeTransport
}

// snippet trims a response body for inclusion in an error message, cutting
// on a rune boundary.
func snippet(body []byte) string {
	const maxLen = 200
	if len(body) <= maxLen {
		return string(body)
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
