// Command validate checks saved NWS active alert payloads against the
// daemon's classification tables. It reports event names and severities the
// daemon would fall back on, missing identities, and duplicate identities,
// so new NWS vocabulary is noticed before it shows up as "Unknown Event".
//
// Usage:
//
//	curl -s -H 'User-Agent: storm-alertd (you@example.com)' \
//	  'https://api.weather.gov/alerts/active?area=CA' > ca.json
//	go run ./cmd/validate ca.json [more.json ...]
//
//	go run ./cmd/validate -live -lat 36.97 -lon -122.03
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/storm-alertd/internal/adapter/nws"
	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// payload is one named feed document.
type payload struct {
	name string
	data []byte
}

// rawFeed keeps the feed's own strings so unrecognized values can be reported.
type rawFeed struct {
	Features []struct {
		Properties struct {
			ID       string `json:"id"`
			Event    string `json:"event"`
			Severity string `json:"severity"`
		} `json:"properties"`
	} `json:"features"`
}

func main() {
	live := flag.Bool("live", false, "fetch the active alerts for -lat/-lon instead of reading files")
	defaults := config.DefaultSettings()
	lat := flag.Float64("lat", defaults.Lat, "latitude for -live")
	lon := flag.Float64("lon", defaults.Lon, "longitude for -live")
	flag.Parse()

	var payloads []payload
	switch {
	case *live:
		data, err := fetchLive(*lat, *lon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: fetch: %v\n", err)
			os.Exit(1)
		}
		payloads = append(payloads, payload{name: pipeline.AlertsURL(pipeline.DefaultBaseURL, *lat, *lon), data: data})
	case flag.NArg() > 0:
		for _, path := range flag.Args() {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
				os.Exit(1)
			}
			payloads = append(payloads, payload{name: path, data: data})
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, payloads))
}

func fetchLive(lat, lon float64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := nws.NewClient(30*time.Second, slog.New(slog.DiscardHandler))
	status, body, err := client.Fetch(ctx, pipeline.AlertsURL(pipeline.DefaultBaseURL, lat, lon), config.DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("status %d", status)
	}
	return body, nil
}

func run(out io.Writer, payloads []payload) int {
	fmt.Fprintln(out, "=== Alert Feed Validation ===")
	fmt.Fprintln(out)

	decode := &phase{name: "Payload decoding"}
	events := &phase{name: "Event vocabulary"}
	severities := &phase{name: "Severity vocabulary"}
	identity := &phase{name: "Alert identity"}

	unknownEvents := map[string]int{}
	unknownSeverities := map[string]int{}
	total := 0

	for _, p := range payloads {
		var raw rawFeed
		if err := json.Unmarshal(p.data, &raw); err != nil {
			decode.errorf("%s: %v", p.name, err)
			continue
		}

		missingID := false
		seen := make(map[string]int)
		for i, f := range raw.Features {
			props := f.Properties
			if strings.TrimSpace(props.ID) == "" {
				identity.errorf("%s: feature %d has no id", p.name, i)
				missingID = true
			} else {
				seen[props.ID]++
			}
			if domain.ParseEvent(props.Event) == domain.EventUnknown {
				unknownEvents[props.Event]++
			}
			if _, ok := domain.LookupSeverity(props.Severity); !ok {
				unknownSeverities[props.Severity]++
			}
		}
		for _, id := range sortedKeys(seen) {
			if n := seen[id]; n > 1 {
				fmt.Fprintf(out, "  note: %s: id %s appears %d times\n", p.name, id, n)
			}
		}

		// The daemon drops the whole payload on a missing id, which the
		// identity phase has already reported.
		alerts, err := domain.ParseFeed(p.data)
		switch {
		case err == nil:
			total += len(alerts)
		case !missingID:
			decode.errorf("%s: %v", p.name, err)
		}
	}

	for _, name := range sortedKeys(unknownEvents) {
		events.errorf("%q not in event table (%d alerts)", name, unknownEvents[name])
	}
	for _, name := range sortedKeys(unknownSeverities) {
		severities.errorf("%q not a known severity (%d alerts)", name, unknownSeverities[name])
	}

	phases := []*phase{decode, events, severities, identity}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Alerts: %d across %d payloads\n", total, len(payloads))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
