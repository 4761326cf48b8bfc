package nws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query().Get("point")
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, slog.Default())
	status, body, err := c.Fetch(context.Background(), srv.URL+"/alerts/active?point=36.97,-122.03", "storm-alertd-test (ops@example.com)")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
	assert.Equal(t, "storm-alertd-test (ops@example.com)", gotUA)
	assert.Equal(t, "application/geo+json", gotAccept)
	assert.Equal(t, "36.97,-122.03", gotQuery)
}

func TestFetch_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"title":"Service Unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, slog.Default())
	status, body, err := c.Fetch(context.Background(), srv.URL, "ua")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "Service Unavailable")
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(5*time.Second, slog.Default())
	_, _, err := c.Fetch(context.Background(), url, "ua")
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(50*time.Millisecond, slog.Default())
	_, _, err := c.Fetch(context.Background(), srv.URL, "ua")
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestFetch_InvalidURL(t *testing.T) {
	c := NewClient(time.Second, slog.Default())
	_, _, err := c.Fetch(context.Background(), "://bad", "ua")
	require.ErrorIs(t, err, domain.ErrTransport)
}
