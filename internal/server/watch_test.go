package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jddeal/go-dipr/internal/metrics"
)

func TestWatch_PushesOnlyNewScans(t *testing.T) {
	first := sampleBytes(1_589_385_600)
	second := sampleBytes(1_589_385_900)
	f := &countingFetcher{fn: func(call int32, _ string) ([]byte, error) {
		if call <= 2 {
			return first, nil
		}
		return second, nil
	}}

	clock := clockwork.NewFakeClock()
	m, reg := metrics.NewForTesting()
	srv := New(Options{WatchInterval: time.Minute}, Deps{Fetcher: f, Metrics: m, Gatherer: reg, Clock: clock})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/dpr/KGYX/watch", nil)
	require.NoError(t, err)
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(5 * time.Millisecond):
				clock.Advance(time.Minute)
			}
		}
	}()

	var msg map[string]any
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "2020-05-13T16:00:00Z", msg["captureTime"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WatchClients))

	// the repeated first scan is not pushed again
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "2020-05-13T16:05:00Z", msg["captureTime"])
	assert.GreaterOrEqual(t, f.calls.Load(), int32(3))
}

func TestWatch_UnknownStation(t *testing.T) {
	srv, _ := newTestServer(staticFetcher(nil))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dpr/ZZZZ/watch", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWatch_RequiresUpgrade(t *testing.T) {
	srv, _ := newTestServer(staticFetcher(sampleBytes(1_589_385_600)))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dpr/KGYX/watch", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
