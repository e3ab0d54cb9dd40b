// Package server is the diprserv HTTP API: scan summaries, GeoJSON, rendered images, point
// queries and a websocket stream of new scans.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/fetch"
	"github.com/jddeal/go-dipr/gis"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/metrics"
	"github.com/jddeal/go-dipr/stations"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusSource reports which radars are online.
type StatusSource interface {
	Statuses(ctx context.Context) ([]fetch.Status, error)
}

// Options are the tunables of the server.
type Options struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	WatchInterval time.Duration
	MaxRenderSize int
	SkipZeros     bool
}

// OptionsFromConfig maps the http section of the config file onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Addr:          cfg.HTTP.Addr,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		IdleTimeout:   cfg.HTTP.IdleTimeout,
		WatchInterval: cfg.HTTP.WatchInterval,
		MaxRenderSize: cfg.HTTP.MaxRenderSize,
		SkipZeros:     cfg.SkipZeros,
	}
}

// Deps are the collaborators of the server. Only Fetcher is required.
type Deps struct {
	Fetcher  fetch.Fetcher
	Decoder  *dipr.Decoder       // nil means bzip2
	Stations stations.Lookup     // nil means stations.Default
	Status   StatusSource        // nil disables /status
	Metrics  *metrics.Metrics    // nil means unregistered metrics
	Gatherer prometheus.Gatherer // nil means the default registry
	Clock    clockwork.Clock     // nil means the real clock
}

// Server serves the DPR API.
type Server struct {
	httpServer *http.Server
	opts       Options

	fetcher  fetch.Fetcher
	decoder  *dipr.Decoder
	stations stations.Lookup
	status   StatusSource
	metrics  *metrics.Metrics
	clock    clockwork.Clock
	upgrader websocket.Upgrader
}

// New wires the routes and returns a server that has not started listening.
func New(opts Options, deps Deps) *Server {
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = time.Minute
	}
	if opts.MaxRenderSize <= 0 {
		opts.MaxRenderSize = 2048
	}

	s := &Server{
		opts:     opts,
		fetcher:  deps.Fetcher,
		decoder:  deps.Decoder,
		stations: deps.Stations,
		status:   deps.Status,
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	if s.decoder == nil {
		s.decoder = dipr.NewDecoder(nil)
	}
	if s.stations == nil {
		s.stations = stations.Default
	}
	if s.metrics == nil {
		s.metrics, _ = metrics.NewForTesting()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/stations", s.handleStations).Methods(http.MethodGet)
	if s.status != nil {
		r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	}
	r.HandleFunc("/dpr/{station}", s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc("/dpr/{station}/geojson", s.handleGeoJSON).Methods(http.MethodGet)
	r.HandleFunc("/dpr/{station}/render.png", s.handleRender).Methods(http.MethodGet)
	r.HandleFunc("/dpr/{station}/rate", s.handleRate).Methods(http.MethodGet)
	r.HandleFunc("/dpr/{station}/watch", s.handleWatch).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	logrus.Infof("http server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the deadline of ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// load fetches and decodes the newest scan of the station named in the route.
func (s *Server) load(ctx context.Context, code string) (*dipr.PrecipRate, error) {
	data, err := s.fetcher.Latest(ctx, code)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	p, err := s.decoder.Decode(data)
	s.metrics.ObserveDecode(started, err)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCapture(p.StationCode, p.CaptureTime)
	return p, nil
}

// station resolves the {station} route variable, writing a 404 when it is unknown.
func (s *Server) station(w http.ResponseWriter, r *http.Request) (stations.Station, bool) {
	st, err := s.stations.Station(mux.Vars(r)["station"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return stations.Station{}, false
	}
	return st, true
}

// scan resolves the station and loads its newest scan, writing the error response on failure.
func (s *Server) scan(w http.ResponseWriter, r *http.Request) (*dipr.PrecipRate, bool) {
	st, ok := s.station(w, r)
	if !ok {
		return nil, false
	}
	p, err := s.load(r.Context(), st.Code)
	if err != nil {
		logrus.Warnf("loading %s: %v", st.Code, err)
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return p, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, fetch.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func summary(p *dipr.PrecipRate) map[string]any {
	m := map[string]any(gis.Metadata(p))
	m["radials"] = len(p.Radials)
	m["bins"] = p.BinCount(true)
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func boolParam(r *http.Request, name string, def bool) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}
