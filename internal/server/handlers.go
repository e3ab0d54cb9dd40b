package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/dipr"
	"github.com/jddeal/go-dipr/gis"
	"github.com/jddeal/go-dipr/render"
)

const defaultRenderSize = 800

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stations.All())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.status.Statuses(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := s.scan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary(p))
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	p, ok := s.scan(w, r)
	if !ok {
		return
	}
	skipZeros := boolParam(r, "skipZeros", s.opts.SkipZeros)

	w.Header().Set("Content-Type", "application/geo+json")
	if err := gis.WriteGeoJSON(w, p, skipZeros); err != nil {
		logrus.Warnf("writing geojson for %s: %v", p.StationCode, err)
		return
	}
	s.metrics.BinsProjected.Add(float64(p.BinCount(skipZeros)))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	size := defaultRenderSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > s.opts.MaxRenderSize {
			writeError(w, http.StatusBadRequest, fmt.Errorf("size must be between 1 and %d", s.opts.MaxRenderSize))
			return
		}
		size = n
	}

	p, ok := s.scan(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, p, size); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		logrus.Warnf("encoding png for %s: %v", p.StationCode, err)
		return
	}
	s.metrics.BinsProjected.Add(float64(p.BinCount(true)))
}

type rateResponse struct {
	Station   string  `json:"station"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Covered   bool    `json:"covered"`
	Rate      float64 `json:"precipRate"`
	Intensity string  `json:"intensity"`
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err := errors.Join(errLat, errLon); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("lat and lon are required: %w", err))
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, errors.New("lat or lon out of range"))
		return
	}

	p, ok := s.scan(w, r)
	if !ok {
		return
	}

	rate, covered := p.RateAt(lon, lat)
	writeJSON(w, http.StatusOK, rateResponse{
		Station:   p.StationCode,
		Lat:       lat,
		Lon:       lon,
		Covered:   covered,
		Rate:      float64(rate),
		Intensity: dipr.Classify(rate).String(),
	})
}
