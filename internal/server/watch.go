package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const watchWriteTimeout = 10 * time.Second

// handleWatch upgrades to a websocket and pushes the scan summary every time the station
// publishes a scan with a new capture time. The first summary is sent right away.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.station(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		logrus.Debugf("watch %s: upgrade: %v", st.Code, err)
		return
	}
	defer conn.Close()

	s.metrics.WatchClients.Inc()
	defer s.metrics.WatchClients.Dec()
	logrus.Debugf("watch %s: client %s connected", st.Code, r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go discardReads(conn, cancel)

	ticker := s.clock.NewTicker(s.opts.WatchInterval)
	defer ticker.Stop()

	var last time.Time
	for {
		p, err := s.load(ctx, st.Code)
		switch {
		case err != nil:
			logrus.Warnf("watch %s: %v", st.Code, err)
		case !p.CaptureTime.Equal(last):
			last = p.CaptureTime
			conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
			if err := conn.WriteJSON(summary(p)); err != nil {
				logrus.Debugf("watch %s: write: %v", st.Code, err)
				return
			}
		}

		select {
		case <-ctx.Done():
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		case <-ticker.Chan():
		}
	}
}

// discardReads consumes client frames so control messages are processed, and cancels the
// watch once the client goes away.
func discardReads(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Debugf("watch: unexpected close: %v", err)
			}
			return
		}
	}
}
