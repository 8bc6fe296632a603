package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	statusPushInterval = 15 * time.Second
	statusWriteTimeout = 5 * time.Second
)

var statusUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

func (s *Server) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := statusUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveStatusConnection(conn)
}

// serveStatusConnection pushes the status payload immediately and then on a
// fixed interval until the client goes away.
func (s *Server) serveStatusConnection(conn *websocket.Conn) {
	defer conn.Close()

	if err := writeStatusPayload(conn, s.buildStatusPayload()); err != nil {
		return
	}

	ticker := time.NewTicker(statusPushInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := writeStatusPayload(conn, s.buildStatusPayload()); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeStatusPayload(conn *websocket.Conn, payload statusPayload) error {
	_ = conn.SetWriteDeadline(time.Now().Add(statusWriteTimeout))
	return conn.WriteJSON(payload)
}
