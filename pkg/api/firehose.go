package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coursexpert/coursexpert/pkg/search"
)

const (
	firehoseWriteWait  = 10 * time.Second
	firehosePingPeriod = 30 * time.Second
	firehoseInitLimit  = 30
)

var firehoseUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is CORS-open; the WebSocket endpoint matches.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// firehoseInit is the first frame sent on every connection: a snapshot of
// the current catalog so clients render immediately, before any live event
// arrives.
type firehoseInit struct {
	Type     string              `json:"type"`
	Snapshot string              `json:"snapshot"`
	Courses  ListCoursesResponse `json:"courses"`
}

// HandleFirehoseWS upgrades the connection and streams catalog events. After
// the init snapshot, every course ingested by the warehouse and every
// collection snapshot change is pushed as it happens. Without an injected
// hub the connection stays open but only ever sees the init frame and pings.
func (s *Server) HandleFirehoseWS(w http.ResponseWriter, r *http.Request) {
	conn, err := firehoseUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("firehose upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debugf("firehose close: %v", err)
		}
	}()

	params := search.ParseParams(r.URL.Query())
	if limitStr := r.URL.Query().Get("limit"); limitStr == "" {
		params.Limit = firehoseInitLimit
	} else if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
		params.Limit = parsed
	}

	results := s.service.Search(params)
	init := firehoseInit{
		Type:     "init",
		Snapshot: s.collection.Snapshot(),
		Courses:  listResponse("", results),
	}

	if err := conn.SetWriteDeadline(time.Now().Add(firehoseWriteWait)); err != nil {
		return
	}
	if err := conn.WriteJSON(init); err != nil {
		s.logger.Debugf("firehose init write failed: %v", err)
		return
	}

	// Drain the read side so close frames and pongs are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(firehosePingPeriod)
	defer ticker.Stop()

	if s.hub == nil {
		// No live source; keep the connection alive with pings only.
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(firehoseWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}

	id, eventCh := s.hub.Register()
	defer s.hub.Unregister(id)

	for {
		select {
		case <-done:
			return
		case event, ok := <-eventCh:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(firehoseWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				s.logger.Debugf("firehose event write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(firehoseWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
