package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/weather/internal/core/events/bus"
	"github.com/zeusync/weather/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Message is the JSON frame sent for each bus event.
type Message struct {
	Type     string    `json:"type"`
	Source   string    `json:"source"`
	Time     time.Time `json:"time"`
	Priority int       `json:"priority"`
	Data     any       `json:"data"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	s.clients.Add(1)
	defer s.clients.Done()
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	queue := make(chan Message, s.config.ClientBuffer)
	subs := make([]bus.Subscription, 0, len(s.config.EventTypes))
	for _, et := range s.config.EventTypes {
		sub, err := s.bus.Subscribe(et, func(e bus.Event) error {
			select {
			case queue <- Message{Type: e.Type(), Source: e.Source(), Time: e.Timestamp(), Priority: e.Priority(), Data: e.Data()}:
			default:
				s.dropped.Add(1)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("feed subscribe failed", log.Error(err))
			return
		}
		subs = append(subs, sub)
	}
	defer func() {
		for _, sub := range subs {
			_ = s.bus.Unsubscribe(sub)
		}
	}()

	s.logger.Debug("feed client connected", log.String("remote", remote))
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		// Clients never send; reading only surfaces the close frame.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			s.logger.Debug("feed client disconnected", log.String("remote", remote))
			return
		case <-s.shutdown:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			return
		case msg := <-queue:
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				s.logger.Debug("feed write failed", log.String("remote", remote), log.Error(err))
				return
			}
		}
	}
}
