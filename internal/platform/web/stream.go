package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crowdsnake/internal/core"
	"github.com/vovakirdan/crowdsnake/internal/driver"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

const (
	writeWait      = 5 * time.Second
	maxVoteMessage = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the JSON envelope pushed to websocket clients.
type Message struct {
	Type       string `json:"type"` // frame, ended or shutdown
	Session    string `json:"session"`
	Tick       uint64 `json:"tick"`
	Frame      string `json:"frame,omitempty"`
	Length     int    `json:"length"`
	FruitEaten int    `json:"fruit_eaten"`
	Direction  string `json:"direction,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// frameMessage converts the driver's cached frame for a new client.
func frameMessage(f driver.Frame) Message {
	return Message{
		Type:       "frame",
		Session:    string(f.SessionID),
		Tick:       f.Snapshot.Tick,
		Frame:      f.Text,
		Length:     f.Snapshot.Length,
		FruitEaten: f.Snapshot.FruitEaten,
		Direction:  f.Snapshot.Dir.String(),
	}
}

// eventMessage converts a hub event. ok is false for events clients ignore.
func eventMessage(evt multiplayer.Event) (msg Message, ok bool) {
	switch e := evt.(type) {
	case multiplayer.FrameEvent:
		return Message{
			Type:       "frame",
			Session:    string(e.SessionID),
			Tick:       e.Tick,
			Frame:      e.Frame,
			Length:     e.Length,
			FruitEaten: e.FruitEaten,
			Direction:  e.Direction,
		}, true
	case multiplayer.SessionEndedEvent:
		return Message{
			Type:       "ended",
			Session:    string(e.SessionID),
			Tick:       e.Ticks,
			Length:     e.Length,
			FruitEaten: e.FruitEaten,
			Reason:     e.Reason.String(),
		}, true
	case multiplayer.ShutdownEvent:
		msg := Message{Type: "shutdown"}
		if e.Err != nil {
			msg.Reason = e.Err.Error()
		}
		return msg, true
	}
	return Message{}, false
}

// handleStream upgrades to a websocket. The server pushes frames; every text
// message from the client is read as a direction word and queued as a vote.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	viewer, cancel := s.hub.Subscribe(s.config.EventBuffer)
	defer cancel()

	s.logger.Info("web viewer connected", "viewer", viewer.ID(), "remote", r.RemoteAddr)
	defer s.logger.Info("web viewer disconnected", "viewer", viewer.ID(), "remote", r.RemoteAddr)

	go s.readVotes(conn, cancel)

	if f := s.frames.Frame(); f.Text != "" {
		if err := writeMessage(conn, frameMessage(f)); err != nil {
			return
		}
	}

	for {
		select {
		case <-viewer.Done():
			return
		case evt := <-viewer.Events():
			msg, ok := eventMessage(evt)
			if !ok {
				continue
			}
			if err := writeMessage(conn, msg); err != nil {
				s.logger.Debug("websocket write failed", "viewer", viewer.ID(), "err", err)
				return
			}
			if msg.Type == "shutdown" {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
					time.Now().Add(writeWait))
				return
			}
		}
	}
}

// readVotes runs until the client goes away, then calls done.
func (s *Server) readVotes(conn *websocket.Conn, done func()) {
	defer done()
	conn.SetReadLimit(maxVoteMessage)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		dir, err := core.ParseDirection(string(payload))
		if err != nil {
			s.logger.Debug("ignoring websocket vote", "err", err)
			continue
		}
		if err := s.voter.Submit(dir); err != nil {
			s.logger.Warn("vote rejected", "err", err)
		}
	}
}

func writeMessage(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
