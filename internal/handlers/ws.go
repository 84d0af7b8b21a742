package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/session"
)

type wsReply struct {
	Outcome string          `json:"outcome,omitempty"`
	Error   string          `json:"error,omitempty"`
	Session *GameSessionDTO `json:"session"`
}

func (g GameHandler) execute(s *session.Session, c Command) (string, error) {
	switch c.Kind {
	case CommandForfeit:
		return "", s.Forfeit()
	case CommandMove:
		outcome, err := s.Apply(c.Move, c.X, c.Y)
		return outcomeText(c.Move, outcome), err
	default:
		return "", nil
	}
}

// ConnectWS upgrades the request and plays the session over text frames.
// Each frame holds newline separated commands; the reply carries the
// session after the last one.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("upgrade failed")
		return
	}
	defer c.Close()

	log := g.log.WithField("session_id", s.ID)
	log.Debug("websocket connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read failed")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		var reply wsReply
		text := strings.TrimSpace(string(message))
		for _, line := range byPiece(text, "\n") {
			cmd, err := ParseCommand(line)
			if err == nil {
				reply.Outcome, err = g.execute(s, cmd)
			}
			if err != nil {
				reply.Error = err.Error()
				log.WithFields(logrus.Fields{
					"command": line,
					"error":   err,
				}).Debug("command rejected")
				break
			}
		}
		g.record(r.Context(), s)
		reply.Session = NewGameSessionDTO(s.View())

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("write failed")
			break
		}
	}
}
