package config

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin in development. Otherwise origins are
// taken from the comma separated WS_ALLOWED_ORIGINS, falling back to the
// same-host check of the upgrader.
func NewWebSocket(development bool) (*WebSocket, error) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}

	allowed := strings.FieldsFunc(os.Getenv("WS_ALLOWED_ORIGINS"), func(r rune) bool {
		return r == ','
	})

	switch {
	case development:
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	case len(allowed) > 0:
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin, err := url.Parse(r.Header.Get("Origin"))
			if err != nil {
				return false
			}
			for _, host := range allowed {
				if strings.EqualFold(strings.TrimSpace(host), origin.Host) {
					return true
				}
			}
			return false
		}
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
