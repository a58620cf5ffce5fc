package handler

import (
	"net/http"

	gws "github.com/gorilla/websocket"

	"exposurestats/internal/logger"
	"exposurestats/internal/service/websocket"
)

var upgrader = gws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // local dashboard only
}

// ScanProgressHandler upgrades the connection and registers the client with
// the hub; scan progress events arrive as JSON text messages.
func ScanProgressHandler(hub *websocket.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed: %v", err)
			return
		}

		hub.Register(conn)

		go func() {
			defer hub.Unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
