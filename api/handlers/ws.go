package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sentipost/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSEvents - WebSocket-поток событий стора для админской консоли
func (a *API) WSEvents(c *gin.Context) {
	token := c.GetString("token")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Warnf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	a.WS.Add(token, conn)
	defer a.WS.Remove(token, conn)

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"connected"}`))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
