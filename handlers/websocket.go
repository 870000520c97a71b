package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/vanbenpham/forunime-backend/logger"
	"github.com/vanbenpham/forunime-backend/messaging"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsChannel adapts a websocket connection to the registry's Channel
// interface. gorilla/websocket allows only one concurrent writer, so
// Send serializes through a mutex.
type wsChannel struct {
	conn *websocket.Conn
	mu   sync.Mutex
	dead bool
}

func (ch *wsChannel) Send(payload []byte) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.dead {
		return websocket.ErrCloseSent
	}
	err := ch.conn.WriteMessage(websocket.TextMessage, payload)
	if err != nil {
		ch.dead = true
	}
	return err
}

func (ch *wsChannel) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.dead {
		return
	}
	ch.dead = true
	_ = ch.conn.Close()
}

// WebSocket upgrades the request and keeps the connection registered for
// live delivery until the read loop ends. Clients may also push send
// requests over the socket instead of POSTing them.
func WebSocket(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade failed for user %d: %v", user.ID, err)
		return
	}
	ch := &wsChannel{conn: conn}
	LiveUsers.Register(user.ID, ch)
	defer func() {
		LiveUsers.Unregister(user.ID, ch)
		ch.Close()
	}()
	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			logger.Debugf("websocket closed for user %d: %v", user.ID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if string(payload) == "ping" {
			if err = ch.Send([]byte("pong")); err != nil {
				return
			}
			continue
		}
		req := messaging.SendRequest{}
		if err = json.Unmarshal(payload, &req); err != nil || req.Content == "" {
			logger.Debugf("ignoring malformed websocket frame from user %d", user.ID)
			continue
		}
		if _, err = Messages.Send(user, req); err != nil {
			logger.Debugf("websocket send from user %d rejected: %v", user.ID, err)
		}
	}
}
