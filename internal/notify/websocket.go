package notify

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"parq/pkg/logger"
	"parq/pkg/model"
	"parq/pkg/sanitizer"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler bridges the dispatcher to connected clients: one
// websocket per client key, registered on connect, unregistered on
// disconnect. The write pump is the only goroutine writing to the
// connection.
type WebSocketHandler struct {
	dispatcher *Dispatcher
	log        *logger.Logger
}

func NewWebSocketHandler(dispatcher *Dispatcher, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	phone := sanitizer.NormalizePhone(r.URL.Query().Get("phone"))
	if phone == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"a valid phone query parameter is required"}`))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Failed to upgrade notification connection", "phone", phone, "error", err)
		return
	}

	ch := h.dispatcher.Register(phone)
	done := make(chan struct{})

	go h.readPump(conn, done)
	h.writePump(conn, ch, done)

	h.dispatcher.Unregister(phone, ch)
	conn.Close()
}

// readPump discards inbound frames; its job is pong handling and
// noticing the peer going away.
func (h *WebSocketHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("Notification connection error", "error", err)
			}
			return
		}
	}
}

// writePump forwards notifications until the channel is closed (the
// dispatcher replaced this registration) or the peer disconnects.
func (h *WebSocketHandler) writePump(conn *websocket.Conn, ch <-chan model.Notification, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-ch:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(n); err != nil {
				h.log.Warn("Failed to deliver notification", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
