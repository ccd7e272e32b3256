package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Доступность столиков — публичные данные, origin не ограничиваем
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler HTTP-обработчик апгрейда соединения до websocket
type Handler struct {
	hub *Hub
	log Logger
}

// NewHandler создает обработчик websocket-подключений
func NewHandler(hub *Hub, log Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

// Handle GET /ws?topics=restaurant.1.availability,restaurant.2.availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("realtime: upgrade failed: %v", err)
		return
	}

	topics := make([]string, 0)
	for _, topic := range strings.Split(r.URL.Query().Get("topics"), ",") {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}

	client := NewClient(h.hub, conn)
	h.hub.Attach(client, topics)
}
