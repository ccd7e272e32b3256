package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message сообщение, рассылаемое подписчикам топика
type Message struct {
	Topic   string      `json:"topic"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

// AvailabilityTopic топик изменений доступности столиков ресторана
func AvailabilityTopic(restaurantID int64) string {
	return fmt.Sprintf("restaurant.%d.availability", restaurantID)
}

// Hub realtime-диспетчер: ведёт подписки websocket-клиентов по топикам
// и рассылает события изменения доступности. Медленный клиент отключается,
// рассылка никогда не блокируется.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Client]struct{}
	log    Logger
}

// NewHub создает новый хаб
func NewHub(log Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]struct{}),
		log:    log,
	}
}

// Attach регистрирует клиента на топики и запускает его цикл отправки
func (h *Hub) Attach(c *Client, topics []string) {
	h.mu.Lock()
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if h.topics[topic] == nil {
			h.topics[topic] = make(map[*Client]struct{})
		}
		h.topics[topic][c] = struct{}{}
		c.subscribed[topic] = struct{}{}
	}
	h.mu.Unlock()

	h.log.Info("realtime: client attached, topics=%v", topics)
	go c.writeLoop()
	go c.readLoop()
}

// Detach убирает клиента из всех топиков и закрывает его соединение
func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	h.mu.Unlock()

	c.close()
	h.log.Info("realtime: client detached")
}

// Broadcast рассылает сообщение всем подписчикам топика.
// Неуспевающие клиенты отсоединяются, отправка не блокируется.
func (h *Hub) Broadcast(msg Message) {
	msg.SentAt = time.Now().UTC()

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("realtime: broadcast marshal error: %v", err)
		return
	}

	h.mu.RLock()
	subs := h.topics[msg.Topic]
	clients := make([]*Client, 0, len(subs))
	for c := range subs {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(data) {
			go h.Detach(c)
		}
	}
}
