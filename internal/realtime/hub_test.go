package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// newTestServer поднимает websocket-сервер, который подключает каждого
// клиента к хабу на заданные топики. dial возвращает клиентское соединение
// и серверный *Client после регистрации в хабе.
func newTestServer(t *testing.T, hub *Hub, topics []string) func() (*websocket.Conn, *Client) {
	t.Helper()

	clientCh := make(chan *Client, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(hub, conn)
		hub.Attach(c, topics)
		clientCh <- c
	}))
	t.Cleanup(srv.Close)

	return func() (*websocket.Conn, *Client) {
		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		if resp != nil {
			_ = resp.Body.Close()
		}
		t.Cleanup(func() { _ = conn.Close() })
		return conn, <-clientCh
	}
}

func TestBroadcast_DeliversToSubscriber(t *testing.T) {
	hub := NewHub(noopLogger{})
	topic := AvailabilityTopic(1)
	dial := newTestServer(t, hub, []string{topic})
	conn, _ := dial()

	hub.Broadcast(Message{
		Topic:   topic,
		Type:    "availability.changed",
		Payload: map[string]interface{}{"tableId": 5},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, topic, msg.Topic)
	assert.Equal(t, "availability.changed", msg.Type)
	assert.False(t, msg.SentAt.IsZero())
}

func TestBroadcast_DetachedClientIsIgnored(t *testing.T) {
	hub := NewHub(noopLogger{})
	topic := AvailabilityTopic(1)
	dial := newTestServer(t, hub, []string{topic})
	_, c := dial()

	hub.Detach(c)

	// Рассылка работает по снимку подписчиков и может добраться
	// до уже закрытого клиента: отправка не должна паниковать
	assert.NotPanics(t, func() {
		assert.False(t, c.trySend([]byte(`{}`)))
	})
}

func TestBroadcast_ConcurrentWithDetach(t *testing.T) {
	hub := NewHub(noopLogger{})
	topic := AvailabilityTopic(7)
	dial := newTestServer(t, hub, []string{topic})

	clients := make([]*Client, 0, 8)
	for i := 0; i < 8; i++ {
		_, c := dial()
		clients = append(clients, c)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.Broadcast(Message{Topic: topic, Type: "availability.changed", Payload: i})
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			hub.Detach(c)
		}
	}()
	wg.Wait()
}
