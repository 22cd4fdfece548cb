package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub управляет всеми WebSocket клиентами. Хаб только доставляет события,
// в базу данных он не ходит.
type Hub struct {
	mu         sync.RWMutex
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	log        logrus.FieldLogger
}

type message struct {
	studentID int64
	payload   []byte
}

// Envelope — формат сообщения для клиента: "type" содержит имя события,
// "data" полезную нагрузку.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub создаёт новый хаб.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run запускает главный цикл хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.studentID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastToStudent ставит событие в очередь на доставку всем подключениям
// студента. При переполненной очереди событие отбрасывается.
func (h *Hub) BroadcastToStudent(studentID int64, event string, data interface{}) {
	raw, err := json.Marshal(Envelope{Type: event, Data: data})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Warn("ws: не удалось сериализовать сообщение")
		return
	}

	select {
	case h.broadcast <- message{studentID: studentID, payload: raw}:
	case <-h.done:
	default:
		h.log.WithFields(logrus.Fields{
			"student_id": studentID,
			"event":      event,
		}).Warn("ws: очередь доставки переполнена, событие отброшено")
	}
}

// Online возвращает число открытых WebSocket-подключений по всем студентам.
func (h *Hub) Online() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.studentID]; !ok {
		h.clients[client.studentID] = make(map[*Client]struct{})
	}
	h.clients[client.studentID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.studentID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.studentID)
		}
	}
}

func (h *Hub) send(studentID int64, payload []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients[studentID] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// медленный клиент отключается, чтобы не тормозить остальных
	for _, c := range slow {
		h.removeClient(c)
		c.closeConn()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, clients := range h.clients {
		for c := range clients {
			c.closeConn()
		}
		delete(h.clients, id)
	}
}
