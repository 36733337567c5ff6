package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wellcampus/internal/logger"
)

// KindSlotUpdated 表示某个槽位或主题已写回，客户端应重新拉取对应视图
const KindSlotUpdated = "slot.updated"

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
	pingInterval = 25 * time.Second
)

// Message 是推送给浏览器的变更通知
type Message struct {
	Kind string    `json:"kind"`
	Slot string    `json:"slot"`
	At   time.Time `json:"at"`
}

// Client 是一个已连接的 websocket 客户端
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

// Hub 将槽位变更广播给所有在线客户端。
// SlotChanged 可能在持有业务锁时被调用，因此只做非阻塞投递，慢客户端会丢弃通知。
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     *logger.Logger
	now     func() time.Time
}

// NewHub 创建 Hub
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		log:     log,
		now:     time.Now,
	}
}

// Serve 接管连接直到客户端断开
func (h *Hub) Serve(conn *websocket.Conn) {
	client := h.register(conn)
	defer h.unregister(client)

	go h.writeLoop(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SlotChanged 实现 service.Notifier
func (h *Hub) SlotChanged(slot string) {
	msg := Message{Kind: KindSlotUpdated, Slot: slot, At: h.now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warnw("realtime client too slow, dropping update", "client", c.ID, "slot", slot)
		}
	}
}

// Count 返回在线客户端数量
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close 断开全部客户端
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) register(conn *websocket.Conn) *Client {
	c := &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, sendBuffer),
	}
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	h.log.Debugw("realtime client connected", "client", c.ID)
	return c
}

func (h *Hub) unregister(c *Client) {
	c.once.Do(func() {
		h.mu.Lock()
		delete(h.clients, c.ID)
		h.mu.Unlock()
		close(c.send)
		_ = c.conn.Close()
		h.log.Debugw("realtime client disconnected", "client", c.ID)
	})
}

func (h *Hub) writeLoop(c *Client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}
