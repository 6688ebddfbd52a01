package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

var ErrHubStopped = errors.New("order hub stopped")

func RestaurantRoom(id uint) string { return fmt.Sprintf("restaurant:%d", id) }
func UserRoom(id uint) string       { return fmt.Sprintf("user:%d", id) }

// OrderHub pushes order events to the websockets subscribed to the order's restaurant
// room and to its customer's room. One goroutine (Run) owns every write to a connection.
type OrderHub struct {
	clients    map[string]map[*websocket.Conn]bool // room -> set of clients
	broadcast  chan roomMessage
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex

	restRepo *repository.RestaurantRepository
	log      *zap.Logger
}

type Subscription struct {
	Conn   *websocket.Conn
	Room   string
	UserID uint
}

type roomMessage struct {
	rooms []string
	data  []byte
}

func NewOrderHub(restRepo *repository.RestaurantRepository, log *zap.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan roomMessage, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		restRepo:   restRepo,
		log:        log,
	}
}

// Run serves register/unregister/broadcast until Stop is called.
func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Room] == nil {
				h.clients[sub.Room] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Room][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.Room, sub.Conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for _, room := range msg.rooms {
				for conn := range h.clients[room] {
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
						h.log.Warn("ws write failed", zap.String("room", room), zap.Error(err))
						h.drop(room, conn)
					}
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.clients {
				for conn := range conns {
					h.drop(room, conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// drop must be called with mu held.
func (h *OrderHub) drop(room string, conn *websocket.Conn) {
	if _, ok := h.clients[room][conn]; !ok {
		return
	}
	delete(h.clients[room], conn)
	if len(h.clients[room]) == 0 {
		delete(h.clients, room)
	}
	conn.Close()
}

func (h *OrderHub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *OrderHub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Subscribers reports how many connections listen on room.
func (h *OrderHub) Subscribers(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[room])
}

// Publish implements events.Publisher.
func (h *OrderHub) Publish(evt events.OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := roomMessage{
		rooms: []string{RestaurantRoom(evt.RestaurantID), UserRoom(evt.UserID)},
		data:  data,
	}
	// checked first: select picks randomly when both cases below are ready
	if h.stopped() {
		return ErrHubStopped
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// access is gated by the token, not the origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/restaurants/:id/orders (restaurant owner or admin)
func (h *OrderHub) HandleRestaurantOrders(c *gin.Context) {
	restID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	actor := utils.CurrentActor(c)
	if !actor.IsAdmin() {
		owned, err := h.restRepo.IsOwnedBy(h.restRepo.DB, restID, actor.UserID)
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		if !owned {
			resp.Forbidden(c, "you do not own this restaurant")
			return
		}
	}
	h.serve(c, RestaurantRoom(restID), actor.UserID)
}

// WS route: /ws/orders (the caller's own orders)
func (h *OrderHub) HandleMyOrders(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	h.serve(c, UserRoom(uid), uid)
}

func (h *OrderHub) serve(c *gin.Context, room string, userID uint) {
	if h.stopped() {
		resp.Unavailable(c, ErrHubStopped.Error())
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	sub := Subscription{Conn: conn, Room: room, UserID: userID}
	if h.stopped() {
		conn.Close()
		return
	}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.readPump(sub)
}

// readPump discards client frames and unregisters the connection once it closes.
func (h *OrderHub) readPump(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()

	sub.Conn.SetReadLimit(512)
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
