package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"voyago/middleware"
	"voyago/mq"
)

// Client is one open trip view. Send is drained by writePump.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	TripID string
}

type broadcastMsg struct {
	TripID string
	Data   []byte
}

// Hub fans refresh notices out to every open view of a trip. Collaborators
// do not sync edits over the socket; a notice just tells them to refetch.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.TripID] == nil {
				h.rooms[c.TripID] = make(map[*Client]bool)
			}
			h.rooms[c.TripID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.TripID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.TripID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.TripID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// refreshNotice is the only frame the hub ever sends.
type refreshNotice struct {
	Action    string `json:"action"` // always "refresh"
	Kind      string `json:"kind"`   // which write happened
	TripID    string `json:"trip_id"`
	DayID     string `json:"day_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Notify converts an itinerary event into a refresh notice for the trip room.
func (h *Hub) Notify(evt mq.Event) {
	if evt.TripID == "" {
		return
	}
	notice := refreshNotice{
		Action:    "refresh",
		Kind:      evt.Kind,
		TripID:    evt.TripID,
		DayID:     evt.DayID,
		ItemID:    evt.ItemID,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(notice)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- broadcastMsg{TripID: evt.TripID, Data: data}:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades authenticated clients into the trip room. The
// token rides in the query string (browsers cannot set headers on a
// websocket handshake) with the Authorization header as fallback.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tripID := ps.ByName("tripid")

		token := r.URL.Query().Get("token")
		if token == "" {
			token = r.Header.Get("Authorization")
		}
		if _, err := middleware.ValidateJWT(token); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			TripID: tripID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the peer going away; clients never send frames.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
