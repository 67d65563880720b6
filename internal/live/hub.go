// Package live pushes balance-tuning events to connected dev tools over
// websockets: config reloads, power summaries, anything the server wants
// every open tuning UI to see at once.
package live

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message is the JSON envelope for every event on the feed.
type Message struct {
	Type    string      `json:"type"`    // e.g., "config_reloaded", "power_summary"
	Payload interface{} `json:"payload"` // event data
	Sender  string      `json:"sender"`  // "server" for system events
}

// Client is one connected tuning UI.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // buffered outbound queue
}

// Hub maintains the set of active clients and fans broadcasts out to them.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub. Call Run in its own goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Send marshals an event and queues it for every connected client.
func (h *Hub) Send(typ string, payload interface{}) {
	b, err := json.Marshal(Message{Type: typ, Payload: payload, Sender: "server"})
	if err != nil {
		log.Printf("live: marshal %s: %v", typ, err)
		return
	}
	h.Broadcast <- b
}

// Run is the hub's event loop; it blocks.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// full send buffer: assume the client hung and drop it
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// tuning UIs run on other local ports during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a websocket and attaches the client
// to the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("live: upgrade:", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection; the feed is one-way, so inbound frames
// are discarded, but reading is what detects the close.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: read: %v", err)
			}
			break
		}
	}
}

// writePump forwards queued events until the hub closes the channel.
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}
