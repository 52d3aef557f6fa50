package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventFeedSync = "feed_sync"
	EventPong     = "pong"
)

// QuestionCounter reports catalog size for the sync message sent on connect.
type QuestionCounter interface {
	CountQuestions(ctx context.Context) (int64, error)
}

// Hub fans question catalog events out to websocket clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	counter    QuestionCounter
}

type Client struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(counter QuestionCounter) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		counter:    counter,
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			log.Printf("Feed client registered: %s - Total clients: %d", client.id, total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Feed client unregistered: %s - Total clients: %d", client.id, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					log.Printf("Feed client %s send buffer full, dropping", client.id)
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for every connected client. It never blocks; when
// the broadcast queue is full the event is dropped.
func (h *Hub) Publish(eventType string, payload interface{}) {
	data, err := encodeMessage(eventType, payload)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("Feed broadcast queue full, dropping %s", eventType)
	}
}

func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// RegisterClient takes ownership of conn. The client receives a feed_sync
// message before any catalog event. It returns nil once the hub has stopped.
func (h *Hub) RegisterClient(ctx context.Context, conn *websocket.Conn) *Client {
	client := &Client{
		hub:    h,
		id:     uuid.NewString(),
		socket: conn,
		send:   make(chan []byte, 256),
	}

	h.queueSync(ctx, client)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) queueSync(ctx context.Context, client *Client) {
	payload := map[string]interface{}{"client_id": client.id}
	if h.counter != nil {
		total, err := h.counter.CountQuestions(ctx)
		if err != nil {
			log.Printf("Error counting questions for feed sync: %v", err)
		} else {
			payload["total_questions"] = total
		}
	}

	data, err := encodeMessage(EventFeedSync, payload)
	if err != nil {
		log.Printf("Error marshaling feed sync message: %v", err)
		return
	}
	client.send <- data
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, err := encodeMessage(EventPong, "pong")
		if err != nil {
			return
		}
		c.hub.mutex.RLock()
		defer c.hub.mutex.RUnlock()
		if !c.hub.clients[c] {
			return
		}
		select {
		case c.send <- data:
		default:
		}

	default:
		log.Printf("Unknown message type: %s from feed client %s", msg.Type, c.id)
	}
}

func encodeMessage(eventType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Message{
		Type:    eventType,
		Payload: payload,
	})
}
