package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"asset-system/pkg/constants"
)

// Hub administra los clientes conectados y el envío de notificaciones. La
// audiencia de un mensaje puede ser todos los clientes, un usuario concreto o
// un conjunto de roles (el sistema original notificaba por rol:
// Administrador/Encargado).
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64][]*Client
	roleClients map[constants.Role]map[*Client]bool
	broadcast   chan []byte
	Register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		roleClients: make(map[constants.Role]map[*Client]bool),
		broadcast:   make(chan []byte),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			if h.roleClients[client.Role] == nil {
				h.roleClients[client.Role] = make(map[*Client]bool)
			}
			h.roleClients[client.Role][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				clients := h.userClients[client.UserID]
				for i, c := range clients {
					if c == client {
						h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(h.userClients[client.UserID]) == 0 {
					delete(h.userClients, client.UserID)
				}
				delete(h.roleClients[client.Role], client)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) envelope(payload interface{}, messageType string) ([]byte, error) {
	envelope := Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("error serializando mensaje WebSocket: %v", err)
		return nil, err
	}
	return messageBytes, nil
}

// SendMessageToUser entrega una notificación a todas las conexiones de un
// usuario.
func (h *Hub) SendMessageToUser(userID uint64, payload interface{}, messageType string) error {
	messageBytes, err := h.envelope(payload, messageType)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		client.Send <- messageBytes
	}
	return nil
}

// SendMessageToRoles entrega una notificación a todos los clientes cuyos roles
// estén en la audiencia. Con audiencia vacía se emite a todos.
func (h *Hub) SendMessageToRoles(roles []constants.Role, payload interface{}, messageType string) error {
	messageBytes, err := h.envelope(payload, messageType)
	if err != nil {
		return err
	}

	if len(roles) == 0 {
		h.broadcast <- messageBytes
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, role := range roles {
		for client := range h.roleClients[role] {
			client.Send <- messageBytes
		}
	}
	return nil
}
