package pubsub

import (
	"sync"
)

// Hub tracks the presence of online users by account ID. All access to the
// client map goes through the hub's lock.
type Hub struct {
	mutex   *sync.RWMutex
	clients map[string]*Client
}

// Constructor method of Hub
func NewHub() *Hub {
	return &Hub{
		mutex:   &sync.RWMutex{},
		clients: make(map[string]*Client),
	}
}

// Method to subscribe (join) into the chat server
func (hub *Hub) Subscribe(client *Client) {
	// Lock to prevent race condition
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	// Add client into the clients map
	hub.clients[client.AccountID] = client
}

// Method to unsubscribe the client out of the chat server
// This will also clean up any resource to prevent leak
func (hub *Hub) Unsubscribe(client *Client) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	// Remove the client out of clients map
	delete(hub.clients, client.AccountID)

	// Close the WebSocket connection
	client.conn.Close()
}

// Get returns the live client for the account, if any.
func (hub *Hub) Get(accountID string) (*Client, bool) {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	client, ok := hub.clients[accountID]
	return client, ok
}

// All returns the currently connected clients.
func (hub *Hub) All() []*Client {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	clients := make([]*Client, 0, len(hub.clients))
	for _, client := range hub.clients {
		clients = append(clients, client)
	}
	return clients
}
