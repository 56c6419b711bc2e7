package pubsub

import (
	"github.com/gorilla/websocket"
)

// Client struct, which holds the account ID and their web socket connection
type Client struct {
	AccountID string
	conn      *websocket.Conn
}

// Constructor method for Client struct
func NewClient(accountID string, conn *websocket.Conn) *Client {
	return &Client{
		AccountID: accountID,
		conn:      conn,
	}
}

// Method to write a message back to client using WebSocket connection
func (client *Client) WriteMessage(message any) error {
	return client.conn.WriteJSON(message)
}
