package notifier

import (
	"sync"

	"github.com/briankang0314/machsuri-server/models"
	"github.com/gorilla/websocket"
)

const (
	EventNotification = "notification"
	EventUnreadCount  = "unread_count"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks the websocket connections of logged-in users so a freshly
// created notification can be pushed without polling.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> user id
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient adds a connection for the given user.
func RegisterClient(conn *websocket.Conn, userID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = userID
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// NotifyUser pushes a notification to every open connection of one user.
func NotifyUser(userID uint, notif models.Notification) {
	send(userID, Message{
		Event: EventNotification,
		Data:  notif,
	})
}

// NotifyUnreadCount pushes the user's current unread total.
func NotifyUnreadCount(userID uint, count int64) {
	send(userID, Message{
		Event: EventUnreadCount,
		Data:  map[string]int64{"unread": count},
	})
}

func send(userID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, id := range hub.clients {
		if id != userID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
