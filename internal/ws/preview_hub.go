// Package ws pushes configuration-change events to connected live-preview
// clients so an open editor can re-fetch the moment a record changes.
package ws

import (
    "encoding/json"
    "time"

    "github.com/gorilla/websocket"

    "github.com/zaqqye/homescreen_backend_v1/internal/log"
)

const (
    writeWait      = 10 * time.Second
    pongWait       = 60 * time.Second
    pingPeriod     = (pongWait * 9) / 10
    sendBufferSize = 256
)

// Change events pushed to preview clients.
const (
    EventCreated = "config.created"
    EventUpdated = "config.updated"
    EventDeleted = "config.deleted"
)

// PreviewEvent tells a preview client which record changed. Clients re-fetch
// the record themselves; the payload body is never pushed over the socket.
type PreviewEvent struct {
    Event     string `json:"event"`
    ID        string `json:"id"`
    UpdatedAt string `json:"updatedAt,omitempty"`
}

// PreviewHub fans change events out to every connected preview client.
type PreviewHub struct {
    register   chan *previewClient
    unregister chan *previewClient
    broadcast  chan []byte
    clients    map[*previewClient]struct{}
}

func NewPreviewHub() *PreviewHub {
    return &PreviewHub{
        register:   make(chan *previewClient),
        unregister: make(chan *previewClient),
        broadcast:  make(chan []byte, 256),
        clients:    make(map[*previewClient]struct{}),
    }
}

// Run owns the client set; call it once in its own goroutine.
func (h *PreviewHub) Run() {
    for {
        select {
        case client := <-h.register:
            h.clients[client] = struct{}{}
        case client := <-h.unregister:
            if _, ok := h.clients[client]; ok {
                delete(h.clients, client)
                close(client.send)
                client.conn.Close()
            }
        case msg := <-h.broadcast:
            for client := range h.clients {
                select {
                case client.send <- msg:
                default:
                    // Slow consumer; drop it rather than stall the hub.
                    delete(h.clients, client)
                    close(client.send)
                    client.conn.Close()
                }
            }
        }
    }
}

// Broadcast pushes an event to all connected preview clients. Safe to call on
// a nil hub so callers need no wiring guards.
func (h *PreviewHub) Broadcast(ev PreviewEvent) {
    if h == nil {
        return
    }
    data, err := json.Marshal(ev)
    if err != nil {
        log.Errorf("ws: failed to marshal preview event: %v", err)
        return
    }
    h.broadcast <- data
}

type previewClient struct {
    hub  *PreviewHub
    conn *websocket.Conn
    send chan []byte
}

func newPreviewClient(hub *PreviewHub, conn *websocket.Conn) *previewClient {
    return &previewClient{
        hub:  hub,
        conn: conn,
        send: make(chan []byte, sendBufferSize),
    }
}

// readPump drains (and discards) client frames so pings/pongs and close
// handshakes work; previews are listen-only.
func (c *previewClient) readPump() {
    defer func() {
        c.hub.unregister <- c
    }()
    c.conn.SetReadLimit(512)
    c.conn.SetReadDeadline(time.Now().Add(pongWait))
    c.conn.SetPongHandler(func(string) error {
        c.conn.SetReadDeadline(time.Now().Add(pongWait))
        return nil
    })
    for {
        if _, _, err := c.conn.ReadMessage(); err != nil {
            break
        }
    }
}

func (c *previewClient) writePump() {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        c.conn.Close()
    }()
    for {
        select {
        case msg, ok := <-c.send:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if !ok {
                c.conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
                return
            }
        case <-ticker.C:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}
