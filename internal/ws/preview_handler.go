package ws

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/gorilla/websocket"

    "github.com/zaqqye/homescreen_backend_v1/internal/middleware"
)

var upgrader = websocket.Upgrader{
    CheckOrigin: func(r *http.Request) bool {
        // Allow all origins; the API key gates the upgrade.
        return true
    },
}

// PreviewHandler upgrades an editor preview connection. Browsers cannot set
// headers on WebSocket dials, so the API key is also accepted as a ?key=
// query parameter.
func PreviewHandler(apiKey string, hub *PreviewHub) gin.HandlerFunc {
    return func(c *gin.Context) {
        presented := c.Query("key")
        if presented == "" {
            auth := c.GetHeader("Authorization")
            if parts := strings.SplitN(auth, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
                presented = strings.TrimSpace(parts[1])
            }
        }
        if !middleware.KeyMatches(apiKey, presented) {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
                "success": false,
                "error":   gin.H{"code": "UNAUTHORIZED", "message": "Invalid API key"},
            })
            return
        }

        conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
        if err != nil {
            return
        }
        client := newPreviewClient(hub, conn)
        hub.register <- client

        go client.writePump()
        client.readPump()
    }
}
