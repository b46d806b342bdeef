package middleware

import (
    "crypto/subtle"
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
)

// APIKeyAuth guards routes with the server's shared API key. Requests must
// carry "Authorization: Bearer <key>"; anything else is rejected before the
// handler runs.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
    return func(c *gin.Context) {
        auth := c.GetHeader("Authorization")
        if auth == "" {
            abortUnauthorized(c, "Missing Authorization header")
            return
        }
        parts := strings.SplitN(auth, " ", 2)
        if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
            abortUnauthorized(c, "Invalid Authorization header format. Expected: Bearer <api-key>")
            return
        }
        if !KeyMatches(apiKey, strings.TrimSpace(parts[1])) {
            abortUnauthorized(c, "Invalid API key")
            return
        }
        c.Next()
    }
}

// KeyMatches compares a presented key against the server key in constant
// time. An empty server key never matches.
func KeyMatches(serverKey, presented string) bool {
    if serverKey == "" {
        return false
    }
    return subtle.ConstantTimeCompare([]byte(serverKey), []byte(presented)) == 1
}

func abortUnauthorized(c *gin.Context, message string) {
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
        "success": false,
        "error":   gin.H{"code": "UNAUTHORIZED", "message": message},
    })
}
