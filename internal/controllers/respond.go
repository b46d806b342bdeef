package controllers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/homescreen_backend_v1/internal/log"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
)

func respondData(c *gin.Context, status int, data any) {
    c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, code, message string, details []string) {
    body := gin.H{"code": code, "message": message}
    if len(details) > 0 {
        body["details"] = details
    }
    c.JSON(status, gin.H{"success": false, "error": body})
}

// respondStoreError maps a store failure onto the HTTP surface. Foreign
// errors are logged in full but answered with a generic message; internal
// detail never reaches the client.
func respondStoreError(c *gin.Context, err error) {
    se, ok := store.AsError(err)
    if !ok {
        log.Errorf("unexpected store failure: %v", err)
        respondError(c, http.StatusInternalServerError, string(store.CodeInternal), "Internal error", nil)
        return
    }
    respondError(c, statusFor(se.Code), string(se.Code), se.Message, se.Details)
}

func statusFor(code store.Code) int {
    switch code {
    case store.CodeValidation:
        return http.StatusBadRequest
    case store.CodeNotFound:
        return http.StatusNotFound
    case store.CodeAlreadyExists:
        return http.StatusConflict
    case store.CodeForbidden:
        return http.StatusForbidden
    default:
        // INVALID_CONFIG and INTERNAL_ERROR both mean the server, not the
        // caller, is at fault.
        return http.StatusInternalServerError
    }
}
