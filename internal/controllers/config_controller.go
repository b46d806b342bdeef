package controllers

import (
    "encoding/json"
    "io"
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/homescreen_backend_v1/internal/models"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
    "github.com/zaqqye/homescreen_backend_v1/internal/validation"
    "github.com/zaqqye/homescreen_backend_v1/internal/ws"
)

// ConfigController exposes CRUD over stored home-screen configurations.
type ConfigController struct {
    Store *store.Store
    Hub   *ws.PreviewHub
}

// readPayload decodes the request body twice: once untyped for the
// validator, once typed for the store. The untyped pass is what lets a
// wrong-typed field come back as an itemized message instead of a bind error.
func readPayload(c *gin.Context) (models.ConfigPayload, bool) {
    var payload models.ConfigPayload

    body, err := io.ReadAll(c.Request.Body)
    if err != nil {
        respondError(c, http.StatusBadRequest, "BAD_REQUEST", "Failed to read request body", nil)
        return payload, false
    }

    var raw any
    if err := json.Unmarshal(body, &raw); err != nil {
        respondError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON in request body", nil)
        return payload, false
    }

    if res := validation.ValidatePayload(raw); !res.IsValid {
        respondError(c, http.StatusBadRequest, string(store.CodeValidation),
            "Invalid configuration payload", res.Errors)
        return payload, false
    }

    // Field shapes were already checked by the untyped pass.
    _ = json.Unmarshal(body, &payload)
    return payload, true
}

// List returns metadata for every record, most recently updated first.
func (cc *ConfigController) List(c *gin.Context) {
    metas, err := cc.Store.List()
    if err != nil {
        respondStoreError(c, err)
        return
    }
    respondData(c, http.StatusOK, metas)
}

// Create stores a new record. An explicit identifier may be supplied as
// ?id=; otherwise the store generates one.
func (cc *ConfigController) Create(c *gin.Context) {
    payload, ok := readPayload(c)
    if !ok {
        return
    }
    rec, err := cc.Store.Create(payload, c.Query("id"))
    if err != nil {
        respondStoreError(c, err)
        return
    }
    cc.Hub.Broadcast(ws.PreviewEvent{Event: ws.EventCreated, ID: rec.ID, UpdatedAt: rec.UpdatedAt})
    respondData(c, http.StatusCreated, rec)
}

// Get returns a single record by id.
func (cc *ConfigController) Get(c *gin.Context) {
    rec, err := cc.Store.Read(c.Param("id"))
    if err != nil {
        respondStoreError(c, err)
        return
    }
    respondData(c, http.StatusOK, rec)
}

// Update replaces a record's payload in full; partial merges happen in the
// editor before submission.
func (cc *ConfigController) Update(c *gin.Context) {
    payload, ok := readPayload(c)
    if !ok {
        return
    }
    rec, err := cc.Store.Update(c.Param("id"), payload)
    if err != nil {
        respondStoreError(c, err)
        return
    }
    cc.Hub.Broadcast(ws.PreviewEvent{Event: ws.EventUpdated, ID: rec.ID, UpdatedAt: rec.UpdatedAt})
    respondData(c, http.StatusOK, rec)
}

// Delete removes a record. The default record is protected and answers 403.
func (cc *ConfigController) Delete(c *gin.Context) {
    id := c.Param("id")
    if err := cc.Store.Delete(id); err != nil {
        respondStoreError(c, err)
        return
    }
    cc.Hub.Broadcast(ws.PreviewEvent{Event: ws.EventDeleted, ID: id})
    c.Status(http.StatusNoContent)
}
