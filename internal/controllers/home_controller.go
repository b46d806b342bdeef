package controllers

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/homescreen_backend_v1/internal/config"
    "github.com/zaqqye/homescreen_backend_v1/internal/defaults"
    "github.com/zaqqye/homescreen_backend_v1/internal/log"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
    "github.com/zaqqye/homescreen_backend_v1/internal/utils"
)

// HomeController serves the app-facing home screen. Unlike the admin CRUD it
// never fails closed: if the stored default record is unreadable or invalid
// the built-in content is served instead, so the app always gets a screen.
type HomeController struct {
    Store *store.Store
    Cfg   *config.Config
}

// Get handles GET /api/v1/home. The platform and app_version query
// parameters drive the min-version gate; the body carries the current
// default payload plus remote-config metadata.
func (hc *HomeController) Get(c *gin.Context) {
    platform := strings.ToLower(c.DefaultQuery("platform", "android"))

    minApp := hc.Cfg.MinAppVersionAndroid
    switch platform {
    case "ios", "ipad", "iphone":
        minApp = hc.Cfg.MinAppVersionIOS
    }

    updateRequired := false
    if v := c.Query("app_version"); v != "" {
        updateRequired = utils.CompareVersions(v, minApp) < 0
    }

    payload := defaults.Payload()
    schemaVersion := store.SchemaVersion
    updatedAt := ""
    if rec, err := hc.Store.Read(store.DefaultID); err != nil {
        log.Warnf("home: falling back to built-in content: %v", err)
    } else {
        payload = rec.Data
        schemaVersion = rec.SchemaVersion
        updatedAt = rec.UpdatedAt
    }

    hc.respondSigned(c, gin.H{
        "platform":        platform,
        "layout_version":  hc.Cfg.LayoutVersion,
        "min_app_version": minApp,
        "update_required": updateRequired,
        "schema_version":  schemaVersion,
        "updated_at":      updatedAt,
        "home":            payload,
    })
}

// respondSigned writes the body with an HMAC-SHA256 signature header when a
// signing secret is configured, so the app can verify payload integrity.
func (hc *HomeController) respondSigned(c *gin.Context, body any) {
    b, err := json.Marshal(body)
    if err != nil {
        respondError(c, http.StatusInternalServerError, string(store.CodeInternal),
            "Failed to encode home screen", nil)
        return
    }
    if sec := strings.TrimSpace(hc.Cfg.SigningSecret); sec != "" {
        mac := hmac.New(sha256.New, []byte(sec))
        mac.Write(b)
        c.Header("X-Config-Signature", hex.EncodeToString(mac.Sum(nil)))
    }
    c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}
