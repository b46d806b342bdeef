package routes

import (
    "github.com/gin-gonic/gin"

    "github.com/zaqqye/homescreen_backend_v1/internal/config"
    "github.com/zaqqye/homescreen_backend_v1/internal/controllers"
    "github.com/zaqqye/homescreen_backend_v1/internal/middleware"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
    "github.com/zaqqye/homescreen_backend_v1/internal/ws"
)

func Register(r *gin.Engine, st *store.Store, hub *ws.PreviewHub, cfg *config.Config) {
    // Answer 405 instead of 404 when the path exists but the method is wrong
    r.HandleMethodNotAllowed = true

    // Public app-facing endpoint
    homeCtrl := &controllers.HomeController{Store: st, Cfg: cfg}
    r.GET("/api/v1/home", homeCtrl.Get)

    // Admin CRUD, behind the shared API key
    cfgCtrl := &controllers.ConfigController{Store: st, Hub: hub}
    api := r.Group("/api/v1", middleware.APIKeyAuth(cfg.APIKey))
    {
        api.GET("/configs", cfgCtrl.List)
        api.POST("/configs", cfgCtrl.Create)
        api.GET("/configs/:id", cfgCtrl.Get)
        api.PUT("/configs/:id", cfgCtrl.Update)
        api.DELETE("/configs/:id", cfgCtrl.Delete)
    }

    // Live preview push channel (key checked inside; browsers cannot set
    // headers on WebSocket dials)
    r.GET("/ws/preview", ws.PreviewHandler(cfg.APIKey, hub))
}
