package httpx

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/assetsvc/internal/http/handlers"
	"github.com/you/assetsvc/internal/http/middleware"
)

// RouterConfig carries the router settings that are not handlers
type RouterConfig struct {
	CORSOrigins  []string
	UploadDir    string
	UploadPrefix string
	RequestLog   bool
}

func BuildRouter(cfg RouterConfig, ah *handlers.AuthHandlers, as *handlers.AssetHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.RequestLog {
		r.Use(gin.Logger())
	}
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if cfg.UploadDir != "" {
		r.Static(cfg.UploadPrefix, cfg.UploadDir)
	}

	auth := r.Group("/auth")
	auth.POST("/send-otp", ah.SendOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/assets", as.Create)
	v.GET("/assets/my", as.ListMine)
	v.POST("/assets/signature", as.Signature)
	v.POST("/assets/upload", as.Upload)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
