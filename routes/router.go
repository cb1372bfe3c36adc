package routes

import (
	"net/http"
	"time"

	"civicsync/config"
	"civicsync/middlewares"
	"civicsync/notify"
	"civicsync/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Config        *config.Config
	Store         *store.IssueStore
	Notifications *notify.Center
	Logger        *zap.Logger
	// RateCounter backs the issue limiter; nil disables it
	RateCounter middlewares.RateCounter
	// Registry receives the HTTP metrics and is served on /metrics
	Registry *prometheus.Registry
}

// NewRouter wires middleware and all routes onto a fresh engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(d.Logger))
	r.Use(middlewares.NewMetrics(d.Registry).Handler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	sugar := d.Logger.Sugar()
	auth := middlewares.AuthMiddleware(d.Config.JWTSecret, sugar)

	AuthRoutes(r, d, auth)
	IssueRoutes(r, d, auth)
	NotificationRoutes(r, d, auth)

	return r
}
