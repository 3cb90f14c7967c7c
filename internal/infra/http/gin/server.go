package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"tarifario/internal/infra/config"
	"tarifario/internal/infra/obs"
)

type UnitHTTP interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
}

type RuleHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Toggle(c *gin.Context)
}

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type Handlers struct {
	Unit  UnitHTTP
	Rule  RuleHTTP
	Quote QuoteHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Unit != nil {
		api.POST("/units", h.Unit.Create)
		api.GET("/units", h.Unit.List)
		api.GET("/units/:id", h.Unit.Get)
	}
	if h.Rule != nil {
		api.GET("/units/:id/rules", h.Rule.List)
		api.POST("/units/:id/rules", h.Rule.Create)
		api.PUT("/rules/:id", h.Rule.Update)
		api.DELETE("/rules/:id", h.Rule.Delete)
		api.POST("/rules/:id/toggle", h.Rule.Toggle)
	}
	if h.Quote != nil {
		api.POST("/units/:id/quote", h.Quote.Quote)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
