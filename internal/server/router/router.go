package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.StatsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/companies", handler.ListCompanies)
	r.GET("/companies/:pib", handler.CompanyByPIB)
	r.GET("/years", handler.ListYears)
	r.GET("/history/:name", handler.History)
	r.GET("/dashboard", handler.Dashboard)
	r.GET("/export", handler.Export)
	r.POST("/export/sheet", handler.PublishExport)
	r.GET("/trend", handler.Trend)

	admin := r.Group("/admin")
	admin.POST("/refresh", handler.Refresh)
	admin.POST("/import", handler.Import)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
