package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/server/handlers"
)

// OwnerHeader carries the owner id asserted by the upstream gateway.
const OwnerHeader = "X-User-ID"

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.MixHandler, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	if len(allowedOrigins) > 0 {
		r.Use(corsMiddleware(allowedOrigins))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", ownerMiddleware())
	api.GET("/vocabulary", handler.Vocabulary)

	mixRoutes := api.Group("/mixes")
	mixRoutes.GET("", handler.List)
	mixRoutes.POST("", handler.Create)
	mixRoutes.POST("/validate", handler.Validate)
	mixRoutes.GET("/summary", handler.Summary)
	mixRoutes.GET("/export.csv", handler.ExportCSV)
	mixRoutes.GET("/export.xlsx", handler.ExportXLSX)
	mixRoutes.GET("/:id", handler.Get)
	mixRoutes.PUT("/:id", handler.Update)
	mixRoutes.DELETE("/:id", handler.Delete)

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

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", OwnerHeader},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// ownerMiddleware rejects requests without an owner id and stores it for the handlers.
func ownerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := strings.TrimSpace(c.GetHeader(OwnerHeader))
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + OwnerHeader + " header"})
			return
		}
		c.Set(handlers.OwnerKey, ownerID)
		c.Next()
	}
}
