// Package httpapi exposes the analysis engine over HTTP, grounded on
// the teacher's internal/handler (router, recovery/logging middleware)
// and internal/controller (request-binding, JSON response) shape.
package httpapi

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"armsim/internal/config"
)

// SetupRouter builds the Gin engine: recovery, request-ID and logging
// middleware, then the analyze and health routes under /api/v1.
func SetupRouter(ctrl *AnalyzeController, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", ctrl.Analyze)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
	}

	return router
}

// Serve builds the router from cfg.Server and blocks serving it. It is
// the -serve entry point of cmd/armsim.
func Serve(cfg *config.Config, logger *zap.Logger) {
	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	ctrl := NewAnalyzeController(cfg, logger)
	router := SetupRouter(ctrl, logger)

	logger.Info("starting http server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("http server exited with error", zap.Error(err))
	}
}

// requestIDKey is the gin context key the request ID is stored under.
const requestIDKey = "request_id"

// RequestIDMiddleware stamps every request with a fresh UUID so log
// lines across a request's lifetime can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// LoggerMiddleware logs method, path and request ID for every request,
// mirroring the teacher's handler.LoggerMiddleware.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Any("request_id", c.MustGet(requestIDKey)),
		)
		c.Next()
	}
}

// RecoveryMiddleware recovers a panicking handler, logs the stack
// trace and returns a 500 instead of crashing the process — the
// teacher's handler.CustomRecoveryMiddleware, unchanged in shape.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestContext returns a background context for an analysis request.
// Extracted to its own function so a future version can thread the
// request's own context (cancellation on client disconnect) through
// without touching call sites.
func requestContext(_ *gin.Context) context.Context {
	return context.Background()
}
