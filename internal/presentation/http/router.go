package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ratinto/agri-credit-backend/internal/auth"
)

// Pinger reports backing-store health for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies carries the handlers and middleware inputs for the router.
type Dependencies struct {
	ScoreHandler *ScoreHandler
	LoanHandler  *LoanHandler
	JWTManager   *auth.JWTManager
	Pinger       Pinger
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(logger *slog.Logger, deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if deps.Pinger != nil {
			if err := deps.Pinger.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := r.Group("/v1")
	v1.Use(RequireAuth(deps.JWTManager))

	// Score and offer reads: any authenticated caller.
	v1.GET("/farmers/:farmerId/trust-score", deps.ScoreHandler.GetTrustScore)
	v1.POST("/farmers/:farmerId/trust-score", deps.ScoreHandler.ComputeTrustScore)
	v1.GET("/farmers/:farmerId/loan-offers", deps.ScoreHandler.GenerateOffers)
	v1.GET("/farmers/:farmerId/loans", deps.LoanHandler.History)
	v1.GET("/farms/:farmId/crops/:cropId/validation", deps.ScoreHandler.ValidateCrop)

	v1.GET("/loans/:loanId", deps.LoanHandler.Get)
	v1.GET("/loans/:loanId/schedule", deps.LoanHandler.Schedule)
	v1.POST("/loans", deps.LoanHandler.Apply)
	v1.POST("/loans/:loanId/repay", deps.LoanHandler.Repay)

	// Lending decisions: bank tokens only.
	bank := v1.Group("")
	bank.Use(RequireRole(auth.RoleBank))
	bank.POST("/loans/:loanId/approve", deps.LoanHandler.Approve)
	bank.POST("/loans/:loanId/reject", deps.LoanHandler.Reject)
	bank.POST("/loans/:loanId/disburse", deps.LoanHandler.Disburse)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
