package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/auth"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperr.New(apperr.NotFound, "loan not found"), http.StatusNotFound},
		{"invalid amount", apperr.New(apperr.InvalidAmount, "amount must be positive"), http.StatusBadRequest},
		{"invalid transition", apperr.New(apperr.InvalidTransition, "loan is already approved"), http.StatusConflict},
		{"already repaid", apperr.New(apperr.AlreadyRepaid, "loan already fully repaid"), http.StatusConflict},
		{"upstream unavailable", apperr.New(apperr.UpstreamUnavailable, "satellite provider failed"), http.StatusBadGateway},
		{"wrapped kind survives", fmt.Errorf("repay loan: %w", apperr.New(apperr.AlreadyRepaid, "loan already fully repaid")), http.StatusConflict},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrong bank", model.ErrNotApprovingBank, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			writeError(c, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}

	t.Run("unknown errors do not leak detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeError(c, fmt.Errorf("pq: connection refused on 10.0.0.5"))
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		assert.Contains(t, rec.Body.String(), "internal error")
	})
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := auth.NewJWTManager("agri-credit-backend", "test-secret", time.Hour)

	router := gin.New()
	router.GET("/protected", RequireAuth(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString(ctxSubjectID),
			"role":    c.GetString(ctxRole),
		})
	})
	router.GET("/bank-only", RequireAuth(manager), RequireRole(auth.RoleBank), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("valid token passes and exposes identity", func(t *testing.T) {
		token, err := manager.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "FRM000001")
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("farmer token cannot reach bank routes", func(t *testing.T) {
		token, err := manager.Mint("FRM000001", auth.RoleFarmer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/bank-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bank token reaches bank routes", func(t *testing.T) {
		token, err := manager.Mint("BANK001", auth.RoleBank)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/bank-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
