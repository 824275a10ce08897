package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratinto/agri-credit-backend/internal/apperr"
	"github.com/ratinto/agri-credit-backend/internal/domain/model"
)

// writeError maps domain error kinds onto HTTP statuses. Unknown errors are
// reported as 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrNotApprovingBank) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not_approving_bank"})
		return
	}

	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.InvalidAmount:
		status = http.StatusBadRequest
	case apperr.InvalidTransition, apperr.AlreadyRepaid:
		status = http.StatusConflict
	case apperr.UpstreamUnavailable:
		status = http.StatusBadGateway
	}

	msg := "internal error"
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message()
	}
	c.JSON(status, gin.H{"error": msg})
}
