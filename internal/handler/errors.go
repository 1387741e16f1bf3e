package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
	"github.com/yourusername/identity-api/internal/service"
)

// respondError maps domain and structural errors onto HTTP statuses with a
// stable error_type field that clients can branch on.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error_type": "user_already_exists", "error": "a user with this email already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error_type": "invalid_credentials", "error": "invalid credentials"})
	case errors.Is(err, service.ErrAccountNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error_type": "account_not_verified", "error": "email address is not verified"})
	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error_type": "account_inactive", "error": "account is deactivated"})
	case errors.Is(err, service.ErrCodeInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "code_invalid_or_expired", "error": "verification code is invalid or has expired"})
	case errors.Is(err, service.ErrNotificationDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error_type": "notification_delivery_failed", "error": "failed to deliver the verification code"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error_type": "not_found", "error": "resource not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error_type": "unauthorized", "error": "authentication required"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error_type": "conflict", "error": "resource conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error_type": "internal_error", "error": "internal server error"})
	}
}
