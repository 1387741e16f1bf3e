// Package handler exposes the identity flows over HTTP.
package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/identity-api/internal/handler/dto"
	"github.com/yourusername/identity-api/internal/service"
)

// AuthHandler serves registration, verification, login and password reset.
type AuthHandler struct {
	registrationService *service.RegistrationService
	passwordService     *service.PasswordService
	authService         *service.AuthService
}

func NewAuthHandler(
	registrationService *service.RegistrationService,
	passwordService *service.PasswordService,
	authService *service.AuthService,
) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		passwordService:     passwordService,
		authService:         authService,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`

	FirstName string     `json:"first_name" binding:"omitempty,max=100"`
	LastName  string     `json:"last_name" binding:"omitempty,max=100"`
	Bio       string     `json:"bio" binding:"omitempty,max=1000"`
	Phone     string     `json:"phone" binding:"omitempty,max=20"`
	Location  string     `json:"location" binding:"omitempty,max=100"`
	BirthDate *time.Time `json:"birth_date" binding:"omitempty"`
}

// ConfirmRegistrationRequest carries the emailed 6-digit code.
type ConfirmRegistrationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// LoginRequest accepts an email or a username in the identifier field.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// PasswordResetRequest starts the forgotten-password flow.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest completes the forgotten-password flow.
type PasswordResetConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// Register creates an unverified account and emails a confirmation code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
		return
	}

	user, err := h.registrationService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Phone:     req.Phone,
		Location:  req.Location,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		// The account exists even when delivery failed; report it as created
		// so the client can offer a resend instead of a retry.
		if errors.Is(err, service.ErrNotificationDeliveryFailed) && user != nil {
			c.JSON(http.StatusCreated, gin.H{
				"user":       dto.NewUserResponse(user),
				"error_type": "notification_delivery_failed",
				"message":    "account created but the confirmation code could not be delivered",
			})
			return
		}
		respondError(c, err)
		return
	}

	log.Printf("[AuthHandler] user id=%d (%s) registered", user.ID, user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"user":    dto.NewUserResponse(user),
		"message": "confirmation code sent",
	})
}

// ConfirmRegistration verifies the emailed code and activates the account.
func (h *AuthHandler) ConfirmRegistration(c *gin.Context) {
	var req ConfirmRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
		return
	}

	ok, err := h.registrationService.Confirm(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, service.ErrCodeInvalidOrExpired)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// Login authenticates by email or username and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": resp.Token,
		"token_type":   "Bearer",
		"expires_in":   resp.ExpiresIn,
		"user":         dto.NewUserResponse(resp.User),
	})
}

// RequestPasswordReset issues a reset code. The response does not disclose
// whether the email belongs to an account.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
		return
	}

	if _, err := h.passwordService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the email is registered, a reset code has been sent"})
}

// ConfirmPasswordReset applies a new password when the reset code matches.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error_type": "validation_error", "error": err.Error()})
		return
	}

	ok, err := h.passwordService.ConfirmReset(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, service.ErrCodeInvalidOrExpired)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
