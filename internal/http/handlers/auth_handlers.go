package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/http/middleware"
)

// AuthHandlers handles the OTP registration and login HTTP requests
type AuthHandlers struct {
	registrationSvc domain.RegistrationService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(registrationSvc domain.RegistrationService) *AuthHandlers {
	return &AuthHandlers{registrationSvc: registrationSvc}
}

// SendOTPRequest represents a passcode request
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents a passcode verification request
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	VerificationTicket string `json:"verification_ticket"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTP issues a passcode and reports whether the email went out
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.registrationSvc.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
		return
	}

	message := "OTP sent successfully"
	if !result.Delivered {
		message = "OTP generated but email delivery failed"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"issued":    result.Issued,
			"delivered": result.Delivered,
		},
	})
}

// VerifyOTP consumes a passcode and hands back a verification ticket
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.registrationSvc.VerifyCode(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and OTP are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "OTP verification failed"})
		return
	}

	if !result.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"message": result.Reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified successfully",
		"data": gin.H{
			"verified":            true,
			"verification_ticket": result.Ticket,
		},
	})
}

// Register creates the account once the email has been verified
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.registrationSvc.CompleteRegistration(c.Request.Context(), req.Name, req.Email, req.Password, req.VerificationTicket)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		case errors.Is(err, domain.ErrVerificationRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email verification required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    authPayload(result),
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.registrationSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    authPayload(result),
	})
}

// Me returns the profile of the authenticated caller
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID not found in context"})
		return
	}

	user, err := h.registrationSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.Public()})
}

func authPayload(result *domain.AuthResult) gin.H {
	return gin.H{
		"user":  result.User.Public(),
		"token": result.Token,
	}
}
