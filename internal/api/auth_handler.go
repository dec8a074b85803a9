package api

import (
	"errors"
	"fmt"
	"net/http"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetEligibilityRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UserResponse excludes sensitive info like the stored password.
type UserResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	PhoneNumber  string      `json:"phoneNumber"`
	Credits      int         `json:"credits"`
	ProfileImage string      `json:"profileImage,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Login authenticates a user and returns a JWT token plus their record.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// ResetEligibility checks whether the email and phone number match an
// existing user, gating the password-reset flow.
func (h *AuthHandler) ResetEligibility(c *gin.Context) {
	var req ResetEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	eligible, err := h.authService.CanResetPassword(c.Request.Context(), req.Email, req.PhoneNumber)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not check reset eligibility")
		return
	}
	if !eligible {
		abortWithError(c, http.StatusNotFound, "No matching record found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": true})
}

// MapUserToResponse converts a domain User to a UserResponse DTO,
// excluding the password.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		PhoneNumber:  user.PhoneNumber,
		Credits:      user.Credits,
		ProfileImage: user.ProfileImage,
	}
}
