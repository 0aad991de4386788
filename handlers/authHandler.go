package handlers

import (
	"NutriCare/middlewares"
	"NutriCare/repositories"
	"NutriCare/services"
	"NutriCare/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup registers a new dietitian credential.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req utils.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, repositories.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email or User ID already exists."})
		default:
			middlewares.HttpError(c, "Failed to sign up", http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Signup successful!"})
}

// Login verifies a credential and returns the stored profile. No session or
// token is issued.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), credentials.UserID, credentials.Password)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials."})
		default:
			middlewares.HttpError(c, "Failed to log in", http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"userId": user.UserID,
			"name":   user.Name,
			"email":  user.Email,
		},
	})
}
