package controllers

import (
	"NutriCare/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes the authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/signup", ac.Handler.Signup)
	router.POST("/api/login", ac.Handler.Login)
}
