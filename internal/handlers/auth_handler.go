package handlers

import (
	"errors"
	"net/http"

	"taxigo/internal/models"
	"taxigo/internal/services"
	"taxigo/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var request services.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	response, err := h.authService.Signup(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, "invalid signup request")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, "invalid login request")
		return
	}

	c.JSON(http.StatusOK, response)
}
