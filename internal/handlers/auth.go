package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Nickname        string  `json:"nickname" binding:"required,min=1,max=50"`
		Password        string  `json:"password" binding:"required"`
		ConfirmPassword string  `json:"confirm_password" binding:"required"`
		Name            string  `json:"name" binding:"max=100"`
		ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,max=1000"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Nickname:        req.Nickname,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// CheckNickname reports whether a nickname is still free.
func (h *AuthHandler) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		apierrors.BadRequest(c, "nickname is required")
		return
	}

	available, err := h.authService.CheckNickname(c.Request.Context(), nickname)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Nickname is available"
	if !available {
		message = "Nickname already exists"
	}
	c.JSON(http.StatusOK, dto.NicknameCheckResponse{
		Nickname:  nickname,
		Available: available,
		Message:   message,
	})
}

// Login authenticates a user, returns an access token and stores it in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Nickname string `json:"nickname" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyAccessToken, result.AccessToken)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        dto.ToUserDTO(*result.User),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
