package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// UserHandler serves user profiles.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser returns the caller's own profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	callerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), callerID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser replaces the caller's profile image.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,max=1000"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfileImage(c.Request.Context(), callerID, userID, req.ProfileImageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
