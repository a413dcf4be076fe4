package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// CommentHandler serves comments on todos.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetComment returns one comment of a todo
func (h *CommentHandler) GetComment(c *gin.Context) {
	todoID, _ := middleware.GetTodoID(c)
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), todoID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// CreateComment adds a comment by the caller
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, todoID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment edits the caller's comment
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), userID, todoID, commentID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes the caller's comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		apierrors.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), userID, todoID, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
