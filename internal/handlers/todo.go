package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/utils"
)

// TodoHandler serves todos and their thumbs-ups.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

type todoRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=500"`
	Description string `json:"description" binding:"required,min=1,max=5000"`
}

// ListTodos returns one page of all todos, newest first unless sort says otherwise
func (h *TodoHandler) ListTodos(c *gin.Context) {
	h.list(c, repository.TodoFilter{})
}

// SearchTodos returns one page of todos matching the title, nickname,
// isCompleted and daysAgo query parameters
func (h *TodoHandler) SearchTodos(c *gin.Context) {
	filter, err := parseTodoFilter(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	h.list(c, filter)
}

func (h *TodoHandler) list(c *gin.Context, filter repository.TodoFilter) {
	page, err := h.todoService.ListTodos(c.Request.Context(), utils.GetPageRequest(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoPageResponse(page))
}

// GetTodo returns a todo with its comments
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todoID, _ := middleware.GetTodoID(c)

	detail, err := h.todoService.GetTodo(c.Request.Context(), todoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDetailDTO(*detail.Todo, detail.ThumbUpCount))
}

// CreateTodo creates a new todo owned by the caller
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.todoService.CreateTodo(c.Request.Context(), userID, services.TodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*summary))
}

// UpdateTodo replaces the title and description of the caller's todo
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.todoService.UpdateTodo(c.Request.Context(), userID, todoID, services.TodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*summary))
}

// ToggleTodo flips the completion flag of the caller's todo
func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	summary, err := h.todoService.ToggleTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*summary))
}

// DeleteTodo deletes the caller's todo with its comments and thumbs-ups
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	if err := h.todoService.DeleteTodo(c.Request.Context(), userID, todoID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ThumbUp gives the todo a thumbs-up from the caller
func (h *TodoHandler) ThumbUp(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	if err := h.todoService.AddReaction(c.Request.Context(), userID, todoID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// CancelThumbUp withdraws the caller's thumbs-up
func (h *TodoHandler) CancelThumbUp(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	todoID, _ := middleware.GetTodoID(c)

	if err := h.todoService.RemoveReaction(c.Request.Context(), userID, todoID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type queryError string

func (e queryError) Error() string { return string(e) }

// parseTodoFilter reads the search filters. Empty parameters are treated as absent.
func parseTodoFilter(c *gin.Context) (repository.TodoFilter, error) {
	var filter repository.TodoFilter

	if title := c.Query("title"); title != "" {
		filter.Title = &title
	}
	if nickname := c.Query("nickname"); nickname != "" {
		filter.AuthorName = &nickname
	}
	if raw := c.Query("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, queryError("isCompleted must be true or false")
		}
		filter.IsCompleted = &completed
	}
	if raw := c.Query("daysAgo"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return filter, queryError("daysAgo must be a non-negative integer")
		}
		days = min(days, constants.MaxDaysAgo)
		filter.DaysAgo = &days
	}

	return filter, nil
}
