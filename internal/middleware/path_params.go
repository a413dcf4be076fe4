package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
)

// RequireTodoID validates the :id path parameter and stores it in context
func RequireTodoID() gin.HandlerFunc {
	return func(c *gin.Context) {
		todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid todo ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTodoID, todoID)
		c.Next()
	}
}

// GetTodoID retrieves the todo ID stored by RequireTodoID
func GetTodoID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyTodoID)
	if !exists {
		return 0, false
	}
	todoID, ok := value.(uint64)
	return todoID, ok
}
