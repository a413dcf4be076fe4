package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// respondServiceError maps a service error onto the HTTP error response
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidOperation):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredential):
		apierrors.InvalidCredentials(c, err.Error())
	default:
		log.Printf("request %s: %v", middleware.GetRequestID(c), err)
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// fieldViolation names a request field and the binding rule it failed
type fieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// respondBindError reports a request body that failed to bind. Validation
// failures list the offending fields; malformed JSON gets a plain message.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	violations := make([]fieldViolation, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, fieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}
	apierrors.BadRequestWithDetails(c, "Invalid request body", violations)
}
