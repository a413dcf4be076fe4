package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleLength       = fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, constants.MaxTitleLength)
	ErrDescriptionLength = fmt.Errorf("%w: description must be 1-%d characters", ErrInvalidInput, constants.MaxDescriptionLength)
)

// TodoService handles todo and thumbs-up business logic
type TodoService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

// NewTodoService creates a new TodoService
func NewTodoService(repos repository.Repositories, uow repository.UnitOfWork) *TodoService {
	return &TodoService{
		repos: repos,
		uow:   uow,
	}
}

// TodoInput represents the editable fields of a todo
type TodoInput struct {
	Title       string
	Description string
}

func (in TodoInput) validate() error {
	if n := utf8.RuneCountInString(in.Title); strings.TrimSpace(in.Title) == "" || n > constants.MaxTitleLength {
		return ErrTitleLength
	}
	if n := utf8.RuneCountInString(in.Description); n == 0 || n > constants.MaxDescriptionLength {
		return ErrDescriptionLength
	}
	return nil
}

// TodoDetail is a todo with its owner, its comments and its thumbs-up count
type TodoDetail struct {
	Todo         *models.Todo
	ThumbUpCount int64
}

// ListTodos returns one page of todos matching the filter
func (s *TodoService) ListTodos(ctx context.Context, req utils.PageRequest, filter repository.TodoFilter) (utils.Page[models.TodoSummary], error) {
	if filter.DaysAgo != nil && *filter.DaysAgo < 0 {
		return utils.Page[models.TodoSummary]{}, fmt.Errorf("%w: daysAgo must not be negative", ErrInvalidInput)
	}

	page, err := s.repos.Todos.List(ctx, req, filter)
	if err != nil {
		return utils.Page[models.TodoSummary]{}, fmt.Errorf("failed to list todos: %w", err)
	}
	return page, nil
}

// GetTodo returns a todo with its comments and thumbs-up count
func (s *TodoService) GetTodo(ctx context.Context, todoID uint64) (*TodoDetail, error) {
	todo, err := s.repos.Todos.FindDetail(ctx, todoID)
	if err != nil {
		return nil, todoLookupError(err, todoID)
	}

	count, err := s.repos.ThumbUps.CountByTodoID(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to count thumb-ups: %w", err)
	}

	return &TodoDetail{Todo: todo, ThumbUpCount: count}, nil
}

// CreateTodo creates a new todo owned by ownerID
func (s *TodoService) CreateTodo(ctx context.Context, ownerID uint64, input TodoInput) (*models.TodoSummary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	owner, err := s.repos.Users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, userLookupError(err, ownerID)
	}

	todo := &models.Todo{
		Title:       input.Title,
		Description: input.Description,
		UserID:      owner.ID,
	}
	if err := s.repos.Todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	todo.User = *owner
	return summarize(todo, 0), nil
}

// UpdateTodo replaces the title and description of a todo owned by callerID
func (s *TodoService) UpdateTodo(ctx context.Context, callerID, todoID uint64, input TodoInput) (*models.TodoSummary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	return s.mutateOwnedTodo(ctx, callerID, todoID, func(todo *models.Todo) {
		todo.Title = input.Title
		todo.Description = input.Description
	})
}

// ToggleTodo flips the completion flag of a todo owned by callerID
func (s *TodoService) ToggleTodo(ctx context.Context, callerID, todoID uint64) (*models.TodoSummary, error) {
	return s.mutateOwnedTodo(ctx, callerID, todoID, func(todo *models.Todo) {
		todo.IsCompleted = !todo.IsCompleted
	})
}

// DeleteTodo deletes a todo owned by callerID together with its comments and thumbs-ups
func (s *TodoService) DeleteTodo(ctx context.Context, callerID, todoID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		todo, err := repos.Todos.FindByID(ctx, todoID)
		if err != nil {
			return todoLookupError(err, todoID)
		}
		if !isOwner(todo.UserID, callerID) {
			return fmt.Errorf("%w: you do not own this todo", ErrForbidden)
		}

		if err := repos.Todos.DeleteCascade(ctx, todo.ID); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}
		return nil
	})
}

// AddReaction records a thumbs-up from callerID on a todo
func (s *TodoService) AddReaction(ctx context.Context, callerID, todoID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		exists, err := repos.ThumbUps.ExistsByUserAndTodo(ctx, callerID, todoID)
		if err != nil {
			return fmt.Errorf("failed to check thumb-up: %w", err)
		}
		if exists {
			return ErrAlreadyThumbedUp
		}

		if _, err := repos.Users.FindByID(ctx, callerID); err != nil {
			return userLookupError(err, callerID)
		}
		if _, err := repos.Todos.FindByID(ctx, todoID); err != nil {
			return todoLookupError(err, todoID)
		}

		thumbUp := &models.ThumbUp{UserID: callerID, TodoID: todoID}
		if err := repos.ThumbUps.Create(ctx, thumbUp); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyThumbedUp
			}
			return fmt.Errorf("failed to create thumb-up: %w", err)
		}
		return nil
	})
}

// RemoveReaction withdraws the thumbs-up callerID gave to a todo
func (s *TodoService) RemoveReaction(ctx context.Context, callerID, todoID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		thumbUp, err := repos.ThumbUps.FindByUserAndTodo(ctx, callerID, todoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrThumbUpNotFound
			}
			return fmt.Errorf("failed to find thumb-up: %w", err)
		}

		if err := repos.ThumbUps.Delete(ctx, thumbUp.ID); err != nil {
			return fmt.Errorf("failed to delete thumb-up: %w", err)
		}
		return nil
	})
}

// mutateOwnedTodo loads a todo, checks ownership, applies fn and saves the
// result in one transaction.
func (s *TodoService) mutateOwnedTodo(ctx context.Context, callerID, todoID uint64, fn func(todo *models.Todo)) (*models.TodoSummary, error) {
	var summary *models.TodoSummary

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		todo, err := repos.Todos.FindByID(ctx, todoID, "User")
		if err != nil {
			return todoLookupError(err, todoID)
		}
		if !isOwner(todo.UserID, callerID) {
			return fmt.Errorf("%w: you do not own this todo", ErrForbidden)
		}

		fn(todo)
		if err := repos.Todos.Update(ctx, todo); err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}

		count, err := repos.ThumbUps.CountByTodoID(ctx, todo.ID)
		if err != nil {
			return fmt.Errorf("failed to count thumb-ups: %w", err)
		}

		summary = summarize(todo, count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func summarize(todo *models.Todo, thumbUpCount int64) *models.TodoSummary {
	return &models.TodoSummary{
		ID:           todo.ID,
		AuthorName:   todo.User.Name,
		Title:        todo.Title,
		Description:  todo.Description,
		IsCompleted:  todo.IsCompleted,
		ThumbUpCount: thumbUpCount,
		CreatedAt:    todo.CreatedAt,
	}
}

func todoLookupError(err error, todoID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(KindTodo, todoID)
	}
	return fmt.Errorf("failed to find todo: %w", err)
}

func userLookupError(err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(KindUser, userID)
	}
	return fmt.Errorf("failed to find user: %w", err)
}
