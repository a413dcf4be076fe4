package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/utils"
)

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(ctx context.Context, todo *models.Todo) error

	// FindByID finds a todo by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Todo, error)

	// FindDetail finds a todo with its owner and its comments (oldest first) with their authors
	FindDetail(ctx context.Context, id uint64) (*models.Todo, error)

	// List returns one page of todos matching the filter, with owner names and thumbs-up counts
	List(ctx context.Context, req utils.PageRequest, filter TodoFilter) (utils.Page[models.TodoSummary], error)

	// Update updates a todo
	Update(ctx context.Context, todo *models.Todo) error

	// DeleteCascade deletes a todo together with its thumbs-ups and comments
	DeleteCascade(ctx context.Context, id uint64) error
}

// TodoFilter holds the optional search filters for listing todos.
// A nil field contributes no constraint.
type TodoFilter struct {
	Title       *string
	AuthorName  *string
	IsCompleted *bool
	DaysAgo     *int
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByIDAndTodoID finds a comment that belongs to the given todo, with its author
	FindByIDAndTodoID(ctx context.Context, id, todoID uint64) (*models.Comment, error)

	// Update updates a comment
	Update(ctx context.Context, comment *models.Comment) error

	// Delete deletes a comment
	Delete(ctx context.Context, id uint64) error
}

// ThumbUpRepository defines the interface for thumbs-up data access
type ThumbUpRepository interface {
	// Create records a thumbs-up
	Create(ctx context.Context, thumbUp *models.ThumbUp) error

	// FindByUserAndTodo finds the thumbs-up a user gave to a todo
	FindByUserAndTodo(ctx context.Context, userID, todoID uint64) (*models.ThumbUp, error)

	// ExistsByUserAndTodo reports whether the user already gave the todo a thumbs-up
	ExistsByUserAndTodo(ctx context.Context, userID, todoID uint64) (bool, error)

	// CountByTodoID counts the thumbs-ups on a todo
	CountByTodoID(ctx context.Context, todoID uint64) (int64, error)

	// Delete removes a thumbs-up
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByNickname finds a user by nickname
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)

	// ExistsByNickname reports whether the nickname is taken
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)

	// Update updates a user
	Update(ctx context.Context, user *models.User) error
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Users    UserRepository
	Todos    TodoRepository
	Comments CommentRepository
	ThumbUps ThumbUpRepository
}

// UnitOfWork runs a function inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
