package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	todoSummaryColumns = "todos.id, users.name AS author_name, todos.title, todos.description, " +
		"todos.is_completed, todos.created_at, COUNT(thumb_ups.id) AS thumb_up_count"
	todoSummaryGroupBy = "todos.id, users.name, todos.title, todos.description, todos.is_completed, todos.created_at"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db, now: time.Now}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// FindByID finds a todo by ID with optional preloading
func (r *GormTodoRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Todo, error) {
	var todo models.Todo
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&todo, id).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// FindDetail finds a todo with its owner and its comments, oldest comment first
func (r *GormTodoRepository) FindDetail(ctx context.Context, id uint64) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User").
		First(&todo, id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves one page of todos matching the filter. Each row carries the
// owner's display name and the number of thumbs-ups, computed with a left join
// so todos without any thumbs-up report zero.
func (r *GormTodoRepository) List(ctx context.Context, req utils.PageRequest, filter TodoFilter) (utils.Page[models.TodoSummary], error) {
	query := r.db.WithContext(ctx).
		Model(&models.Todo{}).
		Joins("JOIN users ON users.id = todos.user_id")

	if predicates := BuildTodoPredicates(filter, r.now()); len(predicates) > 0 {
		where, args, err := predicates.ToSql()
		if err != nil {
			return utils.Page[models.TodoSummary]{}, fmt.Errorf("failed to build todo filter: %w", err)
		}
		query = query.Where(where, args...)
	}

	// Share the filtered base between the count and the data query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Page[models.TodoSummary]{}, err
	}

	rows := []models.TodoSummary{}
	if req.PastEnd(total) {
		return utils.NewPage(rows, req, total), nil
	}

	err := query.
		Select(todoSummaryColumns).
		Joins("LEFT JOIN thumb_ups ON thumb_ups.todo_id = todos.id").
		Group(todoSummaryGroupBy).
		Order(ResolveTodoSort(req.Sort).String()).
		Scopes(database.Paginate(req)).
		Scan(&rows).Error
	if err != nil {
		return utils.Page[models.TodoSummary]{}, err
	}

	return utils.NewPage(rows, req, total), nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(todo).Error
}

// DeleteCascade deletes the todo's thumbs-ups, then its comments, then the todo
// itself, in one transaction. It does not check existence or ownership.
func (r *GormTodoRepository) DeleteCascade(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&models.ThumbUp{}).Error; err != nil {
			return fmt.Errorf("failed to delete thumb-ups: %w", err)
		}

		if err := tx.Where("todo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		if err := tx.Delete(&models.Todo{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}

		return nil
	})
}
