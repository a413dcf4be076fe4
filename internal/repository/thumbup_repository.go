package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormThumbUpRepository is a GORM implementation of ThumbUpRepository
type GormThumbUpRepository struct {
	db *gorm.DB
}

// NewThumbUpRepository creates a new ThumbUpRepository
func NewThumbUpRepository(db *gorm.DB) ThumbUpRepository {
	return &GormThumbUpRepository{db: db}
}

// Create records a thumbs-up. A second thumbs-up by the same user on the same
// todo violates idx_thumb_ups_user_todo and surfaces as gorm.ErrDuplicatedKey.
func (r *GormThumbUpRepository) Create(ctx context.Context, thumbUp *models.ThumbUp) error {
	return r.db.WithContext(ctx).Create(thumbUp).Error
}

// FindByUserAndTodo finds the thumbs-up a user gave to a todo
func (r *GormThumbUpRepository) FindByUserAndTodo(ctx context.Context, userID, todoID uint64) (*models.ThumbUp, error) {
	var thumbUp models.ThumbUp
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		First(&thumbUp).Error; err != nil {
		return nil, err
	}
	return &thumbUp, nil
}

// ExistsByUserAndTodo reports whether the user already gave the todo a thumbs-up
func (r *GormThumbUpRepository) ExistsByUserAndTodo(ctx context.Context, userID, todoID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ThumbUp{}).
		Where("user_id = ? AND todo_id = ?", userID, todoID).
		Count(&count).Error
	return count > 0, err
}

// CountByTodoID counts the thumbs-ups on a todo
func (r *GormThumbUpRepository) CountByTodoID(ctx context.Context, todoID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ThumbUp{}).
		Where("todo_id = ?", todoID).
		Count(&count).Error
	return count, err
}

// Delete removes a thumbs-up
func (r *GormThumbUpRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.ThumbUp{}, id).Error
}
