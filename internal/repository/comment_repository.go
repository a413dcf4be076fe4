package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByIDAndTodoID finds a comment that belongs to the given todo, with its author.
// A comment that exists under another todo is reported as not found.
func (r *GormCommentRepository) FindByIDAndTodoID(ctx context.Context, id, todoID uint64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("comments.id = ? AND comments.todo_id = ?", id, todoID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
