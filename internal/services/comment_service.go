package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

var ErrContentRequired = fmt.Errorf("%w: content is required", ErrInvalidInput)

// CommentService handles comment business logic
type CommentService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

// NewCommentService creates a new CommentService
func NewCommentService(repos repository.Repositories, uow repository.UnitOfWork) *CommentService {
	return &CommentService{
		repos: repos,
		uow:   uow,
	}
}

// GetComment returns a comment on the given todo
func (s *CommentService) GetComment(ctx context.Context, todoID, commentID uint64) (*models.Comment, error) {
	comment, err := s.repos.Comments.FindByIDAndTodoID(ctx, commentID, todoID)
	if err != nil {
		return nil, commentLookupError(err, commentID)
	}
	return comment, nil
}

// CreateComment adds a comment by callerID to a todo
func (s *CommentService) CreateComment(ctx context.Context, callerID, todoID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	todo, err := s.repos.Todos.FindByID(ctx, todoID)
	if err != nil {
		return nil, todoLookupError(err, todoID)
	}
	user, err := s.repos.Users.FindByID(ctx, callerID)
	if err != nil {
		return nil, userLookupError(err, callerID)
	}

	comment := &models.Comment{
		Content: content,
		TodoID:  todo.ID,
		UserID:  user.ID,
	}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.User = *user
	return comment, nil
}

// UpdateComment replaces the content of a comment owned by callerID
func (s *CommentService) UpdateComment(ctx context.Context, callerID, todoID, commentID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	var updated *models.Comment
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		comment, err := s.findOwnedComment(ctx, repos, callerID, todoID, commentID)
		if err != nil {
			return err
		}

		comment.Content = content
		if err := repos.Comments.Update(ctx, comment); err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}
		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComment deletes a comment owned by callerID
func (s *CommentService) DeleteComment(ctx context.Context, callerID, todoID, commentID uint64) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		comment, err := s.findOwnedComment(ctx, repos, callerID, todoID, commentID)
		if err != nil {
			return err
		}

		if err := repos.Comments.Delete(ctx, comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
}

func (s *CommentService) findOwnedComment(ctx context.Context, repos repository.Repositories, callerID, todoID, commentID uint64) (*models.Comment, error) {
	comment, err := repos.Comments.FindByIDAndTodoID(ctx, commentID, todoID)
	if err != nil {
		return nil, commentLookupError(err, commentID)
	}
	if !isOwner(comment.UserID, callerID) {
		return nil, fmt.Errorf("%w: you do not own this comment", ErrForbidden)
	}
	return comment, nil
}

func commentLookupError(err error, commentID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(KindComment, commentID)
	}
	return fmt.Errorf("failed to find comment: %w", err)
}
