package dto

import (
	"time"

	"github.com/yukikurage/todo-api/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID         uint64    `json:"id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCommentDTO converts a Comment model with its User loaded to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:         comment.ID,
		Content:    comment.Content,
		AuthorName: comment.User.Name,
		CreatedAt:  comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		out[i] = ToCommentDTO(comment)
	}
	return out
}
