package dto

import (
	"time"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/utils"
)

// TodoDTO represents a todo in list and mutation responses
type TodoDTO struct {
	ID           uint64    `json:"id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IsCompleted  bool      `json:"is_completed"`
	ThumbUpCount int64     `json:"thumb_up_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// TodoDetailDTO represents a single todo together with its comments
type TodoDetailDTO struct {
	TodoDTO
	Comments []CommentDTO `json:"comments"`
}

// TodoPageResponse is one page of todos
type TodoPageResponse = utils.Page[TodoDTO]

// ToTodoDTO converts a TodoSummary to TodoDTO
func ToTodoDTO(summary models.TodoSummary) TodoDTO {
	return TodoDTO{
		ID:           summary.ID,
		AuthorName:   summary.AuthorName,
		Title:        summary.Title,
		Description:  summary.Description,
		IsCompleted:  summary.IsCompleted,
		ThumbUpCount: summary.ThumbUpCount,
		CreatedAt:    summary.CreatedAt,
	}
}

// ToTodoDetailDTO converts a todo with its User and Comments loaded
func ToTodoDetailDTO(todo models.Todo, thumbUpCount int64) TodoDetailDTO {
	return TodoDetailDTO{
		TodoDTO: TodoDTO{
			ID:           todo.ID,
			AuthorName:   todo.User.Name,
			Title:        todo.Title,
			Description:  todo.Description,
			IsCompleted:  todo.IsCompleted,
			ThumbUpCount: thumbUpCount,
			CreatedAt:    todo.CreatedAt,
		},
		Comments: ToCommentDTOs(todo.Comments),
	}
}

// ToTodoPageResponse converts a page of summaries
func ToTodoPageResponse(page utils.Page[models.TodoSummary]) TodoPageResponse {
	return utils.MapPage(page, ToTodoDTO)
}
