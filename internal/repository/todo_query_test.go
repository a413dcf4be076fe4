package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/utils"
)

func TestBuildTodoPredicates_EmptyFilter(t *testing.T) {
	predicates := BuildTodoPredicates(TodoFilter{}, time.Now())
	assert.Empty(t, predicates)
}

func TestBuildTodoPredicates_CombinesActiveFilters(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	predicates := BuildTodoPredicates(TodoFilter{
		Title:       ptr("Milk"),
		AuthorName:  ptr("Alice"),
		IsCompleted: ptr(false),
		DaysAgo:     ptr(7),
	}, now)
	require.Len(t, predicates, 4)

	sql, args, err := predicates.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"(LOWER(todos.title) LIKE LOWER(?) ESCAPE '!' AND users.name = ? AND todos.is_completed = ? AND todos.created_at > ?)",
		sql,
	)
	assert.Equal(t, []interface{}{"%Milk%", "Alice", false, now.AddDate(0, 0, -7)}, args)
}

func TestBuildTodoPredicates_EscapesLikeWildcards(t *testing.T) {
	predicates := BuildTodoPredicates(TodoFilter{Title: ptr("50%_off!")}, time.Now())

	_, args, err := predicates.ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"%50!%!_off!!%"}, args)
}

func TestBuildTodoPredicates_ZeroDaysAgoMeansSinceNow(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	_, args, err := BuildTodoPredicates(TodoFilter{DaysAgo: ptr(0)}, now).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{now}, args)
}

func TestResolveTodoSort(t *testing.T) {
	tests := []struct {
		name string
		req  *utils.SortRequest
		want string
	}{
		{"no sort", nil, "todos.created_at DESC, todos.id DESC"},
		{"created asc", &utils.SortRequest{Field: "createdAt", Direction: utils.SortAsc}, "todos.created_at ASC, todos.id ASC"},
		{"created desc", &utils.SortRequest{Field: "createdAt", Direction: utils.SortDesc}, "todos.created_at DESC, todos.id DESC"},
		{"title asc", &utils.SortRequest{Field: "title", Direction: utils.SortAsc}, "todos.title ASC, todos.id ASC"},
		{"title desc", &utils.SortRequest{Field: "title", Direction: utils.SortDesc}, "todos.title DESC, todos.id DESC"},
		{"unknown field", &utils.SortRequest{Field: "description", Direction: utils.SortAsc}, "todos.created_at DESC, todos.id DESC"},
		{"injection attempt", &utils.SortRequest{Field: "title; DROP TABLE todos", Direction: utils.SortAsc}, "todos.created_at DESC, todos.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTodoSort(tt.req).String())
		})
	}
}
