package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yukikurage/todo-api/internal/utils"
)

const likeEscapeChar = "!"

var likeEscaper = strings.NewReplacer(
	likeEscapeChar, likeEscapeChar+likeEscapeChar,
	"%", likeEscapeChar+"%",
	"_", likeEscapeChar+"_",
)

// BuildTodoPredicates turns the filter into a conjunction of conditions on the
// todos/users join. Unset filters are left out, so an empty filter yields an
// empty conjunction.
func BuildTodoPredicates(filter TodoFilter, now time.Time) squirrel.And {
	predicates := squirrel.And{}

	if filter.Title != nil {
		predicates = append(predicates, titleContains(*filter.Title))
	}
	if filter.AuthorName != nil {
		predicates = append(predicates, squirrel.Eq{"users.name": *filter.AuthorName})
	}
	if filter.IsCompleted != nil {
		predicates = append(predicates, squirrel.Eq{"todos.is_completed": *filter.IsCompleted})
	}
	if filter.DaysAgo != nil {
		cutoff := now.AddDate(0, 0, -*filter.DaysAgo)
		predicates = append(predicates, squirrel.Gt{"todos.created_at": cutoff})
	}

	return predicates
}

// titleContains lowercases both sides with the database's LOWER so the column
// and the pattern are folded by the same rules on every driver.
func titleContains(title string) squirrel.Sqlizer {
	pattern := "%" + likeEscaper.Replace(title) + "%"
	return squirrel.Expr("LOWER(todos.title) LIKE LOWER(?) ESCAPE '"+likeEscapeChar+"'", pattern)
}

// Sortable todo fields, keyed by their API name.
var todoSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
}

// TodoSort is a resolved ordering over the todos table.
type TodoSort struct {
	Column string
	Desc   bool
}

// DefaultTodoSort orders newest first.
var DefaultTodoSort = TodoSort{Column: "created_at", Desc: true}

// ResolveTodoSort maps a requested sort onto a whitelisted column. Missing or
// unknown fields fall back to DefaultTodoSort.
func ResolveTodoSort(req *utils.SortRequest) TodoSort {
	if req == nil {
		return DefaultTodoSort
	}
	column, ok := todoSortColumns[req.Field]
	if !ok {
		return DefaultTodoSort
	}
	return TodoSort{Column: column, Desc: req.Direction != utils.SortAsc}
}

// String renders the ORDER BY expression. todos.id breaks ties in the same direction.
func (s TodoSort) String() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("todos.%s %s, todos.id %s", s.Column, dir, dir)
}
