package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TodoRepositoryTestSuite defines the test suite for GormTodoRepository
type TodoRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *GormTodoRepository
	ctx  context.Context
	now  time.Time
}

// SetupTest runs before each test
func (suite *TodoRepositoryTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	suite.repo = NewTodoRepository(suite.db).(*GormTodoRepository)
	suite.repo.now = func() time.Time { return suite.now }
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Create in-memory SQLite database
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	// Run migrations
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		t.Fatalf("failed to add indexes: %v", err)
	}

	return db
}

// Helper functions to create test data
func (suite *TodoRepositoryTestSuite) createUser(nickname, name string) *models.User {
	user := &models.User{
		Nickname:     nickname,
		PasswordHash: "hashed",
		Name:         name,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TodoRepositoryTestSuite) createTodo(owner *models.User, title string, createdAt time.Time) *models.Todo {
	todo := &models.Todo{
		Title:       title,
		Description: "description of " + title,
		UserID:      owner.ID,
		CreatedAt:   createdAt,
	}
	suite.Require().NoError(suite.db.Create(todo).Error)
	return todo
}

func (suite *TodoRepositoryTestSuite) createNumberedTodos(owner *models.User, n int) []*models.Todo {
	todos := make([]*models.Todo, 0, n)
	for i := 1; i <= n; i++ {
		todos = append(todos, suite.createTodo(owner, fmt.Sprintf("Todo %d번", i), suite.now.Add(-time.Duration(n-i+1)*time.Hour)))
	}
	return todos
}

func (suite *TodoRepositoryTestSuite) thumbUp(user *models.User, todo *models.Todo) {
	suite.Require().NoError(suite.db.Create(&models.ThumbUp{UserID: user.ID, TodoID: todo.ID}).Error)
}

func (suite *TodoRepositoryTestSuite) comment(user *models.User, todo *models.Todo, content string) {
	suite.Require().NoError(suite.db.Create(&models.Comment{UserID: user.ID, TodoID: todo.ID, Content: content}).Error)
}

func ptr[T any](v T) *T {
	return &v
}

func (suite *TodoRepositoryTestSuite) TestList_PaginationArithmetic() {
	owner := suite.createUser("owner", "Owner")
	suite.createNumberedTodos(owner, 10)

	first, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 6}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Len(first.Content, 6)
	suite.Equal(int64(10), first.TotalElements)
	suite.Equal(2, first.TotalPages)
	suite.Equal(0, first.Number)
	suite.False(first.Last)

	second, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 1, Size: 6}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Len(second.Content, 4)
	suite.Equal(2, second.TotalPages)
	suite.True(second.Last)
}

func (suite *TodoRepositoryTestSuite) TestList_PageBeyondData() {
	owner := suite.createUser("owner", "Owner")
	suite.createNumberedTodos(owner, 3)

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 5, Size: 2}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Empty(page.Content)
	suite.NotNil(page.Content)
	suite.Equal(int64(3), page.TotalElements)
	suite.Equal(2, page.TotalPages)
	suite.True(page.Last)
}

func (suite *TodoRepositoryTestSuite) TestList_HugePageIndexIsEmpty() {
	owner := suite.createUser("owner", "Owner")
	suite.createNumberedTodos(owner, 3)

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 1 << 61, Size: 4}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Empty(page.Content)
	suite.Equal(int64(3), page.TotalElements)
	suite.Equal(1, page.TotalPages)
	suite.Equal(1<<61, page.Number)
	suite.True(page.Last)
}

func (suite *TodoRepositoryTestSuite) TestList_Empty() {
	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Empty(page.Content)
	suite.Equal(int64(0), page.TotalElements)
	suite.Equal(0, page.TotalPages)
	suite.True(page.Last)
}

func (suite *TodoRepositoryTestSuite) TestList_DefaultSortNewestFirst() {
	owner := suite.createUser("owner", "Owner")
	todos := suite.createNumberedTodos(owner, 4)

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Content, 4)
	suite.Equal(todos[3].ID, page.Content[0].ID)
	suite.Equal(todos[0].ID, page.Content[3].ID)
	for i := 1; i < len(page.Content); i++ {
		suite.False(page.Content[i].CreatedAt.After(page.Content[i-1].CreatedAt))
	}
}

func (suite *TodoRepositoryTestSuite) TestList_SortByTitle() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "banana", suite.now.Add(-3*time.Hour))
	suite.createTodo(owner, "apple", suite.now.Add(-2*time.Hour))
	suite.createTodo(owner, "cherry", suite.now.Add(-1*time.Hour))

	asc, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12, Sort: &utils.SortRequest{Field: "title", Direction: utils.SortAsc}}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Equal([]string{"apple", "banana", "cherry"}, titles(asc.Content))

	desc, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12, Sort: &utils.SortRequest{Field: "title", Direction: utils.SortDesc}}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Equal([]string{"cherry", "banana", "apple"}, titles(desc.Content))
}

func (suite *TodoRepositoryTestSuite) TestList_UnknownSortFallsBackToNewestFirst() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "old", suite.now.Add(-2*time.Hour))
	suite.createTodo(owner, "new", suite.now.Add(-1*time.Hour))

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12, Sort: &utils.SortRequest{Field: "password", Direction: utils.SortAsc}}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Equal([]string{"new", "old"}, titles(page.Content))
}

func (suite *TodoRepositoryTestSuite) TestList_TitleFilter() {
	owner := suite.createUser("owner", "Owner")
	suite.createNumberedTodos(owner, 10)

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("3번")})
	suite.Require().NoError(err)
	suite.Equal(int64(1), page.TotalElements)
	suite.Require().Len(page.Content, 1)
	suite.Equal("Todo 3번", page.Content[0].Title)
}

func (suite *TodoRepositoryTestSuite) TestList_TitleFilterIsCaseInsensitive() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "Buy MILK", suite.now.Add(-time.Hour))
	suite.createTodo(owner, "Walk dog", suite.now.Add(-2*time.Hour))

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("milk")})
	suite.Require().NoError(err)
	suite.Equal([]string{"Buy MILK"}, titles(page.Content))
}

func (suite *TodoRepositoryTestSuite) TestList_TitleFilterNonASCII() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "Äpfel kaufen", suite.now.Add(-time.Hour))
	suite.createTodo(owner, "Birnen", suite.now.Add(-2*time.Hour))

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("Äpfel")})
	suite.Require().NoError(err)
	suite.Equal([]string{"Äpfel kaufen"}, titles(page.Content))

	page, err = suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("KAUFEN")})
	suite.Require().NoError(err)
	suite.Equal([]string{"Äpfel kaufen"}, titles(page.Content))
}

func (suite *TodoRepositoryTestSuite) TestList_TitleFilterEscapesWildcards() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "100% done", suite.now.Add(-time.Hour))
	suite.createTodo(owner, "snake_case", suite.now.Add(-2*time.Hour))
	suite.createTodo(owner, "plain", suite.now.Add(-3*time.Hour))

	percent, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("%")})
	suite.Require().NoError(err)
	suite.Equal([]string{"100% done"}, titles(percent.Content))

	underscore, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{Title: ptr("_")})
	suite.Require().NoError(err)
	suite.Equal([]string{"snake_case"}, titles(underscore.Content))
}

func (suite *TodoRepositoryTestSuite) TestList_AuthorFilter() {
	alice := suite.createUser("alice", "Alice")
	bob := suite.createUser("bob", "Bob")
	suite.createTodo(alice, "alice todo", suite.now.Add(-time.Hour))
	suite.createTodo(bob, "bob todo", suite.now.Add(-2*time.Hour))

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{AuthorName: ptr("Bob")})
	suite.Require().NoError(err)
	suite.Require().Len(page.Content, 1)
	suite.Equal("bob todo", page.Content[0].Title)
	suite.Equal("Bob", page.Content[0].AuthorName)
}

func (suite *TodoRepositoryTestSuite) TestList_CompletionAndDaysAgoFilters() {
	owner := suite.createUser("owner", "Owner")
	recentDone := suite.createTodo(owner, "recent done", suite.now.Add(-24*time.Hour))
	suite.createTodo(owner, "recent open", suite.now.Add(-48*time.Hour))
	oldDone := suite.createTodo(owner, "old done", suite.now.Add(-10*24*time.Hour))
	suite.Require().NoError(suite.db.Model(&models.Todo{}).
		Where("id IN ?", []uint64{recentDone.ID, oldDone.ID}).
		Update("is_completed", true).Error)

	completed, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{IsCompleted: ptr(true)})
	suite.Require().NoError(err)
	suite.Equal([]string{"recent done", "old done"}, titles(completed.Content))

	recent, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{DaysAgo: ptr(3)})
	suite.Require().NoError(err)
	suite.Equal([]string{"recent done", "recent open"}, titles(recent.Content))

	both, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{IsCompleted: ptr(true), DaysAgo: ptr(3)})
	suite.Require().NoError(err)
	suite.Equal([]string{"recent done"}, titles(both.Content))
	suite.Equal(int64(1), both.TotalElements)
}

func (suite *TodoRepositoryTestSuite) TestList_ThumbUpCounts() {
	owner := suite.createUser("owner", "Owner")
	popular := suite.createTodo(owner, "popular", suite.now.Add(-time.Hour))
	suite.createTodo(owner, "ignored", suite.now.Add(-2*time.Hour))
	for i := 0; i < 5; i++ {
		fan := suite.createUser(fmt.Sprintf("fan%d", i), fmt.Sprintf("Fan %d", i))
		suite.thumbUp(fan, popular)
	}

	page, err := suite.repo.List(suite.ctx, utils.PageRequest{Page: 0, Size: 12}, TodoFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Content, 2)
	suite.Equal("popular", page.Content[0].Title)
	suite.Equal(int64(5), page.Content[0].ThumbUpCount)
	suite.Equal("ignored", page.Content[1].Title)
	suite.Equal(int64(0), page.Content[1].ThumbUpCount)

	count, err := NewThumbUpRepository(suite.db).CountByTodoID(suite.ctx, popular.ID)
	suite.Require().NoError(err)
	suite.Equal(page.Content[0].ThumbUpCount, count)
}

func (suite *TodoRepositoryTestSuite) TestFindDetail_LoadsCommentsOldestFirst() {
	owner := suite.createUser("owner", "Owner")
	commenter := suite.createUser("commenter", "Commenter")
	todo := suite.createTodo(owner, "with comments", suite.now.Add(-time.Hour))
	suite.comment(commenter, todo, "first")
	suite.comment(owner, todo, "second")

	detail, err := suite.repo.FindDetail(suite.ctx, todo.ID)
	suite.Require().NoError(err)
	suite.Equal("Owner", detail.User.Name)
	suite.Require().Len(detail.Comments, 2)
	suite.Equal("first", detail.Comments[0].Content)
	suite.Equal("Commenter", detail.Comments[0].User.Name)
	suite.Equal("second", detail.Comments[1].Content)
}

func (suite *TodoRepositoryTestSuite) TestFindDetail_NotFound() {
	_, err := suite.repo.FindDetail(suite.ctx, 999)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TodoRepositoryTestSuite) TestUpdate_KeepsCreatedAt() {
	owner := suite.createUser("owner", "Owner")
	created := suite.now.Add(-72 * time.Hour)
	todo := suite.createTodo(owner, "before", created)

	todo.Title = "after"
	todo.CreatedAt = suite.now
	suite.Require().NoError(suite.repo.Update(suite.ctx, todo))

	reloaded, err := suite.repo.FindByID(suite.ctx, todo.ID)
	suite.Require().NoError(err)
	suite.Equal("after", reloaded.Title)
	suite.True(reloaded.CreatedAt.Equal(created))
}

func (suite *TodoRepositoryTestSuite) TestDeleteCascade_RemovesOnlyTargetAndDependents() {
	owner := suite.createUser("owner", "Owner")
	other := suite.createUser("other", "Other")
	target := suite.createTodo(owner, "target", suite.now.Add(-time.Hour))
	survivor := suite.createTodo(owner, "survivor", suite.now.Add(-2*time.Hour))

	suite.thumbUp(owner, target)
	suite.thumbUp(other, target)
	suite.thumbUp(other, survivor)
	suite.comment(other, target, "on target")
	suite.comment(other, survivor, "on survivor")

	suite.Require().NoError(suite.repo.DeleteCascade(suite.ctx, target.ID))

	var count int64
	suite.db.Model(&models.Todo{}).Where("id = ?", target.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.ThumbUp{}).Where("todo_id = ?", target.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Comment{}).Where("todo_id = ?", target.ID).Count(&count)
	suite.Equal(int64(0), count)

	suite.db.Model(&models.Todo{}).Where("id = ?", survivor.ID).Count(&count)
	suite.Equal(int64(1), count)
	suite.db.Model(&models.ThumbUp{}).Where("todo_id = ?", survivor.ID).Count(&count)
	suite.Equal(int64(1), count)
	suite.db.Model(&models.Comment{}).Where("todo_id = ?", survivor.ID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *TodoRepositoryTestSuite) TestDeleteCascade_MissingTodoIsNoop() {
	owner := suite.createUser("owner", "Owner")
	suite.createTodo(owner, "keep", suite.now)

	suite.Require().NoError(suite.repo.DeleteCascade(suite.ctx, 12345))

	var count int64
	suite.db.Model(&models.Todo{}).Count(&count)
	suite.Equal(int64(1), count)
}

func titles(rows []models.TodoSummary) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Title
	}
	return out
}

// TestTodoRepositoryTestSuite runs the test suite
func TestTodoRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TodoRepositoryTestSuite))
}
