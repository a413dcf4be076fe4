package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	DB           *gorm.DB
	UnitOfWork   repository.UnitOfWork
	Tokens       *auth.TokenManager
	SessionStore sessions.Store
}

// New wires services and handlers and registers every route on engine.
func New(engine *gin.Engine, deps Deps) *gin.Engine {
	repos := repository.NewRepositories(deps.DB)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(repos.Users, deps.Tokens))
	userHandler := handlers.NewUserHandler(services.NewUserService(repos.Users))
	todoHandler := handlers.NewTodoHandler(services.NewTodoService(repos, deps.UnitOfWork))
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(repos, deps.UnitOfWork))

	requireAuth := middleware.RequireAuth(deps.Tokens)
	requireTodoID := middleware.RequireTodoID()

	engine.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			apierrors.ServiceUnavailable(c, "Database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	api := engine.Group("/api")
	{
		// Auth routes (public)
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		users := api.Group("/users")
		{
			users.GET("/nickname", authHandler.CheckNickname)
			users.GET("/:id", requireAuth, userHandler.GetUser)
			users.PUT("/:id", requireAuth, userHandler.UpdateUser)
		}

		// Reads are public, writes need an access token
		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.ListTodos)
			todos.GET("/search", todoHandler.SearchTodos)
			todos.POST("", requireAuth, todoHandler.CreateTodo)
			todos.GET("/:id", requireTodoID, todoHandler.GetTodo)
			todos.PUT("/:id", requireAuth, requireTodoID, todoHandler.UpdateTodo)
			todos.PATCH("/:id", requireAuth, requireTodoID, todoHandler.ToggleTodo)
			todos.DELETE("/:id", requireAuth, requireTodoID, todoHandler.DeleteTodo)

			todos.POST("/:id/thumb-up", requireAuth, requireTodoID, todoHandler.ThumbUp)
			todos.DELETE("/:id/thumb-up", requireAuth, requireTodoID, todoHandler.CancelThumbUp)

			todos.POST("/:id/comments", requireAuth, requireTodoID, commentHandler.CreateComment)
			todos.GET("/:id/comments/:commentId", requireTodoID, commentHandler.GetComment)
			todos.PUT("/:id/comments/:commentId", requireAuth, requireTodoID, commentHandler.UpdateComment)
			todos.DELETE("/:id/comments/:commentId", requireAuth, requireTodoID, commentHandler.DeleteComment)
		}
	}

	return engine
}
