package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/router"
)

var (
	addr        string
	skipMigrate bool
)

var rootCmd = &cobra.Command{
	Use:   "todo-server",
	Short: "Todo API server",
	Long: `Serves the Todo HTTP API: accounts, todos with comments and thumbs-ups,
and paginated search over todos.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SERVER_ADDR)")
	rootCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "skip automatic schema migration on startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	if addr != "" {
		cfg.ServerAddr = addr
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		return err
	}
	defer database.Close()

	// Run migrations
	if !skipMigrate {
		if err := database.Migrate(); err != nil {
			return err
		}
	}

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		return fmt.Errorf("failed to create Redis store: %w", err)
	}
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.JWTExpirationHours * 3600,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	// SQLite has a single isolation level
	var txOpts *sql.TxOptions
	if cfg.DBDriver != "sqlite" {
		txOpts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	}
	uow := repository.NewUnitOfWork(database.GetDB(), txOpts)

	r := gin.New()
	r.Use(middleware.RequestID(), gin.LoggerWithFormatter(middleware.LogFormatter), gin.Recovery())
	router.New(r, router.Deps{
		DB:           database.GetDB(),
		UnitOfWork:   uow,
		Tokens:       tokens,
		SessionStore: store,
	})

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	return r.Run(cfg.ServerAddr)
}
