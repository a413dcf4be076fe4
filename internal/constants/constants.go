package constants

// Context and session keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyNickname = "nickname"
	ContextKeyTodoID   = "todo_id"

	SessionCookieName     = "todo_session"
	SessionKeyAccessToken = "access_token"
)

// Pagination
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	MinPageSize     = 1
)

// Validation limits
const (
	MinPasswordLength    = 4
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000

	// Search windows wider than this are treated as this many days
	MaxDaysAgo = 36500
)
