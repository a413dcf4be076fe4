package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by search and detail queries that
// struct tags cannot express.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Search filters and default ordering
		{"todos", "idx_todos_completed_created_at", "is_completed, created_at"},
		{"users", "idx_users_name", "name"},

		// Comment listing on the detail view
		{"comments", "idx_comments_todo_created_at", "todo_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
