package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/todo-api/internal/utils"
)

// Paginate applies the window of a page request to a GORM query
func Paginate(req utils.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Size)
	}
}
