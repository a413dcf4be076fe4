package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// NewRepositories binds every repository to db, which may be a transaction.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    NewUserRepository(db),
		Todos:    NewTodoRepository(db),
		Comments: NewCommentRepository(db),
		ThumbUps: NewThumbUpRepository(db),
	}
}

// GormUnitOfWork runs work inside a GORM transaction.
type GormUnitOfWork struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewUnitOfWork creates a UnitOfWork. opts may be nil to use the driver's
// default isolation level.
func NewUnitOfWork(db *gorm.DB, opts *sql.TxOptions) UnitOfWork {
	return &GormUnitOfWork{db: db, opts: opts}
}

// Do runs fn with repositories bound to a single transaction.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	var opts []*sql.TxOptions
	if u.opts != nil {
		opts = append(opts, u.opts)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, opts...)
}
