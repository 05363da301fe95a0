// Package repository handles all interactions with the database.
//
// Every method issues its statements through the shared gorm handle with
// the caller's context, and returns errors classified by sqlerr so the
// service layer can decide on policy without knowing the dialect.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

// repo is embedded by the entity repositories.
type repo struct {
	db    *gorm.DB
	table string
}

func (r repo) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r repo) classify(err error) error {
	return sqlerr.Classify(r.db.Dialector, r.table, err)
}
