package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/deppfellow/bookshelf/internal/model"
)

// ErrAuthorHasBooks is returned when deleting an author that still has books.
var ErrAuthorHasBooks = errors.New("author still has books")

type AuthorRepository struct {
	repo
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{repo{db: db, table: "authors"}}
}

// withUserAndBooks expands an author: the linked user reduced to id and
// email, and every book.
func withUserAndBooks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email")
		}).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("books.id")
		})
}

func (r *AuthorRepository) Create(ctx context.Context, author *model.AuthorRecord) (*model.AuthorRecord, error) {
	if err := r.conn(ctx).Create(author).Error; err != nil {
		return nil, r.classify(err)
	}
	return author, nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	authors := []model.Author{}
	if err := r.conn(ctx).Scopes(withUserAndBooks).Order("id").Find(&authors).Error; err != nil {
		return nil, r.classify(err)
	}
	return authors, nil
}

func (r *AuthorRepository) GetByID(ctx context.Context, id uint) (*model.Author, error) {
	var author model.Author
	if err := r.conn(ctx).Scopes(withUserAndBooks).First(&author, id).Error; err != nil {
		return nil, r.classify(err)
	}
	return &author, nil
}

// Update applies changes to the author and returns it as stored afterwards.
func (r *AuthorRepository) Update(ctx context.Context, id uint, changes map[string]any) (*model.Author, error) {
	var author model.Author
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.AuthorRecord
		if err := tx.First(&current, id).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&current).Updates(changes).Error; err != nil {
				return err
			}
		}
		return tx.Scopes(withUserAndBooks).First(&author, id).Error
	})
	if err != nil {
		return nil, r.classify(err)
	}
	return &author, nil
}

// Delete removes the author and returns its state before deletion.
// Authors that still have books are kept and ErrAuthorHasBooks is returned.
func (r *AuthorRepository) Delete(ctx context.Context, id uint) (*model.Author, error) {
	var author model.Author
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withUserAndBooks).First(&author, id).Error; err != nil {
			return err
		}
		if len(author.Books) > 0 {
			return ErrAuthorHasBooks
		}
		return tx.Delete(&model.AuthorRecord{}, id).Error
	})
	if errors.Is(err, ErrAuthorHasBooks) {
		return nil, err
	}
	if err != nil {
		return nil, r.classify(err)
	}
	return &author, nil
}
