package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deppfellow/bookshelf/internal/model"
)

type BookRepository struct {
	repo
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{repo{db: db, table: "books"}}
}

// withBookAuthor expands the full author record of a book.
func withBookAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}

func (r *BookRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	if err := r.conn(ctx).Omit(clause.Associations).Create(book).Error; err != nil {
		return nil, r.classify(err)
	}
	return book, nil
}

func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	books := []model.Book{}
	if err := r.conn(ctx).Scopes(withBookAuthor).Order("id").Find(&books).Error; err != nil {
		return nil, r.classify(err)
	}
	return books, nil
}

func (r *BookRepository) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.conn(ctx).Scopes(withBookAuthor).First(&book, id).Error; err != nil {
		return nil, r.classify(err)
	}
	return &book, nil
}

// Update applies changes to the book and returns it as stored afterwards.
func (r *BookRepository) Update(ctx context.Context, id uint, changes map[string]any) (*model.Book, error) {
	var book model.Book
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&book).Omit(clause.Associations).Updates(changes).Error; err != nil {
				return err
			}
		}
		book = model.Book{}
		return tx.Scopes(withBookAuthor).First(&book, id).Error
	})
	if err != nil {
		return nil, r.classify(err)
	}
	return &book, nil
}

// Delete removes the book and returns its state before deletion.
func (r *BookRepository) Delete(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(withBookAuthor).First(&book, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Book{}, id).Error
	})
	if err != nil {
		return nil, r.classify(err)
	}
	return &book, nil
}
