package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

type BookService struct {
	books *repository.BookRepository
}

func NewBookService(books *repository.BookRepository) *BookService {
	return &BookService{
		books: books,
	}
}

// translateBookWriteError answers a missing author the same way on every
// dialect.
func translateBookWriteError(err error) error {
	if sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
		return errs.NewBadRequestError("The referenced Author does not exist", true, codePtr("AUTHOR_NOT_FOUND"), nil, nil)
	}
	return err
}

func (s *BookService) CreateBook(ctx context.Context, payload *model.CreateBookPayload) (*model.Book, error) {
	book, err := s.books.Create(ctx, payload.ToBook())
	if err != nil {
		return nil, errors.Wrap(translateBookWriteError(err), "failed to create book")
	}

	logger := loggerFrom(ctx, "create_book")
	logger.Info().Uint("book_id", book.ID).Uint("author_id", book.AuthorID).Msg("book created")

	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

func (s *BookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *BookService) UpdateBook(ctx context.Context, payload *model.UpdateBookPayload) (*model.Book, error) {
	changes := payload.Changes()

	book, err := s.books.Update(ctx, payload.ID, changes)
	if err != nil {
		return nil, translateBookWriteError(err)
	}

	logger := loggerFrom(ctx, "update_book")
	logger.Info().Uint("book_id", book.ID).Strs("fields", changedFields(changes)).Msg("book updated")

	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.books.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	logger := loggerFrom(ctx, "delete_book")
	logger.Info().Uint("book_id", id).Msg("book deleted")

	return book, nil
}
