package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

type AuthorService struct {
	authors *repository.AuthorRepository
}

func NewAuthorService(authors *repository.AuthorRepository) *AuthorService {
	return &AuthorService{
		authors: authors,
	}
}

// translateWriteError maps constraint violations on authors to client
// errors. The database message itself never reaches the client.
func translateWriteError(err error) error {
	switch sqlerr.ErrCode(err) {
	case sqlerr.UniqueViolation:
		return errs.NewBadRequestError("This user is already linked to an author", true, codePtr("AUTHOR_ALREADY_EXISTS"), nil, nil)
	case sqlerr.ForeignKeyViolation:
		return errs.NewBadRequestError("The referenced User does not exist", true, codePtr("USER_NOT_FOUND"), nil, nil)
	default:
		return err
	}
}

func (s *AuthorService) CreateAuthor(ctx context.Context, payload *model.CreateAuthorPayload) (*model.AuthorRecord, error) {
	logger := loggerFrom(ctx, "create_author")

	author, err := s.authors.Create(ctx, payload.ToAuthor())
	if err != nil {
		logger.Warn().Err(err).Msg("failed to create author")
		return nil, errors.Wrap(translateWriteError(err), "failed to create author")
	}

	logger.Info().Uint("author_id", author.ID).Msg("author created")
	return author, nil
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.authors.List(ctx)
}

func (s *AuthorService) GetAuthor(ctx context.Context, id uint) (*model.Author, error) {
	return s.authors.GetByID(ctx, id)
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, payload *model.UpdateAuthorPayload) (*model.Author, error) {
	changes := payload.Changes()

	author, err := s.authors.Update(ctx, payload.ID, changes)
	if err != nil {
		return nil, translateWriteError(err)
	}

	logger := loggerFrom(ctx, "update_author")
	logger.Info().Uint("author_id", author.ID).Strs("fields", changedFields(changes)).Msg("author updated")

	return author, nil
}

// DeleteAuthor removes an author without books and returns it as it was.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) (*model.Author, error) {
	author, err := s.authors.Delete(ctx, id)
	if errors.Is(err, repository.ErrAuthorHasBooks) || sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
		return nil, errs.NewConflictError("Author still has books, delete them first", true, codePtr("AUTHOR_HAS_BOOKS"))
	}
	if err != nil {
		return nil, err
	}

	logger := loggerFrom(ctx, "delete_author")
	logger.Info().Uint("author_id", id).Msg("author deleted")

	return author, nil
}
