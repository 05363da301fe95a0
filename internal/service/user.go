package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/sqlerr"
)

// WelcomeNotifier schedules the welcome email of a new user.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

type UserService struct {
	users    *repository.UserRepository
	notifier WelcomeNotifier
}

// NewUserService creates the user service. notifier may be nil, new users
// then get no welcome email.
func NewUserService(users *repository.UserRepository, notifier WelcomeNotifier) *UserService {
	return &UserService{
		users:    users,
		notifier: notifier,
	}
}

// errUserAlreadyExists is the fixed answer to a duplicate email, whatever
// constraint actually fired.
func errUserAlreadyExists() *errs.HTTPError {
	return errs.NewBadRequestError("User already exists", true, codePtr("USER_ALREADY_EXISTS"), nil, nil)
}

func (s *UserService) CreateUser(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	logger := loggerFrom(ctx, "create_user")

	user, err := s.users.Create(ctx, payload.ToUser())
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			logger.Warn().Err(err).Str("email", payload.Email).Msg("user already exists")
			return nil, errUserAlreadyExists()
		}
		return nil, errors.Wrap(err, "failed to create user")
	}

	logger.Info().Uint("user_id", user.ID).Msg("user created")

	if s.notifier != nil {
		name := ""
		if user.Name != nil {
			name = *user.Name
		}
		// The user exists at this point, a failed enqueue must not fail the request.
		if err := s.notifier.EnqueueWelcomeEmail(ctx, user.Email, name); err != nil {
			logger.Error().Err(err).Uint("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	changes := payload.Changes()

	user, err := s.users.Update(ctx, payload.ID, changes)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errUserAlreadyExists()
		}
		return nil, err
	}

	logger := loggerFrom(ctx, "update_user")
	logger.Info().Uint("user_id", user.ID).Strs("fields", changedFields(changes)).Msg("user updated")

	return user, nil
}

// DeleteUser removes the user and returns it as it was. A linked author is
// kept and loses its user.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	logger := loggerFrom(ctx, "delete_user")
	logger.Info().Uint("user_id", id).Msg("user deleted")

	return user, nil
}
