package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/service"
	"github.com/deppfellow/bookshelf/internal/testutil"
)

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) EnqueueWelcomeEmail(_ context.Context, to, name string) error {
	f.calls = append(f.calls, to+"|"+name)
	return f.err
}

type fixture struct {
	users    *service.UserService
	authors  *service.AuthorService
	books    *service.BookService
	notifier *fakeNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	s := testutil.NewServer(t)
	repos := repository.NewRepositories(s)
	notifier := &fakeNotifier{}

	return fixture{
		users:    service.NewUserService(repos.Users, notifier),
		authors:  service.NewAuthorService(repos.Authors),
		books:    service.NewBookService(repos.Books),
		notifier: notifier,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func requireHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	return httpErr
}

func TestCreateUser(t *testing.T) {
	t.Run("enqueues a welcome email", func(t *testing.T) {
		f := newFixture(t)

		user, err := f.users.CreateUser(context.Background(), &model.CreateUserPayload{
			Email: "ada@example.com",
			Name:  ptr("Ada"),
		})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, []string{"ada@example.com|Ada"}, f.notifier.calls)
	})

	t.Run("enqueue failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.err = errors.New("redis down")

		user, err := f.users.CreateUser(context.Background(), &model.CreateUserPayload{Email: "ada@example.com"})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Len(t, f.notifier.calls, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		_, err := f.users.CreateUser(ctx, &model.CreateUserPayload{Email: "ada@example.com"})
		require.NoError(t, err)

		_, err = f.users.CreateUser(ctx, &model.CreateUserPayload{Email: "ada@example.com"})
		httpErr := requireHTTPError(t, err, http.StatusBadRequest, "USER_ALREADY_EXISTS")
		assert.Equal(t, "User already exists", httpErr.Message)

		users, err := f.users.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Len(t, f.notifier.calls, 1)
	})

	t.Run("works without a notifier", func(t *testing.T) {
		s := testutil.NewServer(t)
		users := service.NewUserService(repository.NewRepositories(s).Users, nil)

		_, err := users.CreateUser(context.Background(), &model.CreateUserPayload{Email: "ada@example.com"})
		require.NoError(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ada, err := f.users.CreateUser(ctx, &model.CreateUserPayload{Email: "ada@example.com"})
	require.NoError(t, err)
	charles, err := f.users.CreateUser(ctx, &model.CreateUserPayload{Email: "charles@example.com"})
	require.NoError(t, err)

	updated, err := f.users.UpdateUser(ctx, &model.UpdateUserPayload{ID: ada.ID, Name: ptr("Ada Lovelace")})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", updated.Email)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Ada Lovelace", *updated.Name)

	_, err = f.users.UpdateUser(ctx, &model.UpdateUserPayload{ID: charles.ID, Email: ptr("ada@example.com")})
	requireHTTPError(t, err, http.StatusBadRequest, "USER_ALREADY_EXISTS")
}

func TestAuthorWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.CreateUser(ctx, &model.CreateUserPayload{Email: "ada@example.com"})
	require.NoError(t, err)

	author, err := f.authors.CreateAuthor(ctx, &model.CreateAuthorPayload{Name: "Ada", UserID: &user.ID})
	require.NoError(t, err)
	assert.Equal(t, &user.ID, author.UserID)

	_, err = f.authors.CreateAuthor(ctx, &model.CreateAuthorPayload{Name: "Ada again", UserID: &user.ID})
	requireHTTPError(t, err, http.StatusBadRequest, "AUTHOR_ALREADY_EXISTS")

	_, err = f.authors.CreateAuthor(ctx, &model.CreateAuthorPayload{Name: "Ghost", UserID: ptr(uint(404))})
	requireHTTPError(t, err, http.StatusBadRequest, "USER_NOT_FOUND")

	_, err = f.authors.UpdateAuthor(ctx, &model.UpdateAuthorPayload{ID: author.ID, UserID: ptr(uint(404))})
	requireHTTPError(t, err, http.StatusBadRequest, "USER_NOT_FOUND")
}

func TestDeleteAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author, err := f.authors.CreateAuthor(ctx, &model.CreateAuthorPayload{Name: "Ada"})
	require.NoError(t, err)
	book, err := f.books.CreateBook(ctx, &model.CreateBookPayload{Title: "Notes", AuthorID: author.ID})
	require.NoError(t, err)

	_, err = f.authors.DeleteAuthor(ctx, author.ID)
	requireHTTPError(t, err, http.StatusConflict, "AUTHOR_HAS_BOOKS")

	_, err = f.books.DeleteBook(ctx, book.ID)
	require.NoError(t, err)

	deleted, err := f.authors.DeleteAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", deleted.Name)
	assert.Empty(t, deleted.Books)

	_, err = f.authors.GetAuthor(ctx, author.ID)
	require.Error(t, err)
}

func TestBookUnknownAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.books.CreateBook(ctx, &model.CreateBookPayload{Title: "Orphan", AuthorID: 404})
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "AUTHOR_NOT_FOUND")
	assert.Equal(t, "The referenced Author does not exist", httpErr.Message)

	author, err := f.authors.CreateAuthor(ctx, &model.CreateAuthorPayload{Name: "Ada"})
	require.NoError(t, err)
	book, err := f.books.CreateBook(ctx, &model.CreateBookPayload{Title: "Notes", AuthorID: author.ID})
	require.NoError(t, err)

	_, err = f.books.UpdateBook(ctx, &model.UpdateBookPayload{ID: book.ID, AuthorID: ptr(uint(404))})
	requireHTTPError(t, err, http.StatusBadRequest, "AUTHOR_NOT_FOUND")
}
