package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/handler"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/router"
	"github.com/deppfellow/bookshelf/internal/service"
	"github.com/deppfellow/bookshelf/internal/testutil"
)

func newRouter(t *testing.T) *echo.Echo {
	t.Helper()

	s := testutil.NewServer(t)
	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return router.NewRouter(s, handler.NewHandlers(s, services))
}

// call performs the request and decodes a JSON object response.
func call(t *testing.T, e *echo.Echo, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestAuthorLifecycle(t *testing.T) {
	e := newRouter(t)

	status, created := call(t, e, http.MethodPost, "/api/v1/authors", `{"name":"Ada Lovelace","bio":"Mathematician"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Ada Lovelace", created["name"])
	assert.Equal(t, "Mathematician", created["bio"])
	assert.Nil(t, created["user_id"])
	assert.Equal(t, float64(1), created["id"])

	status, got := call(t, e, http.MethodGet, "/api/v1/authors/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, got["user"])
	assert.Equal(t, []any{}, got["books"])

	status, updated := call(t, e, http.MethodPut, "/api/v1/authors/1", `{"phone":"+441234567890"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada Lovelace", updated["name"])
	assert.Equal(t, "+441234567890", updated["phone"])

	status, deleted := call(t, e, http.MethodDelete, "/api/v1/authors/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada Lovelace", deleted["name"])

	status, missing := call(t, e, http.MethodGet, "/api/v1/authors/1", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "AUTHOR_NOT_FOUND", missing["code"])
	assert.Equal(t, "Author not found", missing["message"])
}

func TestUserAuthorBookGraph(t *testing.T) {
	e := newRouter(t)

	status, user := call(t, e, http.MethodPost, "/api/v1/users", `{"email":"ada@example.com","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Nil(t, user["author"])

	status, _ = call(t, e, http.MethodPost, "/api/v1/authors", `{"name":"Ada Lovelace","user_id":1}`)
	require.Equal(t, http.StatusCreated, status)

	status, book := call(t, e, http.MethodPost, "/api/v1/books", `{"title":"Notes","published_year":1843,"author_id":1}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1843), book["published_year"])

	status, author := call(t, e, http.MethodGet, "/api/v1/authors/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"id": float64(1), "email": "ada@example.com"}, author["user"])
	books, ok := author["books"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)
	assert.Equal(t, "Notes", books[0].(map[string]any)["title"])

	status, user = call(t, e, http.MethodGet, "/api/v1/users/1", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, user["author"])
	assert.Equal(t, "Ada Lovelace", user["author"].(map[string]any)["name"])

	status, book = call(t, e, http.MethodGet, "/api/v1/books/1", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, book["author"])
	assert.Equal(t, "Ada Lovelace", book["author"].(map[string]any)["name"])

	status, conflict := call(t, e, http.MethodDelete, "/api/v1/authors/1", "")
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "AUTHOR_HAS_BOOKS", conflict["code"])
}

// list performs a GET on a collection route and decodes the JSON array.
func list(t *testing.T, e *echo.Echo, path string) []map[string]any {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out, "lists are arrays, never null")
	return out
}

func TestListEmpty(t *testing.T) {
	e := newRouter(t)

	for _, path := range []string{"/api/v1/users", "/api/v1/authors", "/api/v1/books"} {
		assert.Empty(t, list(t, e, path), path)
	}
}

func TestListAfterCreates(t *testing.T) {
	e := newRouter(t)

	for _, body := range []string{
		`{"email":"ada@example.com","name":"Ada"}`,
		`{"email":"charles@example.com"}`,
		`{"email":"mary@example.com"}`,
	} {
		status, _ := call(t, e, http.MethodPost, "/api/v1/users", body)
		require.Equal(t, http.StatusCreated, status)
	}
	for _, body := range []string{
		`{"name":"Ada Lovelace","user_id":1}`,
		`{"name":"Charles Babbage"}`,
	} {
		status, _ := call(t, e, http.MethodPost, "/api/v1/authors", body)
		require.Equal(t, http.StatusCreated, status)
	}
	for _, body := range []string{
		`{"title":"Notes","author_id":1}`,
		`{"title":"Passages from the Life of a Philosopher","author_id":2}`,
		`{"title":"Sketch of the Analytical Engine","author_id":1}`,
	} {
		status, _ := call(t, e, http.MethodPost, "/api/v1/books", body)
		require.Equal(t, http.StatusCreated, status)
	}

	users := list(t, e, "/api/v1/users")
	require.Len(t, users, 3)
	assert.Equal(t, []any{"ada@example.com", "charles@example.com", "mary@example.com"},
		[]any{users[0]["email"], users[1]["email"], users[2]["email"]})
	assert.Nil(t, users[1]["name"])
	require.NotNil(t, users[0]["author"])
	assert.Equal(t, "Ada Lovelace", users[0]["author"].(map[string]any)["name"])
	assert.Nil(t, users[1]["author"])

	authors := list(t, e, "/api/v1/authors")
	require.Len(t, authors, 2)
	assert.Equal(t, map[string]any{"id": float64(1), "email": "ada@example.com"}, authors[0]["user"])
	adaBooks := authors[0]["books"].([]any)
	require.Len(t, adaBooks, 2)
	assert.Equal(t, "Notes", adaBooks[0].(map[string]any)["title"])
	assert.Equal(t, "Sketch of the Analytical Engine", adaBooks[1].(map[string]any)["title"])
	assert.Nil(t, authors[1]["user"])
	assert.Len(t, authors[1]["books"], 1)

	books := list(t, e, "/api/v1/books")
	require.Len(t, books, 3)
	for i, want := range []string{"Ada Lovelace", "Charles Babbage", "Ada Lovelace"} {
		assert.Equal(t, float64(i+1), books[i]["id"])
		author, ok := books[i]["author"].(map[string]any)
		require.True(t, ok, "book %d has no author", i+1)
		assert.Equal(t, want, author["name"])
		assert.Equal(t, books[i]["author_id"], author["id"])
	}
}

func TestPathIDWinsOverBody(t *testing.T) {
	e := newRouter(t)

	for _, body := range []string{`{"email":"a@example.com"}`, `{"email":"b@example.com"}`} {
		status, _ := call(t, e, http.MethodPost, "/api/v1/users", body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, got := call(t, e, http.MethodGet, "/api/v1/users/1", `{"id":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@example.com", got["email"])

	status, deleted := call(t, e, http.MethodDelete, "/api/v1/users/1", `{"id":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@example.com", deleted["email"])

	status, _ = call(t, e, http.MethodGet, "/api/v1/users/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, kept := call(t, e, http.MethodGet, "/api/v1/users/2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "b@example.com", kept["email"])
}

func TestCreateUserWithoutName(t *testing.T) {
	e := newRouter(t)

	status, user := call(t, e, http.MethodPost, "/api/v1/users", `{"email":"a@b.co"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Nil(t, user["name"])
}

func TestErrorResponses(t *testing.T) {
	e := newRouter(t)

	t.Run("duplicate email", func(t *testing.T) {
		status, _ := call(t, e, http.MethodPost, "/api/v1/users", `{"email":"dup@example.com"}`)
		require.Equal(t, http.StatusCreated, status)

		status, body := call(t, e, http.MethodPost, "/api/v1/users", `{"email":"dup@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "USER_ALREADY_EXISTS", body["code"])
		assert.Equal(t, "User already exists", body["message"])
	})

	t.Run("validation", func(t *testing.T) {
		status, body := call(t, e, http.MethodPost, "/api/v1/books", `{"title":""}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation failed", body["message"])
		assert.NotEmpty(t, body["errors"])
	})

	t.Run("non numeric id", func(t *testing.T) {
		status, body := call(t, e, http.MethodGet, "/api/v1/users/abc", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "BAD_REQUEST", body["code"])
	})

	t.Run("zero id", func(t *testing.T) {
		status, _ := call(t, e, http.MethodGet, "/api/v1/users/0", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown author on book", func(t *testing.T) {
		status, body := call(t, e, http.MethodPost, "/api/v1/books", `{"title":"Orphan","author_id":99}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "AUTHOR_NOT_FOUND", body["code"])
	})

	t.Run("missing book", func(t *testing.T) {
		status, body := call(t, e, http.MethodDelete, "/api/v1/books/99", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "BOOK_NOT_FOUND", body["code"])
	})

	t.Run("unknown route", func(t *testing.T) {
		status, body := call(t, e, http.MethodGet, "/api/v1/shelves", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Route not found", body["message"])
	})
}

func TestSystemRoutes(t *testing.T) {
	e := newRouter(t)

	status, health := call(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", health["status"])
	checks, ok := health["checks"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, checks, "database")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
