package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookshelf/internal/errs"
)

type idPayload struct {
	ID uint `param:"id" validate:"required,min=1"`
}

func (p *idPayload) Validate() error {
	return Struct(p)
}

type bookPayload struct {
	ID       uint    `param:"id" json:"-"`
	Title    string  `json:"title" validate:"required,max=5"`
	ISBN     *string `json:"isbn" validate:"omitempty,isbn"`
	Email    string  `json:"contact_email" validate:"omitempty,email"`
	AuthorID uint    `json:"author_id" validate:"required,min=1"`
}

func (p *bookPayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "range", Message: "start must be before end"}}
}

func newContext(method, body string, id string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c
}

func requireBadRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_PathID(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		payload := &idPayload{}
		require.NoError(t, BindAndValidate(newContext(http.MethodGet, "", "12"), payload))
		assert.Equal(t, uint(12), payload.ID)
	})

	t.Run("zero id is rejected", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodGet, "", "0"), &idPayload{})

		httpErr := requireBadRequest(t, err)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "id", httpErr.Errors[0].Field)
		assert.Equal(t, "is required", httpErr.Errors[0].Error)
	})

	t.Run("non numeric id is a bind error", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodGet, "", "abc"), &idPayload{})

		httpErr := requireBadRequest(t, err)
		assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	})
}

func TestBindAndValidate_Body(t *testing.T) {
	t.Run("field errors use json names", func(t *testing.T) {
		body := `{"title":"Far too long","isbn":"123","contact_email":"nope"}`
		err := BindAndValidate(newContext(http.MethodPost, body, ""), &bookPayload{})

		httpErr := requireBadRequest(t, err)
		assert.Equal(t, "Validation failed", httpErr.Message)
		assert.True(t, httpErr.Override)
		assert.ElementsMatch(t, []errs.FieldError{
			{Field: "title", Error: "must not exceed 5 characters"},
			{Field: "isbn", Error: "must be a valid ISBN-10 or ISBN-13"},
			{Field: "contact_email", Error: "must be a valid email address"},
			{Field: "author_id", Error: "is required"},
		}, httpErr.Errors)
	})

	t.Run("path id is not taken from the body", func(t *testing.T) {
		payload := &bookPayload{}
		body := `{"id":99,"title":"Notes","author_id":1}`

		require.NoError(t, BindAndValidate(newContext(http.MethodPut, body, "3"), payload))
		assert.Equal(t, uint(3), payload.ID)
		assert.Equal(t, "Notes", payload.Title)
	})

	t.Run("malformed json", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodPost, `{"title":`, ""), &bookPayload{})

		httpErr := requireBadRequest(t, err)
		assert.False(t, httpErr.Override)
	})

	t.Run("wrong json type", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodPost, `{"title":"Notes","author_id":"one"}`, ""), &bookPayload{})
		requireBadRequest(t, err)
	})
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodGet, "", ""), &customPayload{})

	httpErr := requireBadRequest(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "range", Error: "start must be before end"}}, httpErr.Errors)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, IsValidUUID("3f2504e0"))
	assert.False(t, IsValidUUID(""))
}
