package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestChanges(t *testing.T) {
	t.Run("only supplied fields", func(t *testing.T) {
		p := &UpdateBookPayload{ID: 1, Title: ptr("Notes"), PublishedYear: ptr(1843)}

		assert.Equal(t, map[string]any{
			"title":          "Notes",
			"published_year": 1843,
		}, p.Changes())
	})

	t.Run("empty update", func(t *testing.T) {
		assert.Empty(t, (&UpdateUserPayload{ID: 1}).Changes())
	})

	t.Run("author user link", func(t *testing.T) {
		p := &UpdateAuthorPayload{ID: 1, UserID: ptr(uint(7)), Bio: ptr("")}

		assert.Equal(t, map[string]any{
			"user_id": uint(7),
			"bio":     "",
		}, p.Changes())
	})
}

func TestPayloadValidation(t *testing.T) {
	assert.NoError(t, (&CreateUserPayload{Email: "ada@example.com"}).Validate())
	assert.Error(t, (&CreateUserPayload{Email: "ada"}).Validate())
	assert.Error(t, (&CreateUserPayload{}).Validate())

	assert.NoError(t, (&CreateAuthorPayload{Name: "Ada"}).Validate())
	assert.Error(t, (&CreateAuthorPayload{Name: "Ada", UserID: ptr(uint(0))}).Validate())

	assert.NoError(t, (&CreateBookPayload{Title: "Notes", AuthorID: 1, ISBN: ptr("978-3-16-148410-0")}).Validate())
	assert.Error(t, (&CreateBookPayload{Title: "Notes"}).Validate())
	assert.Error(t, (&CreateBookPayload{Title: "Notes", AuthorID: 1, ISBN: ptr("not-an-isbn")}).Validate())

	assert.Error(t, (&ResourceIDPayload{}).Validate())
	assert.Error(t, (&UpdateUserPayload{ID: 1, Email: ptr("nope")}).Validate())
	require.NoError(t, (&ListPayload{}).Validate())
}

func TestToRows(t *testing.T) {
	book := (&CreateBookPayload{Title: "Notes", AuthorID: 3}).ToBook()
	assert.Equal(t, "Notes", book.Title)
	assert.Equal(t, uint(3), book.AuthorID)
	assert.Zero(t, book.ID)

	author := (&CreateAuthorPayload{Name: "Ada", Phone: ptr("+44")}).ToAuthor()
	assert.Equal(t, "Ada", author.Name)
	assert.Equal(t, "+44", *author.Phone)
}
