package model

import "github.com/deppfellow/bookshelf/internal/validation"

type Book struct {
	Base
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	ISBN          *string `json:"isbn" gorm:"column:isbn"`
	PublishedYear *int    `json:"published_year"`
	AuthorID      uint    `json:"author_id"`

	// Author is loaded on book reads and left out when listing an author's books.
	Author *AuthorRecord `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

type CreateBookPayload struct {
	Title         string  `json:"title" validate:"required,min=1,max=255"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	ISBN          *string `json:"isbn" validate:"omitempty,isbn"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,min=0,max=9999"`
	AuthorID      uint    `json:"author_id" validate:"required,min=1"`
}

func (p *CreateBookPayload) Validate() error {
	return validation.Struct(p)
}

// ToBook builds the row to insert.
func (p *CreateBookPayload) ToBook() *Book {
	return &Book{
		Title:         p.Title,
		Description:   p.Description,
		ISBN:          p.ISBN,
		PublishedYear: p.PublishedYear,
		AuthorID:      p.AuthorID,
	}
}

type UpdateBookPayload struct {
	ID            uint    `param:"id" json:"-" validate:"required,min=1"`
	Title         *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	ISBN          *string `json:"isbn" validate:"omitempty,isbn"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,min=0,max=9999"`
	AuthorID      *uint   `json:"author_id" validate:"omitempty,min=1"`
}

func (p *UpdateBookPayload) Validate() error {
	return validation.Struct(p)
}

// Changes returns the columns the client asked to change.
func (p *UpdateBookPayload) Changes() map[string]any {
	changes := map[string]any{}
	set(changes, "title", p.Title)
	set(changes, "description", p.Description)
	set(changes, "isbn", p.ISBN)
	set(changes, "published_year", p.PublishedYear)
	set(changes, "author_id", p.AuthorID)
	return changes
}
