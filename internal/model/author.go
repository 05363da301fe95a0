package model

import "github.com/deppfellow/bookshelf/internal/validation"

// AuthorRecord is an authors row without its relations. It is what a book
// or a user expands to.
type AuthorRecord struct {
	Base
	Name   string  `json:"name"`
	Bio    *string `json:"bio"`
	Phone  *string `json:"phone"`
	UserID *uint   `json:"user_id"`
}

func (AuthorRecord) TableName() string {
	return "authors"
}

// Author is the read shape of an author: the linked user reduced to id and
// email, and every book in full.
type Author struct {
	AuthorRecord

	User  *UserRef `json:"user" gorm:"foreignKey:UserID"`
	Books []Book   `json:"books" gorm:"foreignKey:AuthorID"`
}

func (Author) TableName() string {
	return "authors"
}

type CreateAuthorPayload struct {
	Name   string  `json:"name" validate:"required,min=1,max=255"`
	Bio    *string `json:"bio" validate:"omitempty,max=2000"`
	Phone  *string `json:"phone" validate:"omitempty,max=32"`
	UserID *uint   `json:"user_id" validate:"omitempty,min=1"`
}

func (p *CreateAuthorPayload) Validate() error {
	return validation.Struct(p)
}

// ToAuthor builds the row to insert.
func (p *CreateAuthorPayload) ToAuthor() *AuthorRecord {
	return &AuthorRecord{
		Name:   p.Name,
		Bio:    p.Bio,
		Phone:  p.Phone,
		UserID: p.UserID,
	}
}

type UpdateAuthorPayload struct {
	ID     uint    `param:"id" json:"-" validate:"required,min=1"`
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Bio    *string `json:"bio" validate:"omitempty,max=2000"`
	Phone  *string `json:"phone" validate:"omitempty,max=32"`
	UserID *uint   `json:"user_id" validate:"omitempty,min=1"`
}

func (p *UpdateAuthorPayload) Validate() error {
	return validation.Struct(p)
}

// Changes returns the columns the client asked to change.
func (p *UpdateAuthorPayload) Changes() map[string]any {
	changes := map[string]any{}
	set(changes, "name", p.Name)
	set(changes, "bio", p.Bio)
	set(changes, "phone", p.Phone)
	set(changes, "user_id", p.UserID)
	return changes
}
