package model

import "github.com/deppfellow/bookshelf/internal/validation"

type User struct {
	Base
	Email string  `json:"email"`
	Name  *string `json:"name"`

	Author *AuthorRecord `json:"author" gorm:"foreignKey:UserID"`
}

// UserRef is the part of a user exposed on an author: id and email only.
type UserRef struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Email string `json:"email"`
}

func (UserRef) TableName() string {
	return "users"
}

type CreateUserPayload struct {
	Email string  `json:"email" validate:"required,email,max=255"`
	Name  *string `json:"name" validate:"omitempty,max=255"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ToUser builds the row to insert.
func (p *CreateUserPayload) ToUser() *User {
	return &User{
		Email: p.Email,
		Name:  p.Name,
	}
}

type UpdateUserPayload struct {
	ID    uint    `param:"id" json:"-" validate:"required,min=1"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Name  *string `json:"name" validate:"omitempty,max=255"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// Changes returns the columns the client asked to change.
func (p *UpdateUserPayload) Changes() map[string]any {
	changes := map[string]any{}
	set(changes, "email", p.Email)
	set(changes, "name", p.Name)
	return changes
}
