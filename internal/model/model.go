// Package model holds the persisted entities and the request payloads that
// create and change them.
package model

import (
	"time"

	"github.com/deppfellow/bookshelf/internal/validation"
)

// Base is embedded by every persisted entity.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResourceIDPayload addresses a single record through the :id path parameter.
// The body never sets it.
type ResourceIDPayload struct {
	ID uint `param:"id" json:"-" validate:"required,min=1"`
}

func (p *ResourceIDPayload) Validate() error {
	return validation.Struct(p)
}

// ListPayload carries no input, lists are unfiltered.
type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}

// set records column = *value when the client supplied the field.
func set[T any](changes map[string]any, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}
