package repository

import (
	"github.com/deppfellow/bookshelf/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users   *UserRepository
	Authors *AuthorRepository
	Books   *BookRepository
}

// NewRepositories constructs the repository container over s.DB.ORM.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(s.DB.ORM),
		Authors: NewAuthorRepository(s.DB.ORM),
		Books:   NewBookRepository(s.DB.ORM),
	}
}
