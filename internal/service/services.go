package service

import (
	"github.com/deppfellow/bookshelf/internal/lib/job"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/server"
)

type Services struct {
	User   *UserService
	Author *AuthorService
	Book   *BookService
	Job    *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService must not end up inside a non-nil interface.
	var notifier WelcomeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		User:   NewUserService(repos.Users, notifier),
		Author: NewAuthorService(repos.Authors),
		Book:   NewBookService(repos.Books),
		Job:    s.Job,
	}, nil
}
