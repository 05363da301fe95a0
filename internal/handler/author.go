package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/service"
)

type AuthorHandler struct {
	Handler
	authorService *service.AuthorService
}

func NewAuthorHandler(s *server.Server, authorService *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		Handler:       NewHandler(s),
		authorService: authorService,
	}
}

func (h *AuthorHandler) CreateAuthor(c echo.Context, payload *model.CreateAuthorPayload) (*model.AuthorRecord, error) {
	return h.authorService.CreateAuthor(c.Request().Context(), payload)
}

func (h *AuthorHandler) ListAuthors(c echo.Context, _ *model.ListPayload) ([]model.Author, error) {
	return h.authorService.ListAuthors(c.Request().Context())
}

func (h *AuthorHandler) GetAuthor(c echo.Context, payload *model.ResourceIDPayload) (*model.Author, error) {
	return h.authorService.GetAuthor(c.Request().Context(), payload.ID)
}

func (h *AuthorHandler) UpdateAuthor(c echo.Context, payload *model.UpdateAuthorPayload) (*model.Author, error) {
	return h.authorService.UpdateAuthor(c.Request().Context(), payload)
}

func (h *AuthorHandler) DeleteAuthor(c echo.Context, payload *model.ResourceIDPayload) (*model.Author, error) {
	return h.authorService.DeleteAuthor(c.Request().Context(), payload.ID)
}
