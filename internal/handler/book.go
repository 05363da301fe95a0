package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/service"
)

type BookHandler struct {
	Handler
	bookService *service.BookService
}

func NewBookHandler(s *server.Server, bookService *service.BookService) *BookHandler {
	return &BookHandler{
		Handler:     NewHandler(s),
		bookService: bookService,
	}
}

func (h *BookHandler) CreateBook(c echo.Context, payload *model.CreateBookPayload) (*model.Book, error) {
	return h.bookService.CreateBook(c.Request().Context(), payload)
}

func (h *BookHandler) ListBooks(c echo.Context, _ *model.ListPayload) ([]model.Book, error) {
	return h.bookService.ListBooks(c.Request().Context())
}

func (h *BookHandler) GetBook(c echo.Context, payload *model.ResourceIDPayload) (*model.Book, error) {
	return h.bookService.GetBook(c.Request().Context(), payload.ID)
}

func (h *BookHandler) UpdateBook(c echo.Context, payload *model.UpdateBookPayload) (*model.Book, error) {
	return h.bookService.UpdateBook(c.Request().Context(), payload)
}

func (h *BookHandler) DeleteBook(c echo.Context, payload *model.ResourceIDPayload) (*model.Book, error) {
	return h.bookService.DeleteBook(c.Request().Context(), payload.ID)
}
