package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/handler"
	"github.com/deppfellow/bookshelf/internal/model"
)

// registerV1Routes registers the CRUD routes of every resource. All of
// them are public.
func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	users := g.Group("/users")
	users.POST("", handler.Handle(h.User.Handler, h.User.CreateUser, http.StatusCreated, &model.CreateUserPayload{}))
	users.GET("", handler.Handle(h.User.Handler, h.User.ListUsers, http.StatusOK, &model.ListPayload{}))
	users.GET("/:id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, &model.ResourceIDPayload{}))
	users.PUT("/:id", handler.Handle(h.User.Handler, h.User.UpdateUser, http.StatusOK, &model.UpdateUserPayload{}))
	users.DELETE("/:id", handler.Handle(h.User.Handler, h.User.DeleteUser, http.StatusOK, &model.ResourceIDPayload{}))

	authors := g.Group("/authors")
	authors.POST("", handler.Handle(h.Author.Handler, h.Author.CreateAuthor, http.StatusCreated, &model.CreateAuthorPayload{}))
	authors.GET("", handler.Handle(h.Author.Handler, h.Author.ListAuthors, http.StatusOK, &model.ListPayload{}))
	authors.GET("/:id", handler.Handle(h.Author.Handler, h.Author.GetAuthor, http.StatusOK, &model.ResourceIDPayload{}))
	authors.PUT("/:id", handler.Handle(h.Author.Handler, h.Author.UpdateAuthor, http.StatusOK, &model.UpdateAuthorPayload{}))
	authors.DELETE("/:id", handler.Handle(h.Author.Handler, h.Author.DeleteAuthor, http.StatusOK, &model.ResourceIDPayload{}))

	books := g.Group("/books")
	books.POST("", handler.Handle(h.Book.Handler, h.Book.CreateBook, http.StatusCreated, &model.CreateBookPayload{}))
	books.GET("", handler.Handle(h.Book.Handler, h.Book.ListBooks, http.StatusOK, &model.ListPayload{}))
	books.GET("/:id", handler.Handle(h.Book.Handler, h.Book.GetBook, http.StatusOK, &model.ResourceIDPayload{}))
	books.PUT("/:id", handler.Handle(h.Book.Handler, h.Book.UpdateBook, http.StatusOK, &model.UpdateBookPayload{}))
	books.DELETE("/:id", handler.Handle(h.Book.Handler, h.Book.DeleteBook, http.StatusOK, &model.ResourceIDPayload{}))
}
