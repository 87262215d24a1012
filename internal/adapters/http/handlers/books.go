package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/book-rental/internal/adapters/http/dto"
	"github.com/jsamuelsen/book-rental/internal/app"
)

// BookHandler handles catalogue endpoints.
type BookHandler struct {
	service *app.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(service *app.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// CreateBook handles POST /api/v1/books.
//
// @Summary Add a book to the catalogue
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.CreateBookRequest true "Book"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBookResponse(book))
}

// GetBook handles GET /api/v1/books/:id.
//
// @Summary Get a book by ID
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := pathID(c, "book_id")
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBookResponse(book))
}

// ListBooks handles GET /api/v1/books.
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBookListResponse(books))
}

// RegisterBookRoutes registers book routes on the given router group.
func (h *BookHandler) RegisterBookRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.POST("", h.CreateBook)
	books.GET("", h.ListBooks)
	books.GET("/:id", h.GetBook)
}
