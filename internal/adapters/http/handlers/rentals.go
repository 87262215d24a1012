package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/book-rental/internal/adapters/http/dto"
	"github.com/jsamuelsen/book-rental/internal/app"
)

// RentalHandler handles rental endpoints.
type RentalHandler struct {
	service *app.RentalService
}

// NewRentalHandler creates a new rental handler.
func NewRentalHandler(service *app.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

// CreateRental handles POST /api/v1/rentals.
// Returns 201 when the user is old enough for every book, 422 with all
// violations otherwise, and 404 when the user or a book does not exist.
//
// @Summary Rent books
// @Tags rentals
// @Accept json
// @Produce json
// @Param rental body dto.CreateRentalRequest true "Rental"
// @Success 201 {object} dto.RentalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req dto.CreateRentalRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	rental, err := h.service.CreateRental(c.Request.Context(), input)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRentalResponse(rental))
}

// GetRental handles GET /api/v1/rentals/:id.
func (h *RentalHandler) GetRental(c *gin.Context) {
	id, err := pathID(c, "rental_id")
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	rental, err := h.service.GetRental(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRentalResponse(rental))
}

// ListRentals handles GET /api/v1/rentals.
func (h *RentalHandler) ListRentals(c *gin.Context) {
	rentals, err := h.service.ListRentals(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRentalListResponse(rentals))
}

// RegisterRentalRoutes registers rental routes on the given router group.
func (h *RentalHandler) RegisterRentalRoutes(rg *gin.RouterGroup) {
	rentals := rg.Group("/rentals")
	rentals.POST("", h.CreateRental)
	rentals.GET("", h.ListRentals)
	rentals.GET("/:id", h.GetRental)
}
