package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/book-rental/internal/domain"
)

// pathID parses the :id path parameter as a positive integer.
func pathID(c *gin.Context, field string) (int64, error) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationErrorWithValue(field, "must be a positive integer", raw)
	}

	return id, nil
}
