package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mercadolibre-replica/internal/domain"
)

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// writeError maps the catalog error taxonomy to HTTP statuses: NotFound 404,
// InvalidInput 400, Duplicate 409, anything else 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		kind = "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		kind = "INVALID_PRODUCT_DATA"
	case errors.Is(err, domain.ErrDuplicate):
		status = http.StatusConflict
		kind = "DUPLICATED_PRODUCT"
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     kind,
		Message:   err.Error(),
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}
