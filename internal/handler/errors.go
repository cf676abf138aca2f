package handler

import (
	"errors"
	"net/http"

	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps the service error taxonomy onto HTTP status
// codes and writes the shared envelope.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrBudgetNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrBuiltInImmutable):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConfirmationRequired):
		status = http.StatusConflict
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// confirmParam reads the ?confirm=true guard used by destructive endpoints.
func confirmParam(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
