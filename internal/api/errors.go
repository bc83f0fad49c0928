package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sahachari/internal/generator"
	"sahachari/internal/provider"
	"sahachari/internal/recipe"
	"sahachari/internal/speech"
	"sahachari/internal/vision"
)

// writeError maps domain errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var validationErr *recipe.ValidationError
	var serviceErr *provider.ExternalServiceError

	switch {
	case errors.Is(err, recipe.ErrNotFound):
		c.String(http.StatusNotFound, "Recipe not found")
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErr.Problems})
	case errors.Is(err, generator.ErrUnsupportedCategory),
		errors.Is(err, vision.ErrInvalidImage),
		errors.Is(err, speech.ErrEmptyText),
		errors.Is(err, speech.ErrTextTooLong):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		c.String(http.StatusRequestTimeout, "request timed out")
	case errors.Is(err, provider.ErrUnavailable):
		c.String(http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &serviceErr):
		slog.Error("External service failed", "provider", serviceErr.Provider, "error", err)
		c.String(http.StatusBadGateway, err.Error())
	default:
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
		c.String(http.StatusInternalServerError, err.Error())
	}
}
