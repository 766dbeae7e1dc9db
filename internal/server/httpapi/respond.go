package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// respondTaskError writes the JSON error for a task operation. notFound is
// the message used for common.ErrorNotFound. Internal errors are logged and
// answered without detail.
func (h *Handler) respondTaskError(c *gin.Context, err error, notFound string) {
	var missing *validation.MissingKeysError

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error(), "missing": missing.Keys})
	case errors.Is(err, common.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
	case errors.Is(err, common.ErrBadPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must contain the key bool set to true or false"})
	case errors.Is(err, common.ErrWrongType), errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		h.log.Error(c.Request.Context(), "task operation failed", "route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
