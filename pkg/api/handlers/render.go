package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/aqarai/pkg/api/types"
	"github.com/urmzd/aqarai/pkg/aqara"
)

// renderError maps the client error taxonomy onto HTTP statuses. Every
// handler funnels failures through here so no error kind escapes as a 500
// stack trace.
func renderError(c *gin.Context, err error) {
	var verr *aqara.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: verr.Error(),
		})
		return
	}

	var apiErr *aqara.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "vendor_error",
			Message: apiErr.Error(),
		})
		return
	}

	var terr *aqara.TransportError
	if errors.As(err, &terr) {
		status := http.StatusBadGateway
		if terr.Kind == aqara.TransportTimeout {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, types.ErrorResponse{
			Error:   "transport_error",
			Message: terr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
