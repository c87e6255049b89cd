// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tripdesk/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeTripError maps the trip module's error taxonomy onto HTTP statuses.
// Persistence faults surface as a generic 500; the cause is logged with
// context server-side and never echoed to the caller.
func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrValidation),
		errors.Is(err, trip.ErrEmptyPatch),
		errors.Is(err, trip.ErrInvalidState),
		errors.Is(err, trip.ErrTerminalState):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrResourceUnavailable),
		errors.Is(err, trip.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
