package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/msepulse/internal/domain/apperr"
	"github.com/guttosm/msepulse/internal/domain/dto"
	"github.com/guttosm/msepulse/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error when the handler
// did not write a response itself.
//
// Application errors are mapped with apperr.HTTPStatus. Anything else is a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	AbortWithError(c, apperr.HTTPStatus(err), apperr.PublicMessage(err), err)
}

// AbortWithError stops the chain and writes a dto.ErrorResponse.
//
// The error detail is only serialized for 4xx statuses. Server errors are
// logged with the request id and the client gets message alone.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		rid, _ := c.Get(RequestIDKey)
		logger.L().Error().
			Err(err).
			Str("request_id", toString(rid)).
			Str("route", routeOf(c)).
			Int("status", status).
			Msg("request failed")
		c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, nil))
		return
	}

	// Don't repeat the message as its own detail.
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Err == nil {
		err = nil
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
