package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
)

// Client facing messages. The first two are part of the public contract.
const (
	msgUnauthorized = "Unauthorized Access"
	msgForbidden    = "Forbidden Access"
	msgBadRequest   = "Bad Request"
	msgInternal     = "Internal Server Error"
)

// errInvalidQuery marks a malformed query parameter
var errInvalidQuery = errors.New("invalid query parameter")

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUnauthorized),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, core.ErrInvalidID), errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest, msgBadRequest
	}
	return http.StatusInternalServerError, msgInternal
}

// abortWithError writes the response for err and stops the handler chain.
// Only unexpected failures are logged at error level.
func abortWithError(c *gin.Context, log logger.Logger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(c.Request.Context(), "request failed",
			logger.String("method", c.Request.Method),
			logger.String("route", c.FullPath()),
			logger.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
