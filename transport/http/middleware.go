package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/service"
)

const identityKey = "identity"

// SessionGuard creates middleware that requires a valid session credential.
// The credential is read from the session cookie, or from a Bearer
// Authorization header for non-browser clients.
func SessionGuard(sessions *service.SessionService, cookie CookieConfig, log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookie.Name)
		if token == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token = auth[len("Bearer "):]
			}
		}

		session, err := sessions.Verify(c.Request.Context(), token)
		if err != nil {
			m.AuthRejected("unauthorized")
			log.Debug(c.Request.Context(), "session rejected",
				logger.String("route", c.FullPath()),
				logger.Error(err))
			abortWithError(c, log, core.ErrUnauthorized)
			return
		}

		c.Set(identityKey, session.Identity())
		c.Next()
	}
}

// identityFrom returns the identity attached by SessionGuard
func identityFrom(c *gin.Context) (core.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return core.Identity{}, false
	}
	identity, ok := v.(core.Identity)
	return identity, ok
}

// requestLogger logs one line per request
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Any("latency", time.Since(start)),
			logger.String("client_ip", c.ClientIP()))
	}
}

// requestMetrics records request counts and latency per route template
func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
