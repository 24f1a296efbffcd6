package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls how the session credential is stored on the client
type CookieConfig struct {
	Name string
	// Production makes the cookie Secure and SameSite=None so that the
	// separately hosted frontend can send it cross-site.
	Production bool
}

func (cc CookieConfig) sameSite() http.SameSite {
	if cc.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func (cc CookieConfig) set(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(cc.sameSite())
	c.SetCookie(cc.Name, token, int(ttl/time.Second), "/", "", cc.Production, true)
}

// clear expires the cookie whether or not the client holds one
func (cc CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(cc.sameSite())
	c.SetCookie(cc.Name, "", -1, "/", "", true, true)
}
