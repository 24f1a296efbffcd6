package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	require.FailNow(t, "no session cookie set")
	return nil
}

func TestSessionHandlers_Issue(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		secure     bool
		sameSite   http.SameSite
	}{
		{"development", false, false, http.SameSiteStrictMode},
		{"production", true, true, http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.production)

			w := env.do(t, http.MethodPost, "/jwt", "", map[string]any{"email": "a@x.com", "name": "A"})
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"success":true}`, w.Body.String())

			cookie := sessionCookie(t, w.Result())
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "/", cookie.Path)
			assert.Equal(t, 24*60*60, cookie.MaxAge)
			assert.Equal(t, tt.secure, cookie.Secure)
			assert.Equal(t, tt.sameSite, cookie.SameSite)

			session, err := env.sessions.Verify(context.Background(), cookie.Value)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", session.Email)
			assert.Equal(t, env.sessions.TTL(), session.ExpiresAt.Sub(session.IssuedAt))
		})
	}
}

func TestSessionHandlers_IssueAcceptsAnyClaim(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		email string
	}{
		{"numeric email", map[string]any{"email": 5}, "5"},
		{"object email", map[string]any{"email": map[string]any{"addr": "a@x.com"}}, ""},
		{"no email", map[string]any{"name": "A"}, ""},
		{"no body", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)

			w := env.do(t, http.MethodPost, "/jwt", "", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			session, err := env.sessions.Verify(context.Background(), sessionCookie(t, w.Result()).Value)
			require.NoError(t, err)
			assert.Equal(t, tt.email, session.Email)
		})
	}
}

func TestSessionHandlers_IssueRejectsNonObjectBody(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/jwt", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionHandlers_Logout(t *testing.T) {
	for _, production := range []bool{false, true} {
		env := newTestEnv(t, production)

		// works without any credential present
		w := env.do(t, http.MethodPost, "/logout", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		cookie := sessionCookie(t, w.Result())
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
		assert.True(t, cookie.Secure)
		if production {
			assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
		} else {
			assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		}
	}
}
