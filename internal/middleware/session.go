package middleware

import (
	"errors"
	"net/http"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/repository"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

const sessionKey = "shopfront_session"

// SessionFrom returns the session stashed by RequireSession. It panics
// outside guarded routes, which would be a routing bug.
func SessionFrom(c echo.Context) *model.Session {
	return c.Get(sessionKey).(*model.Session)
}

// RequireSession resolves the session cookie and stores the session in
// the request context. A missing, unknown or expired session answers 401
// with the login redirect for the area; handlers never see a request
// without a live session.
func RequireSession(auth service.AuthService, cookieName string, staffOnly bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return authExpired(c, cookieName, staffOnly)
			}

			sess, err := auth.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, client.ErrAuthExpired) || errors.Is(err, repository.ErrSessionNotFound) {
					return authExpired(c, cookieName, staffOnly)
				}
				return err
			}
			if staffOnly && !sess.Staff {
				return echo.NewHTTPError(http.StatusForbidden, "staff account required")
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// authExpired is the single reaction point for a dead session: the
// cookie is dropped and the client is told where to log back in.
func authExpired(c echo.Context, cookieName string, staffArea bool) error {
	login := "/login"
	if staffArea {
		login = "/admin/login"
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
		"message":  "session expired, please log in again",
		"redirect": login,
	})
}
