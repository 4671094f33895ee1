package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/domain/access"
)

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (access.Principal, error)
}

const principalKey = "principal"

// Session resolves the Authorization bearer token into an access.Principal
// stored in the request context. Requests without a token continue
// anonymously; a malformed or expired token is rejected with 401.
func Session(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				return next(c)
			}
			scheme, token, ok := strings.Cut(raw, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return jsonErr(c, http.StatusUnauthorized, "malformed Authorization header")
			}
			p, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return jsonErr(c, http.StatusUnauthorized, "invalid or expired token")
			}
			req := c.Request()
			c.SetRequest(req.WithContext(access.WithPrincipal(req.Context(), p)))
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// Require runs guard against the session principal before dispatch.
func Require(guard access.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard(access.FromContext(c.Request().Context()))
			switch {
			case d.Allowed:
				return next(c)
			case d.Unauthenticated:
				return jsonErr(c, http.StatusUnauthorized, d.Reason)
			default:
				return jsonErr(c, http.StatusForbidden, d.Reason)
			}
		}
	}
}
