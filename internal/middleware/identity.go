package middleware

// identity.go defines helper functions shared across middleware files.
// CallerUsername pulls the username the JWT middleware stored in the
// Echo context; "guest" is returned for unauthenticated requests so log
// lines and rate-limit keys always carry a stable identity field.

import "github.com/labstack/echo/v4"

// CallerUsername extracts the authenticated username from context. It
// returns "guest" when no user is authenticated.
func CallerUsername(c echo.Context) string {
    if v, ok := c.Get("username").(string); ok && v != "" {
        return v
    }
    return "guest"
}
