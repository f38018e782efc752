package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/pkg/errors"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// HeaderUserID carries the identity asserted by the authentication gateway.
	HeaderUserID = "X-User-ID"
)

// CurrentUser loads the user identified by the X-User-ID header and stores it into echo.Context.
// When required is false, requests without the header go through anonymously.
func CurrentUser(db database.Client, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderUserID)
			if id == "" {
				if !required {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Missing user identity.",
					},
				})
			}

			user, err := db.FindUser(id)
			if err != nil {
				if db.IsNotFound(err) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": echo.Map{
							"tag":     "invalid-auth",
							"message": "No such user for given identity.",
						},
					})
				}
				return errors.Wrap(err, "could not get access to database")
			}

			// Store current_user for handlers.
			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}
