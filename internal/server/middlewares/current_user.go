package middlewares

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/pkg/errors"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// tokenContextKey is where the JWT middleware stores the parsed token.
	tokenContextKey = "user"
)

// CurrentUser checks current_user based on JWT and stores it into echo.Context.
// It must run after the JWT middleware. Blocked users are rejected here, so no
// handler ever sees an inactive caller.
func CurrentUser(db database.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				panic("token implementation has changed")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				panic("token implementation has wrong type of claims")
			}

			id, ok := claims["user_uuid"].(string)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Invalid login credentials.",
					},
				})
			}

			// Get current_user.
			user, err := db.FindUser(id)
			if err != nil {
				if db.IsNotFound(err) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": echo.Map{
							"tag":     "invalid-auth",
							"message": "No such user for given token.",
						},
					})
				}
				return errors.Wrap(err, "could not get access to database")
			}

			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "user-blocked",
						"message": "User is blocked, talk with an admin.",
					},
				})
			}

			// Store current_user for handlers.
			c.Set(CurrentUserContextKey, user)

			if err = next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}
