package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// HeaderAuthToken is the custom header bearer tokens arrive in.
const HeaderAuthToken = "x-auth-token"

// Auth gates protected routes: it verifies the x-auth-token header and
// resolves the embedded id to a live user before letting the request
// through. The resolved user is stored in the echo context under "userID"
// and "user".
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderAuthToken)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token provided, authorization denied"})
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is not valid"})
			}

			// A valid signature is not enough: the user may have been
			// deleted after the token was issued.
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Users not found!"})
				}
				return err
			}

			c.Set("userID", user.ID)
			c.Set("user", user)

			return next(c)
		}
	}
}
