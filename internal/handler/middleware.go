package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// SessionCookie is the name of the httpOnly session cookie.
const SessionCookie = "session"

// SessionMiddleware resolves the session cookie to a user and adds the
// user to the request context. Requests without a valid session stop
// here with a 401.
func SessionMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "session cookie is required",
			})
			c.Abort()
			return
		}

		user, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

// AdminMiddleware allows only administrators past. It must run after
// SessionMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		user, ok := value.(*domain.User)
		if !exists || !ok || !user.IsAdmin {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "administrator access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// userID returns the authenticated user's ID set by SessionMiddleware.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
