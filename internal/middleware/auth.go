package middleware

import (
	"net/http"
	"strings"

	"github.com/deannos/solutions-company-website/internal/auth"
	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is where AuthMiddleware stores the resolved user.
const CurrentUserKey = "currentUser"

// SessionToken extracts the session token from a request, in order:
// Authorization: Bearer header, ?token= query parameter, session cookie.
// Empty string means the request is anonymous.
func SessionToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware resolves the session token to a user and puts it in the gin
// context. Requests without a live session are rejected with 401 and no
// further data.
func AuthMiddleware(authn *auth.Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)

		user, err := authn.CurrentUser(c.Request.Context(), token)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "an error occurred while processing your request")
			c.Abort()
			return
		}
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser reads the user placed in the context by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
