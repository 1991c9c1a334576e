package middleware

import (
	"strings"

	autherrors "hris-account/internal/auth/errors"
	"hris-account/internal/shared/apperror"
	"hris-account/internal/shared/contextutil"
	"hris-account/internal/shared/response"
	"hris-account/internal/shared/session"

	"github.com/gin-gonic/gin"
)

const accessTokenCookie = "access_token"

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.AbortWithError(c, err.HTTPStatus, err.Code, err.Message)
}

// AuthMiddleware accepts a Bearer token or the access_token cookie and puts
// user_id and role on the gin context.
func AuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(accessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrMissingToken)
			return
		}

		claims, err := sessions.Parse(tokenString)
		if err != nil {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}
