package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"cowork/services/auth"
	"cowork/utils"

	"github.com/gin-gonic/gin"
)

// Authorize must run after Protect. It checks the role read from the store on
// this request.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.JSONError(c, http.StatusUnauthorized, notAuthorizedMsg, auth.ErrUnauthenticated)
			return
		}
		if !slices.Contains(roles, user.Role) {
			utils.JSONError(c, http.StatusForbidden,
				fmt.Sprintf("User role %s is not authorized to access this route", user.Role),
				auth.ErrForbidden)
			return
		}
		c.Next()
	}
}
