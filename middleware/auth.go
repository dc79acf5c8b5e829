package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cowork/models"
	"cowork/services/auth"
	"cowork/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey        = "user"
	ContextPendingUserKey = "pendingUser"
)

const notAuthorizedMsg = "Not authorized to access this route"

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// isIdentityFailure reports errors that mean "who you are could not be established".
func isIdentityFailure(err error) bool {
	return errors.Is(err, auth.ErrUnauthenticated) ||
		errors.Is(err, auth.ErrTokenInvalid) ||
		errors.Is(err, auth.ErrStageMismatch) ||
		errors.Is(err, auth.ErrUserGone)
}

// RequirePendingLogin admits only holders of a pending login token. Any failure
// also clears the pending cookie.
func RequirePendingLogin(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		secure := svc.Options().SecureCookies

		token, _ := c.Cookie(utils.PendingLoginCookie)
		if utils.IsPlaceholderToken(token) {
			token = bearerToken(c)
		}

		user, err := svc.ResolvePending(c.Request.Context(), token)
		if err != nil {
			utils.ClearAuthCookie(c, utils.PendingLoginCookie, secure)
			if isIdentityFailure(err) {
				utils.JSONError(c, http.StatusUnauthorized, notAuthorizedMsg, err)
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
			return
		}

		c.Set(ContextPendingUserKey, user)
		c.Next()
	}
}

// Protect admits only holders of a session token and attaches the live user.
func Protect(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if utils.IsPlaceholderToken(token) {
			token, _ = c.Cookie(utils.SessionCookie)
		}

		user, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if isIdentityFailure(err) {
				utils.JSONError(c, http.StatusUnauthorized, notAuthorizedMsg, err)
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// PendingUser returns the user attached by RequirePendingLogin.
func PendingUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextPendingUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
