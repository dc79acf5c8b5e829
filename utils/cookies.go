package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	PendingLoginCookie = "pending_login"
	SessionCookie      = "token"

	// LoggedOutValue overwrites the session cookie on logout.
	LoggedOutValue = "none"
)

// SetAuthCookie writes an http-only, SameSite=Lax cookie that lives for ttl.
func SetAuthCookie(c *gin.Context, name, value string, ttl time.Duration, secure bool) {
	maxAge := int(ttl / time.Second)
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// ClearAuthCookie expires the named cookie immediately.
func ClearAuthCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}

// IsPlaceholderToken reports values clients send when they hold no real credential.
func IsPlaceholderToken(token string) bool {
	switch token {
	case "", "none", "null", "undefined":
		return true
	}
	return false
}
