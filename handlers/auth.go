package handlers

import (
	"errors"
	"net/http"
	"time"

	"cowork/middleware"
	"cowork/models"
	"cowork/services/auth"
	"cowork/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const logoutCookieTTL = 10 * time.Second

type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) secure() bool {
	return h.Service.Options().SecureCookies
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	if _, err := h.Service.Register(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicate):
			utils.JSONError(c, http.StatusBadRequest, "Email is already registered", err)
		case errors.Is(err, auth.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, "Please provide a name, email and password", err)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "msg": "User registered successfully"})
}

// Login handles POST /auth/login. A correct password starts an OTP challenge;
// no session token is issued here.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Malformed login body", zap.Error(err))
	}

	challenge, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingInput):
			utils.JSONError(c, http.StatusBadRequest, "Please provide an email and password", err)
		case errors.Is(err, auth.ErrInvalidCredentials):
			utils.JSONError(c, http.StatusBadRequest, "Invalid credentials", err)
		case errors.Is(err, auth.ErrPasswordMismatch):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", err)
		case errors.Is(err, auth.ErrNotifierFailure):
			utils.ClearAuthCookie(c, utils.PendingLoginCookie, h.secure())
			utils.JSONError(c, http.StatusInternalServerError, "Email could not be sent", err)
		default:
			utils.ClearAuthCookie(c, utils.PendingLoginCookie, h.secure())
			utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	utils.SetAuthCookie(c, utils.PendingLoginCookie, challenge.PendingToken, time.Until(challenge.ExpiresAt), h.secure())
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"otpRequired": true,
		"msg":         "OTP sent to your email",
	})
}

// VerifyOTP handles POST /auth/verify-otp behind RequirePendingLogin. Every
// outcome clears the pending cookie.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	user := middleware.PendingUser(c)
	secure := h.secure()
	utils.ClearAuthCookie(c, utils.PendingLoginCookie, secure)
	if user == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized to access this route", auth.ErrUnauthenticated)
		return
	}

	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Malformed verify-otp body", zap.Error(err))
	}

	grant, err := h.Service.VerifyOTP(c.Request.Context(), user, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingInput):
			utils.JSONError(c, http.StatusBadRequest, "Please provide the OTP", err)
		case errors.Is(err, auth.ErrExpired):
			utils.JSONError(c, http.StatusBadRequest, "OTP has expired, please log in again", err)
		case errors.Is(err, auth.ErrNoActiveChallenge):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or used OTP, please log in again", err)
		case errors.Is(err, auth.ErrMismatch):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid OTP, please log in again", err)
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	utils.SetAuthCookie(c, utils.SessionCookie, grant.Token, h.Service.Options().CookieTTL, secure)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"_id":       grant.User.ID,
		"name":      grant.User.Name,
		"telephone": grant.User.Telephone,
		"email":     grant.User.Email,
		"token":     grant.Token,
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": middleware.CurrentUser(c)})
}

// Logout handles GET /auth/logout. Session tokens are stateless, so this only
// overwrites the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SetAuthCookie(c, utils.SessionCookie, utils.LoggedOutValue, logoutCookieTTL, h.secure())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
