package auth

import "errors"

var (
	// Identity failures.
	ErrUnauthenticated = errors.New("not authorized to access this route")
	ErrTokenInvalid    = errors.New("token is invalid or expired")
	ErrStageMismatch   = errors.New("token is not a pending login token")
	ErrUserGone        = errors.New("user no longer exists")
	ErrForbidden       = errors.New("role is not authorized to access this route")

	// Login.
	ErrMissingInput       = errors.New("required input is missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("password does not match")
	ErrNotifierFailure    = errors.New("failed to deliver login code")

	// OTP verification.
	ErrNoActiveChallenge = errors.New("no active login challenge")
	ErrExpired           = errors.New("login code has expired")
	ErrMismatch          = errors.New("login code does not match")

	// Registration.
	ErrDuplicate  = errors.New("email is already registered")
	ErrValidation = errors.New("registration data is invalid")
)
