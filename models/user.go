// models/user.go
package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a platform user. LoginOTPDigest and LoginOTPExpire are set and
// unset together; both are nil when no login challenge is outstanding.
type User struct {
	ID             string     `bson:"_id" json:"_id"`
	Name           string     `bson:"name" json:"name"`
	Telephone      string     `bson:"telephone" json:"telephone"`
	Email          string     `bson:"email" json:"email"`
	Role           string     `bson:"role" json:"role"`
	PasswordHash   string     `bson:"password" json:"-"`
	LoginOTPDigest *string    `bson:"loginOtpCode,omitempty" json:"-"`
	LoginOTPExpire *time.Time `bson:"loginOtpExpire,omitempty" json:"-"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasLoginChallenge reports whether both challenge fields are present.
func (u *User) HasLoginChallenge() bool {
	return u.LoginOTPDigest != nil && u.LoginOTPExpire != nil
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Telephone string `json:"telephone" binding:"required,telephone"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login. Fields are checked by the
// handler so a missing value maps to the dedicated 400 message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}
