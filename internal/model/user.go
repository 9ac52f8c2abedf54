package model

import "time"

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Name     string `json:"name"  msgpack:"name"     storm:"unique"`
	Email    string `json:"email" msgpack:"email"    storm:"unique"`
	Password string `json:"-"     msgpack:"password"`
	Role     string `json:"role"  msgpack:"role"     storm:"index"`

	// Password reset one-time code.
	ResetOTP        string     `json:"-" msgpack:"reset_otp,omitempty"`
	ResetOTPExpires *time.Time `json:"-" msgpack:"reset_otp_expires,omitempty"`

	ProfilePicture string `json:"profile_picture,omitempty" msgpack:"profile_picture,omitempty"`
	DeviceToken    string `json:"-"                         msgpack:"device_token,omitempty"`
}

// NewUser returns a new user with default params.
func NewUser() *User {
	return &User{
		Role: RoleStudent,
	}
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
