package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/mailer"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/server/token"
)

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 6

// OTPValidity is how long a password-reset code stays valid.
const OTPValidity = 10 * time.Minute

type (
	// RegisterParams are used to register a user.
	RegisterParams struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// ResetPasswordParams are used to set a new credential after OTP verification.
	ResetPasswordParams struct {
		UserID      string `json:"userId"`
		NewPassword string `json:"newPassword"`
	}

	// A UserService handles registration, login and credential recovery.
	UserService struct {
		db     database.Client
		tokens token.Manager
		mailer mailer.Mailer
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, tokens token.Manager, m mailer.Mailer) *UserService {
	return &UserService{
		db:     db,
		tokens: tokens,
		mailer: m,
	}
}

// Register creates a user account and returns an authenticated render.
func (s *UserService) Register(params RegisterParams) (M, error) {
	if _, err := s.db.FindUserByName(params.Name); err == nil {
		return nil, lferror.BadRequest("Username already exists")
	} else if !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if _, err := s.db.FindUserByMail(params.Email); err == nil {
		return nil, lferror.BadRequest("Email already exists")
	} else if !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if len(params.Password) < MinPasswordLength {
		return nil, lferror.BadRequest(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	user := model.NewUser()
	user.Name = params.Name
	user.Email = params.Email
	if params.Role == model.RoleAdmin {
		user.Role = model.RoleAdmin
	}

	var err error
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}

	if err := s.db.Save(user); err != nil {
		if s.db.IsAlreadyExists(err) {
			return nil, lferror.BadRequest("Email already exists")
		}
		return nil, errors.Wrap(err, "could not persist user")
	}

	return s.authenticated("Successfully registered", user)
}

// Login authenticates a user and returns a bearer token.
func (s *UserService) Login(params LoginParams) (M, error) {
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, lferror.BadRequest("Invalid credentials")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, lferror.BadRequest("Invalid credentials")
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	return s.authenticated("Login successful", user)
}

// ForgotPassword generates a one-time code and mails it to the user.
func (s *UserService) ForgotPassword(email string) (M, error) {
	user, err := s.db.FindUserByMail(email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, lferror.NotFound("No account found with this email")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(OTPValidity)

	user.ResetOTP = otp
	user.ResetOTPExpires = &expires
	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	if err := s.mailer.SendOTP(user.Email, otp); err != nil {
		return nil, errors.Wrap(err, "could not send reset code")
	}

	return M{"message": "A 6-digit code has been sent to your email"}, nil
}

// VerifyOTP checks a one-time code and returns the user id used by ResetPassword.
func (s *UserService) VerifyOTP(email, otp string) (M, error) {
	user, err := s.db.FindUserByMail(email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, lferror.BadRequest("Invalid OTP")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	if user.ResetOTP == "" || user.ResetOTP != otp {
		return nil, lferror.BadRequest("Invalid OTP")
	}

	if user.ResetOTPExpires == nil || user.ResetOTPExpires.Before(time.Now()) {
		return nil, lferror.BadRequest("OTP has expired")
	}

	return M{
		"message": "OTP verified successfully",
		"userId":  user.ID,
	}, nil
}

// ResetPassword sets a new credential and logs the user in.
func (s *UserService) ResetPassword(params ResetPasswordParams) (M, error) {
	if params.UserID == "" || len(params.NewPassword) < MinPasswordLength {
		return nil, lferror.BadRequest(fmt.Sprintf("User ID and new password (min %d characters) required", MinPasswordLength))
	}

	user, err := s.db.FindUser(params.UserID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, lferror.NotFound("User not found")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	user.Password, err = argon2.GenerateFromPasswordString(params.NewPassword, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}
	user.ResetOTP = ""
	user.ResetOTPExpires = nil

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return s.authenticated("Password reset successful. You are now logged in.", user)
}

// UpdateDeviceToken records the push-messaging device token of the user.
func (s *UserService) UpdateDeviceToken(user *model.User, deviceToken string) error {
	user.DeviceToken = deviceToken
	return errors.Wrap(s.db.Save(user), "could not persist user")
}

func (s *UserService) authenticated(message string, user *model.User) (M, error) {
	t, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return M{
		"message": message,
		"token":   t,
		"user": M{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", errors.Wrap(err, "could not generate OTP")
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
