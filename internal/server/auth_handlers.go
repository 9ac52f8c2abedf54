package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/server/service"
)

// auth contains all authentication handlers.
type auth struct {
	users *service.UserService
}

///// Register
////
//

// Register handler creates a user account and logs it in.
func (h *auth) Register(c echo.Context) error {
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get user's params."))
	}

	if params.Name == "" || params.Email == "" || params.Password == "" {
		return lferror.BadRequest("All fields are required")
	}

	register, err := h.users.Register(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, register)
}

///// Login
////
//

// Login authenticates a user and returns a bearer token.
func (h *auth) Login(c echo.Context) error {
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return lferror.BadRequest("All fields are required")
	}

	login, err := h.users.Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}

///// Forgot password
////
//

// ForgotPassword mails a one-time code to the user.
func (h *auth) ForgotPassword(c echo.Context) error {
	var params struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	if params.Email == "" {
		return lferror.BadRequest("Email is required")
	}

	render, err := h.users.ForgotPassword(params.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, render)
}

///// Verify OTP
////
//

// VerifyOTP checks the one-time code sent by mail.
func (h *auth) VerifyOTP(c echo.Context) error {
	var params struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	if params.Email == "" || len(params.OTP) != 6 {
		return lferror.BadRequest("Email and 6-digit OTP required")
	}

	render, err := h.users.VerifyOTP(params.Email, params.OTP)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, render)
}

///// Reset password
////
//

// ResetPassword sets a new credential after OTP verification and logs the user in.
func (h *auth) ResetPassword(c echo.Context) error {
	var params service.ResetPasswordParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	render, err := h.users.ResetPassword(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, render)
}

///// Update device token
////
//

// UpdateDeviceToken records the caller's push-messaging device token.
func (h *auth) UpdateDeviceToken(c echo.Context) error {
	var params struct {
		DeviceToken string `json:"deviceToken"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	if params.DeviceToken == "" {
		return lferror.BadRequest("Device token required")
	}

	if err := h.users.UpdateDeviceToken(currentUser(c), params.DeviceToken); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Device token updated"})
}
