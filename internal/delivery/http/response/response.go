// Package response defines the JSON bodies of the HTTP surface.
package response

import (
	"github.com/labstack/echo/v4"
)

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Error   string `json:"error"`   // Business error code, e.g., "EMAIL_TAKEN"
	Message string `json:"message"` // User-friendly message
}

// MessageBody carries a bare confirmation message.
type MessageBody struct {
	Message string `json:"message"`
}

// UserBody wraps a user projection.
type UserBody struct {
	User any `json:"user"`
}

// UserMessageBody pairs a confirmation message with a user projection.
type UserMessageBody struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

// SessionBody carries an issued token pair.
type SessionBody struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Error writes the uniform error payload.
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	return c.JSON(statusCode, ErrorBody{
		Error:   errorCode,
		Message: message,
	})
}

// Message writes a bare confirmation payload.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageBody{Message: message})
}

// User writes a user projection without a message.
func User(c echo.Context, statusCode int, user any) error {
	return c.JSON(statusCode, UserBody{User: user})
}

// UserWithMessage writes a confirmation message together with a user projection.
func UserWithMessage(c echo.Context, statusCode int, message string, user any) error {
	return c.JSON(statusCode, UserMessageBody{
		Message: message,
		User:    user,
	})
}

// Session writes an issued token pair.
func Session(c echo.Context, statusCode int, message, accessToken, refreshToken string, expiresIn int64) error {
	return c.JSON(statusCode, SessionBody{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}
