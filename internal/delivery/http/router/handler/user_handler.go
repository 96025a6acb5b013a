package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/usecase"
)

// UserHandler holds dependencies for the authenticated account handlers.
type UserHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.AccountUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile handles the request for the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
	}

	output, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.User(c, http.StatusOK, output.User)
}

// UpdateProfile handles the partial profile update request.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "invalid profile update input")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.UserWithMessage(c, http.StatusOK, "User updated successfully", output.User)
}

// DeleteAccount handles the account removal request.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "User deleted successfully")
}
