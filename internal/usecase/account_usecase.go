package usecase

import (
	"context"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
)

// UpdateProfileInput carries the optional fields of a profile update.
// A nil field means "leave unchanged".
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ProfileOutput returns the public projection of an account.
type ProfileOutput struct {
	User *entity.PublicUser `json:"user"`
}

// AccountUsecase defines the interface for operations on the authenticated
// user's own account.
type AccountUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*ProfileOutput, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
