// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/domain/validation"
	"passport/internal/errors"
	"passport/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.AuthMetrics
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AuthMetrics
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Validation and hashing happen before the transaction; bcrypt is
	// CPU-bound and must not hold a connection.
	newUser, err := entity.NewUser(input.Name, input.Email, input.Password, srv.hasher)
	if err != nil {
		srv.metrics.RegistrationAttempt(false)
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		return userRepo.Create(ctx, newUser)
	})

	if err != nil {
		srv.metrics.RegistrationAttempt(false)
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.metrics.RegistrationAttempt(true)
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login orchestrates the login process. All credential failures collapse to
// the same generic rejection so the response does not reveal whether the
// email exists.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	if err := validation.Login(&validation.LoginData{
		Email:    input.Email,
		Password: input.Password,
	}); err != nil {
		srv.metrics.LoginAttempt(false)

		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.metrics.LoginAttempt(false)
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !user.VerifyPassword(input.Password, srv.hasher) {
		srv.metrics.LoginAttempt(false)
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := srv.tokenService.Issue(&service.TokenPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		srv.metrics.LoginAttempt(false)
		srv.log(ctx).Error("Failed to issue tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	srv.metrics.LoginAttempt(true)
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.SessionOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// Refresh rotates a refresh token into a brand-new token pair.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Attempting token refresh")

	if err := validation.Refresh(&validation.RefreshData{
		RefreshToken: input.RefreshToken,
	}); err != nil {
		srv.metrics.TokenRefresh(false)

		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	tokens, err := srv.tokenService.Rotate(input.RefreshToken)
	if err != nil {
		srv.metrics.TokenRefresh(false)
		srv.log(ctx).Warn("Token refresh rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	srv.metrics.TokenRefresh(true)

	return &usecase.SessionOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
