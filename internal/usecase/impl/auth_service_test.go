package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/errors"
	"passport/internal/usecase"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *memoryUserRepo
	metrics  *countingMetrics
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	userRepo := newMemoryUserRepo()
	metrics := &countingMetrics{}

	service := NewAuthService(AuthServiceParams{
		TxManager:    &stubTxManager{repo: userRepo},
		UserRepo:     userRepo,
		Hasher:       fakeHasher{},
		TokenService: fakeTokenService{},
		Metrics:      metrics,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:  service,
		userRepo: userRepo,
		metrics:  metrics,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Password: "Password123",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	output, err := fx.service.Register(ctx, validRegisterInput())

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, "Ana Silva", output.User.Name)
	assert.Equal(t, "ana@example.com", output.User.Email)
	assert.NotEqual(t, uuid0, output.User.ID.String())

	stored, err := fx.userRepo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:Password123", stored.PasswordHash)
	assert.Equal(t, 1, fx.metrics.registerOK)
}

const uuid0 = "00000000-0000-0000-0000-000000000000"

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Name = "Other Person"

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	assert.Equal(t, 1, fx.metrics.registerFail)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	input := validRegisterInput()
	input.Password = "weak"

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, 1, fx.metrics.registerFail)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "Password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, int64(900), output.ExpiresIn)
	assert.Equal(t, 1, fx.metrics.loginOK)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, 1, fx.metrics.loginFail)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "WrongPassword1",
	})

	assert.Nil(t, output)
	// Same rejection as an unknown email so responses do not leak which
	// part of the credentials was wrong.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_MalformedEmail(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "not-an-email",
		Password: "Password123",
	})

	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAuthService_Refresh_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	session, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "Password123",
	})
	require.NoError(t, err)

	rotated, err := fx.service.Refresh(ctx, &usecase.RefreshInput{
		RefreshToken: session.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
	assert.Equal(t, 1, fx.metrics.refreshOK)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: "garbage",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	assert.Equal(t, 1, fx.metrics.refreshFail)
}

func TestAuthService_Refresh_MissingToken(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Refresh(context.Background(), &usecase.RefreshInput{})

	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}
