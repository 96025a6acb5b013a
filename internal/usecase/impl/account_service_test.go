package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/errors"
	"passport/internal/usecase"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	userRepo *memoryUserRepo
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	userRepo := newMemoryUserRepo()

	service := NewAccountService(AccountServiceParams{
		TxManager: &stubTxManager{repo: userRepo},
		UserRepo:  userRepo,
		Hasher:    fakeHasher{},
		Logger:    newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:  service,
		userRepo: userRepo,
	}
}

func seedUser(t *testing.T, repo *memoryUserRepo, name, email, password string) *entity.User {
	t.Helper()

	user, err := entity.NewUser(name, email, password, fakeHasher{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func TestAccountService_GetProfile_Success(t *testing.T) {
	fx := createTestAccountService(t)
	user := seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")

	output, err := fx.service.GetProfile(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.ID, output.User.ID)
	assert.Equal(t, "Ana Silva", output.User.Name)
	assert.Equal(t, "ana@example.com", output.User.Email)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	output, err := fx.service.GetProfile(context.Background(), uuid.New())

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_UpdateProfile_PartialUpdate(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")

	newName := "Ana Souza"
	output, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{
		Name: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", output.User.Name)
	assert.Equal(t, "ana@example.com", output.User.Email)

	stored, err := fx.userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", stored.Name)
	assert.Equal(t, "hashed:Password123", stored.PasswordHash)
}

func TestAccountService_UpdateProfile_RehashesPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")

	newPassword := "NewPassword456"
	_, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{
		Password: &newPassword,
	})
	require.NoError(t, err)

	stored, err := fx.userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:NewPassword456", stored.PasswordHash)
}

func TestAccountService_UpdateProfile_InvalidField(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")

	badEmail := "not-an-email"
	output, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{
		Email: &badEmail,
	})

	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	stored, findErr := fx.userRepo.FindByID(ctx, user.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestAccountService_UpdateProfile_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")
	other := seedUser(t, fx.userRepo, "Bia Costa", "bia@example.com", "Password123")

	takenEmail := "ana@example.com"
	output, err := fx.service.UpdateProfile(ctx, other.ID, &usecase.UpdateProfileInput{
		Email: &takenEmail,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_UpdateProfile_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	newName := "Ana Souza"
	output, err := fx.service.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{
		Name: &newName,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := seedUser(t, fx.userRepo, "Ana Silva", "ana@example.com", "Password123")

	require.NoError(t, fx.service.DeleteAccount(ctx, user.ID))

	_, err := fx.service.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, fx.service.DeleteAccount(ctx, user.ID), domainerrors.ErrUserNotFound)
}
