package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHasher is a deterministic stand-in for the bcrypt hasher.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Check(plain, hash string) bool {
	return hash == "hashed:"+plain
}

// memoryUserRepo is an in-memory UserRepository with a unique email index,
// mirroring the behavior of the real PostgreSQL-backed repository.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

// stubTxManager runs the callback directly against a fixed factory; the tests
// do not exercise real transaction semantics.
type stubTxManager struct {
	repo repository.UserRepository
}

func (tm *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&stubRepoFactory{repo: tm.repo})
}

type stubRepoFactory struct {
	repo repository.UserRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository {
	return f.repo
}

// fakeTokenService issues trivially parseable token strings.
type fakeTokenService struct{}

func (fakeTokenService) Issue(payload *service.TokenPayload) (*service.AuthTokens, error) {
	return &service.AuthTokens{
		AccessToken:  "access:" + payload.UserID.String() + ":" + payload.Email,
		RefreshToken: "refresh:" + payload.UserID.String() + ":" + payload.Email,
		ExpiresIn:    900,
	}, nil
}

func (s fakeTokenService) VerifyAccess(token string) (*service.TokenPayload, error) {
	return s.verify(token, "access:", service.ErrAccessTokenInvalid)
}

func (s fakeTokenService) VerifyRefresh(token string) (*service.TokenPayload, error) {
	return s.verify(token, "refresh:", service.ErrRefreshTokenInvalid)
}

func (s fakeTokenService) Rotate(refreshToken string) (*service.AuthTokens, error) {
	payload, err := s.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	return s.Issue(payload)
}

func (fakeTokenService) verify(token, prefix string, sentinel error) (*service.TokenPayload, error) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return nil, sentinel
	}
	idStr, email, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, sentinel
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.Wrap(sentinel, "bad subject")
	}

	return &service.TokenPayload{UserID: id, Email: email}, nil
}

// countingMetrics records outcome counts per flow.
type countingMetrics struct {
	mu                       sync.Mutex
	registerOK, registerFail int
	loginOK, loginFail       int
	refreshOK, refreshFail   int
}

func (m *countingMetrics) RegistrationAttempt(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.registerOK++
	} else {
		m.registerFail++
	}
}

func (m *countingMetrics) LoginAttempt(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.loginOK++
	} else {
		m.loginFail++
	}
}

func (m *countingMetrics) TokenRefresh(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.refreshOK++
	} else {
		m.refreshFail++
	}
}
