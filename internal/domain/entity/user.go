// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"

	"passport/internal/domain/service"
	"passport/internal/domain/validation"
	"passport/internal/errors"
)

// User is the core identity record. PasswordHash holds the salted bcrypt
// output of the user's password, never the plaintext; it is excluded from
// JSON serialization entirely.
//
// The two construction paths are explicit: NewUser validates raw input and
// hashes the password, Restore rehydrates a stored record without touching
// the hash. There is deliberately no constructor that guesses which mode
// applies from the shape of the password string.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpdateData is a partial update of the mutable profile fields. Nil fields
// are left untouched.
type UpdateData struct {
	Name     *string
	Email    *string
	Password *string
}

// PublicUser is the JSON-safe projection of a User. It never carries the
// credential hash.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser builds a fresh identity from raw registration input. The input is
// validated against the registration rules and the password is hashed before
// the entity exists, so a User never holds a plaintext credential.
func NewUser(name, email, rawPassword string, hasher service.PasswordHasher) (*User, error) {
	if err := validation.Register(&validation.RegisterData{
		Name:     name,
		Email:    email,
		Password: rawPassword,
	}); err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(rawPassword)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := time.Now()

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Restore rehydrates a User from storage. The stored hash passes through
// unchanged; no re-validation and no re-hashing happen on this path.
func Restore(id uuid.UUID, name, email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// VerifyPassword checks a plaintext candidate against the stored hash.
func (u *User) VerifyPassword(plain string, hasher service.PasswordHasher) bool {
	return hasher.Check(plain, u.PasswordHash)
}

// ApplyUpdate applies a partial update. Every present field is validated
// independently; a present password is re-hashed. UpdatedAt advances only
// when the whole update succeeds, so a failed update leaves the entity
// unchanged.
func (u *User) ApplyUpdate(data *UpdateData, hasher service.PasswordHasher) error {
	if err := validation.Update(&validation.UpdateData{
		Name:     data.Name,
		Email:    data.Email,
		Password: data.Password,
	}); err != nil {
		return err
	}

	if data.Password != nil {
		hash, err := hasher.Hash(*data.Password)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		u.PasswordHash = hash
	}
	if data.Name != nil {
		u.Name = *data.Name
	}
	if data.Email != nil {
		u.Email = *data.Email
	}

	u.UpdatedAt = time.Now()

	return nil
}

// Public returns the serializable projection without the credential hash.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
