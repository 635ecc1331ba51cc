//go:build unit || e2e

package builder

import (
	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// TestPassword is the plaintext used for fixture accounts; hashes are
// derived at seed time so they stay valid across bcrypt cost changes.
const TestPassword = "password123"

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "member@example.com",
		PasswordHash: "",
		FirstName:    "Ana",
		LastName:     "Horvat",
		Role:         "user",
	}
}

func (b *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	b.ID = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.FirstName = first
	b.LastName = last
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = "admin"
	b.Email = "admin@example.com"
	return b
}

func (b *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:        b.ID,
		Email:     b.Email,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Role:      b.Role,
	}
}

func (b *UserBuilder) BuildCredentials() *queries.CredentialsView {
	return &queries.CredentialsView{
		ID:           b.ID,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Role:         b.Role,
	}
}
