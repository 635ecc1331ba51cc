package readstore

import (
	"context"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserReadStore reads the minimal identity surface the booking core needs.
// The user directory itself is managed elsewhere.
type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (u *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := u.db.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, role FROM users WHERE id = $1`,
		id).Scan(&view.ID, &view.Email, &view.FirstName, &view.LastName, &view.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (u *UserReadStore) FindCredentialsByEmail(ctx context.Context, email string) (*queries.CredentialsView, error) {
	var view queries.CredentialsView
	err := u.db.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, role FROM users WHERE email = $1`,
		email).Scan(&view.ID, &view.Email, &view.PasswordHash, &view.FirstName, &view.LastName, &view.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, nil
}
