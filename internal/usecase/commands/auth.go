package commands

import (
	"context"
	"strings"

	"ellevate-booking/internal/domain/user"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/pkg/jwt"
	"ellevate-booking/internal/pkg/password"
	"ellevate-booking/internal/usecase/queries"
)

type LoginResult struct {
	Token string
	User  queries.UserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	users      queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(users queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error on purpose.
func (c *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || rawPassword == "" {
		return nil, errs.ErrInvalidCredentials
	}

	creds, err := c.users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(creds.PasswordHash, rawPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	role, err := user.NewRole(creds.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	token, err := c.jwtService.GenerateToken(creds.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign session token")
	}

	return &LoginResult{
		Token: token,
		User: queries.UserView{
			ID:        creds.ID,
			Email:     creds.Email,
			FirstName: creds.FirstName,
			LastName:  creds.LastName,
			Role:      creds.Role,
		},
	}, nil
}
