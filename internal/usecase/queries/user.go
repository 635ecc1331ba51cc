package queries

import (
	"context"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	users UserReadStore
}

func NewUserQueries(users UserReadStore) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetMe(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	view, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
