package repository

import (
	"context"
	"errors"

	"ellevate-booking/internal/domain/reservation"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, `
		INSERT INTO reservations (id, user_id, slot_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		res.ID(), res.UserID(), res.SlotID(), res.Status().String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeUniqueViolation:
				return uuid.Nil, infra.WrapRepoErr("reservation already exists for user and slot", err, infra.KindDuplicateKey)
			case pgErrCodeForeignKeyViolation:
				return uuid.Nil, infra.WrapRepoErr("referenced user or slot missing", err, infra.KindForeignKeyViolated)
			}
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Save(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE reservations
		SET status = $2, cancelled_at = $3
		WHERE id = $1`,
		res.ID(), res.Status().String(), res.CancelledAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
