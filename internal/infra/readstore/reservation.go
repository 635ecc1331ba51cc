package readstore

import (
	"context"
	"fmt"
	"strings"

	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationViewSelect = `
SELECT r.id, r.user_id, u.first_name, u.last_name, u.email,
       r.slot_id, s.date, s.start_time, s.end_time,
       r.status, r.created_at, r.cancelled_at
FROM reservations r
JOIN users u ON u.id = r.user_id
JOIN training_slots s ON s.id = r.slot_id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewSelect+" WHERE r.id = $1", id)

	view, err := scanReservationView(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByFilter(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("r.user_id = $%d", len(args)))
	}
	if filter.SlotID != nil {
		args = append(args, *filter.SlotID)
		conds = append(conds, fmt.Sprintf("r.slot_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}

	query := reservationViewSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := row.Scan(
		&view.ID,
		&view.UserID,
		&view.UserFirstName,
		&view.UserLastName,
		&view.UserEmail,
		&view.SlotID,
		&view.SlotDate,
		&view.SlotStartTime,
		&view.SlotEndTime,
		&view.Status,
		&view.CreatedAt,
		&view.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
