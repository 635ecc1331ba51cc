package readstore

import (
	"context"
	"time"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
	"ellevate-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SlotReadStore derives per-slot occupancy in the same statement that reads
// the slot, so the projected counts come from one snapshot.
type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

const slotWithCountSelect = `
SELECT s.id, s.date, s.start_time, s.end_time, s.max_capacity, s.created_at,
       COUNT(r.id) FILTER (WHERE r.status = 'active') AS active_count
FROM training_slots s
LEFT JOIN reservations r ON r.slot_id = s.id`

func (s *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row := s.db.QueryRow(ctx, slotWithCountSelect+" WHERE s.id = $1 GROUP BY s.id", id)

	view, err := scanSlotView(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return view, nil
}

func (s *SlotReadStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]*queries.SlotView, error) {
	rows, err := s.db.Query(ctx,
		slotWithCountSelect+` WHERE s.date >= $1 AND s.date <= $2
		GROUP BY s.id
		ORDER BY s.date, s.start_time`,
		from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var result []*queries.SlotView
	for rows.Next() {
		view, err := scanSlotView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}

	return result, nil
}

// AttendeesBySlotIDs returns the active reservations per slot with the
// minimal member identity used for attendance lists.
func (s *SlotReadStore) AttendeesBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]queries.AttendeeView, error) {
	if len(slotIDs) == 0 {
		return map[uuid.UUID][]queries.AttendeeView{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT r.slot_id, r.id, u.id, u.first_name, u.last_name
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		WHERE r.slot_id = ANY($1) AND r.status = 'active'
		ORDER BY r.created_at`,
		slotIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slot attendees", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]queries.AttendeeView, len(slotIDs))
	for rows.Next() {
		var slotID uuid.UUID
		var attendee queries.AttendeeView
		if err := rows.Scan(&slotID, &attendee.ReservationID, &attendee.UserID, &attendee.FirstName, &attendee.LastName); err != nil {
			return nil, infra.WrapRepoErr("failed to scan attendee row", err)
		}
		result[slotID] = append(result[slotID], attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate attendee rows", err)
	}

	return result, nil
}

func scanSlotView(row pgx.Row) (*queries.SlotView, error) {
	var view queries.SlotView
	var activeCount int64
	err := row.Scan(
		&view.ID,
		&view.Date,
		&view.StartTime,
		&view.EndTime,
		&view.MaxCapacity,
		&view.CreatedAt,
		&activeCount,
	)
	if err != nil {
		return nil, err
	}

	availability := slot.ProjectAvailability(view.MaxCapacity, int32(activeCount))
	view.CurrentCount = availability.CurrentCount
	view.IsFull = availability.IsFull
	view.AvailableSpots = availability.AvailableSpots
	return &view, nil
}
