package repository

import (
	"context"

	"ellevate-booking/internal/domain/slot"
	"ellevate-booking/internal/infra"
	"ellevate-booking/internal/infra/db"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

// CreateBatch inserts the generated slots. Slots already on the schedule
// (same date and start time) are skipped, which makes regeneration of a week
// idempotent.
func (r *SlotRepository) CreateBatch(ctx context.Context, dbtx db.DBTX, slots []*slot.TrainingSlot) (int64, error) {
	var created int64
	for _, s := range slots {
		tag, err := dbtx.Exec(ctx, `
			INSERT INTO training_slots (id, date, start_time, end_time, max_capacity)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (date, start_time) DO NOTHING`,
			s.ID(), s.Date(), s.StartTime().String(), s.EndTime().String(), s.MaxCapacity(),
		)
		if err != nil {
			return created, infra.WrapRepoErr("failed to create training slot", err)
		}
		created += tag.RowsAffected()
	}
	return created, nil
}
