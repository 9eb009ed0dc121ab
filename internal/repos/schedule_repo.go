package repos

import (
	"encoding/json"

	"glaneur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ScheduleRepo struct{ db *sqlx.DB }

func NewScheduleRepo(db *sqlx.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

func (r *ScheduleRepo) ListByBusiness(businessID string) ([]domain.Schedule, error) {
	var out []domain.Schedule
	err := r.db.Select(&out, `
  SELECT id, business_id, day_of_week, is_open, time_slots, business_type
  FROM schedules
  WHERE business_id = ?
  ORDER BY day_of_week
`, businessID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeTimeSlots(&out[i])
	}
	return out, nil
}

func (r *ScheduleRepo) GetByDay(businessID string, dayOfWeek int) (domain.Schedule, error) {
	var s domain.Schedule
	err := r.db.Get(&s, `
  SELECT id, business_id, day_of_week, is_open, time_slots, business_type
  FROM schedules
  WHERE business_id = ? AND day_of_week = ?
`, businessID, dayOfWeek)
	if err != nil {
		return s, err
	}
	decodeTimeSlots(&s)
	return s, nil
}

// Upsert inserts the row or overwrites the mutable fields of the existing one.
// The unique index on (business_id, day_of_week) keeps the pair single-rowed;
// the original id survives a conflict.
func (r *ScheduleRepo) Upsert(s domain.Schedule) (domain.Schedule, error) {
	_, err := r.db.Exec(`
  INSERT INTO schedules(id, business_id, day_of_week, is_open, time_slots, business_type)
  VALUES(?,?,?,?,?,?)
  ON CONFLICT(business_id, day_of_week) DO UPDATE SET
    is_open = excluded.is_open,
    time_slots = excluded.time_slots,
    business_type = excluded.business_type
`, s.ID, s.BusinessID, s.DayOfWeek, s.IsOpen, encodeTimeSlots(s.TimeSlots), s.BusinessType)
	if err != nil {
		return domain.Schedule{}, err
	}
	return r.GetByDay(s.BusinessID, s.DayOfWeek)
}

func encodeTimeSlots(slots []domain.TimeSlot) string {
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	b, _ := json.Marshal(slots)
	return string(b)
}

func decodeTimeSlots(s *domain.Schedule) {
	s.TimeSlots = []domain.TimeSlot{}
	if s.SlotsJSON != "" {
		_ = json.Unmarshal([]byte(s.SlotsJSON), &s.TimeSlots)
	}
}
