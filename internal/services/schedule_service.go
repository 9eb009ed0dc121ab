package services

import (
	"database/sql"

	"glaneur/internal/domain"
	"glaneur/internal/repos"
	"glaneur/internal/validate"

	"github.com/google/uuid"
)

type ScheduleService struct {
	Schedules *repos.ScheduleRepo
}

func NewScheduleService(schedules *repos.ScheduleRepo) *ScheduleService {
	return &ScheduleService{Schedules: schedules}
}

// ScheduleInput feeds the (businessId, dayOfWeek) upsert. Merge is per field:
// nil keeps the stored value, a present TimeSlots slice fully replaces the
// stored slots. A brand-new day defaults to open.
type ScheduleInput struct {
	DayOfWeek    int                `json:"dayOfWeek"`
	IsOpen       *bool              `json:"isOpen"`
	TimeSlots    *[]domain.TimeSlot `json:"timeSlots"`
	BusinessType string             `json:"businessType"`
}

// DayOutcome reports one day of a bulk write. Bulk operations are best-effort:
// every day is attempted and failures are listed, not rolled back.
type DayOutcome struct {
	Day   int    `json:"day"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *ScheduleService) List(businessID string) ([]domain.Schedule, error) {
	return s.Schedules.ListByBusiness(businessID)
}

func (s *ScheduleService) GetByDay(businessID string, dayOfWeek int) (domain.Schedule, error) {
	sc, err := s.Schedules.GetByDay(businessID, dayOfWeek)
	if err == sql.ErrNoRows {
		return domain.Schedule{}, ErrNotFound
	}
	return sc, err
}

func (s *ScheduleService) Upsert(businessID string, in ScheduleInput) (domain.Schedule, error) {
	if !validate.DayOfWeek(in.DayOfWeek) {
		return domain.Schedule{}, invalid("dayOfWeek", "must be 0 (Sunday) to 6 (Saturday)")
	}
	if in.BusinessType != "" && !validate.BusinessType(in.BusinessType) {
		return domain.Schedule{}, invalid("businessType", "must be restaurant, culture or bien-etre")
	}

	merged, err := s.Schedules.GetByDay(businessID, in.DayOfWeek)
	if err == sql.ErrNoRows {
		merged = domain.Schedule{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			DayOfWeek:  in.DayOfWeek,
			IsOpen:     true, // open unless specified
			TimeSlots:  []domain.TimeSlot{},
		}
		if in.BusinessType == "" {
			return domain.Schedule{}, invalid("businessType", "required when creating a day")
		}
	} else if err != nil {
		return domain.Schedule{}, err
	}

	if in.BusinessType != "" {
		merged.BusinessType = in.BusinessType
	}
	if in.IsOpen != nil {
		merged.IsOpen = *in.IsOpen
	}
	if in.TimeSlots != nil {
		merged.TimeSlots = *in.TimeSlots
	}

	for _, slot := range merged.TimeSlots {
		if !validate.SlotWindow(slot.StartTime, slot.EndTime) {
			return domain.Schedule{}, invalid("timeSlots", "slots need zero-padded HH:MM bounds with startTime < endTime")
		}
	}
	if err := checkSlotPolicy(merged.BusinessType, merged.TimeSlots); err != nil {
		return domain.Schedule{}, err
	}
	merged.TimeSlots = defaultSlotLabels(merged.BusinessType, merged.TimeSlots)

	return s.Schedules.Upsert(merged)
}

// CloseAll flips every day of the week to closed. businessType is only needed
// for days that do not exist yet.
func (s *ScheduleService) CloseAll(businessID, businessType string) []DayOutcome {
	closed := false
	outcomes := make([]DayOutcome, 0, 7)
	for day := 0; day <= 6; day++ {
		_, err := s.Upsert(businessID, ScheduleInput{
			DayOfWeek:    day,
			IsOpen:       &closed,
			BusinessType: businessType,
		})
		o := DayOutcome{Day: day, OK: err == nil}
		if err != nil {
			o.Error = err.Error()
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// ApplyToWeekdays copies the source day's slots, open flag and business type
// onto Monday through Friday.
func (s *ScheduleService) ApplyToWeekdays(businessID string, sourceDay int) ([]DayOutcome, error) {
	if !validate.DayOfWeek(sourceDay) {
		return nil, invalid("sourceDay", "must be 0 (Sunday) to 6 (Saturday)")
	}
	source, err := s.Schedules.GetByDay(businessID, sourceDay)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var outcomes []DayOutcome
	for day := 1; day <= 5; day++ {
		if day == sourceDay {
			continue
		}
		slots := source.TimeSlots
		isOpen := source.IsOpen
		_, err := s.Upsert(businessID, ScheduleInput{
			DayOfWeek:    day,
			IsOpen:       &isOpen,
			TimeSlots:    &slots,
			BusinessType: source.BusinessType,
		})
		o := DayOutcome{Day: day, OK: err == nil}
		if err != nil {
			o.Error = err.Error()
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func checkSlotPolicy(businessType string, slots []domain.TimeSlot) error {
	switch businessType {
	case domain.TypeRestaurant:
		if len(slots) > 2 {
			return &PolicyError{BusinessType: businessType, MaxSlots: 2}
		}
	case domain.TypeCulture:
		if len(slots) > 1 {
			return &PolicyError{BusinessType: businessType, MaxSlots: 1}
		}
	case domain.TypeBienEtre:
		// unbounded custom slots
	default:
		return invalid("businessType", "must be restaurant, culture or bien-etre")
	}
	return nil
}

// defaultSlotLabels fills in the conventional labels the mobile UI shows when
// the caller leaves them blank.
func defaultSlotLabels(businessType string, slots []domain.TimeSlot) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].Label != "" {
			continue
		}
		switch businessType {
		case domain.TypeRestaurant:
			if i == 0 {
				out[i].Label, out[i].Type = "Matin", "morning"
			} else {
				out[i].Label, out[i].Type = "Soir", "evening"
			}
		case domain.TypeCulture:
			out[i].Label, out[i].Type = "Journée entière", "all_day"
		default:
			out[i].Type = "custom"
		}
	}
	return out
}
