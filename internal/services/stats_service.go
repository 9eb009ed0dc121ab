package services

import (
	"database/sql"
	"math"
	"time"

	"glaneur/internal/domain"
	"glaneur/internal/repos"
	"glaneur/internal/validate"
)

// StatsService computes the derived views the dashboard shows. Everything is
// recomputed on each call from the store, nothing is cached.
type StatsService struct {
	Donations *repos.DonationRepo
	Products  *repos.ProductRepo
	Schedules *repos.ScheduleRepo
	Closures  *repos.ClosureRepo
}

func NewStatsService(donations *repos.DonationRepo, products *repos.ProductRepo, schedules *repos.ScheduleRepo, closures *repos.ClosureRepo) *StatsService {
	return &StatsService{Donations: donations, Products: products, Schedules: schedules, Closures: closures}
}

const (
	lowStockThreshold = 5
	expiryWindow      = 48 * time.Hour
	portionsPerUnit   = 1.5 // heuristic: people fed per donated unit
)

type Summary struct {
	ActiveDonations    int `json:"activeDonations"`
	CompletedDonations int `json:"completedDonations"`
	WasteReducedUnits  int `json:"wasteReducedUnits"`
	PeopleBenefited    int `json:"peopleBenefited"`
	LowStockProducts   int `json:"lowStockProducts"`
}

func (s *StatsService) Summary(businessID string) (Summary, error) {
	donations, err := s.Donations.List(businessID, "")
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, d := range donations {
		switch d.Status {
		case domain.StatusActive:
			sum.ActiveDonations++
		case domain.StatusCompleted:
			sum.CompletedDonations++
			sum.WasteReducedUnits += d.Quantity
		}
	}
	sum.PeopleBenefited = int(math.Floor(float64(sum.WasteReducedUnits) * portionsPerUnit))

	low, err := s.LowStockProducts(businessID)
	if err != nil {
		return Summary{}, err
	}
	sum.LowStockProducts = len(low)
	return sum, nil
}

func (s *StatsService) LowStockProducts(businessID string) ([]domain.Product, error) {
	products, err := s.Products.ListByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range products {
		if p.CurrentStock <= lowStockThreshold {
			out = append(out, p)
		}
	}
	return out, nil
}

// ExpiringProducts lists products whose expiry date falls within the next two
// days (products already past their date included).
func (s *StatsService) ExpiringProducts(businessID string, now time.Time) ([]domain.Product, error) {
	products, err := s.Products.ListByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range products {
		if p.ExpiryDate == "" {
			continue
		}
		exp, ok := validate.Timestamp(p.ExpiryDate)
		if !ok {
			continue
		}
		if exp.Sub(now) <= expiryWindow {
			out = append(out, p)
		}
	}
	return out, nil
}

// DayView is a schedule row merged with any closure covering the requested
// date. A matching closure forces the day closed without touching the stored
// schedule.
type DayView struct {
	domain.Schedule
	Closure *domain.Closure `json:"closure,omitempty"`
}

func (s *StatsService) ScheduleForDate(businessID string, date time.Time) (DayView, error) {
	sc, err := s.Schedules.GetByDay(businessID, int(date.Weekday()))
	if err == sql.ErrNoRows {
		return DayView{}, ErrNotFound
	}
	if err != nil {
		return DayView{}, err
	}

	view := DayView{Schedule: sc}
	closure, err := s.Closures.FindByDate(businessID, date.Format("2006-01-02"))
	if err == nil {
		view.IsOpen = false
		view.Closure = &closure
	} else if err != sql.ErrNoRows {
		return DayView{}, err
	}
	return view, nil
}
