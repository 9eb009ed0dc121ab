package handlers

import (
	"glaneur/internal/config"
	"glaneur/internal/domain"
	"glaneur/internal/repos"
	"glaneur/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	BusinessHandler *BusinessHandler
	ProductHandler  *ProductHandler
	DonationHandler *DonationHandler
	ScheduleHandler *ScheduleHandler
	ClosureHandler  *ClosureHandler
	StatsHandler    *StatsHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	bizRepo := repos.NewBusinessRepo(db)
	prodRepo := repos.NewProductRepo(db)
	donRepo := repos.NewDonationRepo(db)
	schedRepo := repos.NewScheduleRepo(db)
	closRepo := repos.NewClosureRepo(db)

	policy, ok := domain.FiscalPolicyByName(cfg.FiscalPolicy)
	if !ok {
		policy = domain.TaxBenefit
	}

	donationSvc := services.NewDonationService(donRepo, prodRepo, policy)
	scheduleSvc := services.NewScheduleService(schedRepo)
	statsSvc := services.NewStatsService(donRepo, prodRepo, schedRepo, closRepo)

	return &Deps{
		BusinessHandler: &BusinessHandler{Businesses: bizRepo, BusinessID: cfg.BusinessID},
		ProductHandler:  &ProductHandler{Products: prodRepo, Stats: statsSvc, BusinessID: cfg.BusinessID},
		DonationHandler: &DonationHandler{Donations: donationSvc, BusinessID: cfg.BusinessID},
		ScheduleHandler: &ScheduleHandler{Schedule: scheduleSvc, Stats: statsSvc, BusinessID: cfg.BusinessID},
		ClosureHandler:  &ClosureHandler{Closures: closRepo, BusinessID: cfg.BusinessID},
		StatsHandler:    &StatsHandler{Stats: statsSvc, BusinessID: cfg.BusinessID},
	}
}
