package services

import (
	"database/sql"
	"time"

	"glaneur/internal/domain"
	"glaneur/internal/repos"
	"glaneur/internal/validate"

	"github.com/google/uuid"
)

type DonationService struct {
	Donations *repos.DonationRepo
	Products  *repos.ProductRepo
	Policy    domain.FiscalPolicy
}

func NewDonationService(donations *repos.DonationRepo, products *repos.ProductRepo, policy domain.FiscalPolicy) *DonationService {
	return &DonationService{Donations: donations, Products: products, Policy: policy}
}

type DonationInput struct {
	ProductID       string   `json:"productId"`
	Quantity        int      `json:"quantity"`
	MaxPerPerson    int      `json:"maxPerPerson"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	AvailableFrom   string   `json:"availableFrom"`
	AvailableTo     string   `json:"availableTo"`
	CollectionSlots []string `json:"collectionSlots"`
}

// DonationPatch carries a partial update; nil means "keep the stored value".
// CollectionSlots, when present, fully replaces the stored set.
type DonationPatch struct {
	ProductID       *string   `json:"productId"`
	Quantity        *int      `json:"quantity"`
	MaxPerPerson    *int      `json:"maxPerPerson"`
	Description     *string   `json:"description"`
	Status          *string   `json:"status"`
	AvailableFrom   *string   `json:"availableFrom"`
	AvailableTo     *string   `json:"availableTo"`
	CollectionSlots *[]string `json:"collectionSlots"`
}

func (s *DonationService) Create(businessID string, in DonationInput) (domain.Donation, error) {
	if in.Quantity <= 0 {
		return domain.Donation{}, invalid("quantity", "must be a positive integer")
	}
	if in.MaxPerPerson < 0 {
		return domain.Donation{}, invalid("maxPerPerson", "must be at least 1")
	}
	if in.MaxPerPerson == 0 {
		in.MaxPerPerson = 1
	}
	if in.Status == "" {
		in.Status = domain.StatusActive
	}
	if !validate.Status(in.Status) {
		return domain.Donation{}, invalid("status", "must be active, paused or completed")
	}
	from, ok := validate.Timestamp(in.AvailableFrom)
	if !ok {
		return domain.Donation{}, invalid("availableFrom", "required RFC3339 timestamp")
	}
	to, ok := validate.Timestamp(in.AvailableTo)
	if !ok {
		return domain.Donation{}, invalid("availableTo", "required RFC3339 timestamp")
	}
	if from.After(to) {
		return domain.Donation{}, invalid("availableFrom", "must not be after availableTo")
	}

	product, err := s.Products.Get(in.ProductID)
	if err == sql.ErrNoRows {
		return domain.Donation{}, invalid("productId", "unknown product")
	}
	if err != nil {
		return domain.Donation{}, err
	}
	if product.BusinessID != businessID {
		return domain.Donation{}, invalid("productId", "product belongs to another business")
	}

	fiscal, err := s.Policy.Value(product.UnitPrice, in.Quantity)
	if err != nil {
		return domain.Donation{}, err
	}

	d := domain.Donation{
		ID:              uuid.NewString(),
		BusinessID:      businessID,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		MaxPerPerson:    in.MaxPerPerson,
		Description:     in.Description,
		Status:          in.Status,
		AvailableFrom:   from.UTC().Format(time.RFC3339),
		AvailableTo:     to.UTC().Format(time.RFC3339),
		CollectionSlots: in.CollectionSlots,
		TaxBenefitValue: fiscal,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Donations.Create(d); err != nil {
		return domain.Donation{}, err
	}
	return s.Get(d.ID, time.Now())
}

// Update merges the patch onto the stored donation and re-checks every
// invariant against the merged result. The fiscal value is recomputed when the
// product or the quantity changed.
func (s *DonationService) Update(id string, patch DonationPatch) (domain.Donation, error) {
	d, err := s.Donations.Get(id)
	if err == sql.ErrNoRows {
		return domain.Donation{}, ErrNotFound
	}
	if err != nil {
		return domain.Donation{}, err
	}

	recompute := false
	if patch.ProductID != nil && *patch.ProductID != d.ProductID {
		d.ProductID = *patch.ProductID
		recompute = true
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return domain.Donation{}, invalid("quantity", "must be a positive integer")
		}
		if *patch.Quantity != d.Quantity {
			recompute = true
		}
		d.Quantity = *patch.Quantity
	}
	if patch.MaxPerPerson != nil {
		if *patch.MaxPerPerson < 1 {
			return domain.Donation{}, invalid("maxPerPerson", "must be at least 1")
		}
		d.MaxPerPerson = *patch.MaxPerPerson
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Status != nil {
		if !validate.Status(*patch.Status) {
			return domain.Donation{}, invalid("status", "must be active, paused or completed")
		}
		d.Status = *patch.Status
	}
	if patch.AvailableFrom != nil {
		t, ok := validate.Timestamp(*patch.AvailableFrom)
		if !ok {
			return domain.Donation{}, invalid("availableFrom", "required RFC3339 timestamp")
		}
		d.AvailableFrom = t.UTC().Format(time.RFC3339)
	}
	if patch.AvailableTo != nil {
		t, ok := validate.Timestamp(*patch.AvailableTo)
		if !ok {
			return domain.Donation{}, invalid("availableTo", "required RFC3339 timestamp")
		}
		d.AvailableTo = t.UTC().Format(time.RFC3339)
	}
	if patch.CollectionSlots != nil {
		d.CollectionSlots = *patch.CollectionSlots
	}

	from, _ := validate.Timestamp(d.AvailableFrom)
	to, _ := validate.Timestamp(d.AvailableTo)
	if from.After(to) {
		return domain.Donation{}, invalid("availableFrom", "must not be after availableTo")
	}

	if recompute {
		product, err := s.Products.Get(d.ProductID)
		if err == sql.ErrNoRows {
			return domain.Donation{}, invalid("productId", "unknown product")
		}
		if err != nil {
			return domain.Donation{}, err
		}
		fiscal, err := s.Policy.Value(product.UnitPrice, d.Quantity)
		if err != nil {
			return domain.Donation{}, err
		}
		d.TaxBenefitValue = fiscal
	}

	found, err := s.Donations.Save(d)
	if err != nil {
		return domain.Donation{}, err
	}
	if !found {
		return domain.Donation{}, ErrNotFound
	}
	return s.Get(id, time.Now())
}

func (s *DonationService) Delete(id string) (bool, error) {
	return s.Donations.Delete(id)
}

// List returns donations annotated with their effective (display) status.
// The status filter matches the stored status.
func (s *DonationService) List(businessID, status string, now time.Time) ([]domain.Donation, error) {
	out, err := s.Donations.List(businessID, status)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].EffectiveStatus = domain.EffectiveStatus(out[i], now)
	}
	return out, nil
}

func (s *DonationService) Get(id string, now time.Time) (domain.Donation, error) {
	d, err := s.Donations.Get(id)
	if err == sql.ErrNoRows {
		return domain.Donation{}, ErrNotFound
	}
	if err != nil {
		return domain.Donation{}, err
	}
	d.EffectiveStatus = domain.EffectiveStatus(d, now)
	return d, nil
}
