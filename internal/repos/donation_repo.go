package repos

import (
	"encoding/json"

	"glaneur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type DonationRepo struct{ db *sqlx.DB }

func NewDonationRepo(db *sqlx.DB) *DonationRepo { return &DonationRepo{db: db} }

const donationCols = `
  id, business_id, product_id, quantity, max_per_person, description, status,
  available_from, available_to, collection_slots, tax_benefit_value,
  COALESCE(created_at,'') AS created_at`

// List returns a business's donations, optionally filtered by stored status.
func (r *DonationRepo) List(businessID, status string) ([]domain.Donation, error) {
	q := `SELECT` + donationCols + ` FROM donations WHERE business_id = ?`
	args := []any{businessID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	var out []domain.Donation
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	for i := range out {
		decodeSlots(&out[i])
	}
	return out, nil
}

func (r *DonationRepo) Get(id string) (domain.Donation, error) {
	var d domain.Donation
	err := r.db.Get(&d, `SELECT`+donationCols+` FROM donations WHERE id = ?`, id)
	if err != nil {
		return d, err
	}
	decodeSlots(&d)
	return d, nil
}

func (r *DonationRepo) Create(d domain.Donation) error {
	_, err := r.db.Exec(`
  INSERT INTO donations(id, business_id, product_id, quantity, max_per_person, description, status,
    available_from, available_to, collection_slots, tax_benefit_value, created_at)
  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
`, d.ID, d.BusinessID, d.ProductID, d.Quantity, d.MaxPerPerson, d.Description, d.Status,
		d.AvailableFrom, d.AvailableTo, encodeSlots(d.CollectionSlots), d.TaxBenefitValue, d.CreatedAt)
	return err
}

func (r *DonationRepo) Save(d domain.Donation) (bool, error) {
	res, err := r.db.Exec(`
  UPDATE donations
  SET product_id = ?, quantity = ?, max_per_person = ?, description = ?, status = ?,
      available_from = ?, available_to = ?, collection_slots = ?, tax_benefit_value = ?
  WHERE id = ?
`, d.ProductID, d.Quantity, d.MaxPerPerson, d.Description, d.Status,
		d.AvailableFrom, d.AvailableTo, encodeSlots(d.CollectionSlots), d.TaxBenefitValue, d.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *DonationRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM donations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func encodeSlots(slots []string) string {
	if slots == nil {
		slots = []string{}
	}
	b, _ := json.Marshal(slots)
	return string(b)
}

func decodeSlots(d *domain.Donation) {
	d.CollectionSlots = []string{}
	if d.SlotsJSON != "" {
		_ = json.Unmarshal([]byte(d.SlotsJSON), &d.CollectionSlots)
	}
}
