package repos

import (
	"glaneur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ClosureRepo struct{ db *sqlx.DB }

func NewClosureRepo(db *sqlx.DB) *ClosureRepo { return &ClosureRepo{db: db} }

func (r *ClosureRepo) ListByBusiness(businessID string) ([]domain.Closure, error) {
	var out []domain.Closure
	err := r.db.Select(&out, `
  SELECT id, business_id, date, reason, is_emergency, COALESCE(created_at,'') AS created_at
  FROM closures
  WHERE business_id = ?
  ORDER BY date
`, businessID)
	return out, err
}

// FindByDate returns the closure covering one calendar date, sql.ErrNoRows when open.
func (r *ClosureRepo) FindByDate(businessID, date string) (domain.Closure, error) {
	var c domain.Closure
	err := r.db.Get(&c, `
  SELECT id, business_id, date, reason, is_emergency, COALESCE(created_at,'') AS created_at
  FROM closures
  WHERE business_id = ? AND date = ?
  LIMIT 1
`, businessID, date)
	return c, err
}

func (r *ClosureRepo) Create(c domain.Closure) error {
	_, err := r.db.Exec(`
  INSERT INTO closures(id, business_id, date, reason, is_emergency, created_at)
  VALUES(?,?,?,?,?,?)
`, c.ID, c.BusinessID, c.Date, c.Reason, c.IsEmergency, c.CreatedAt)
	return err
}

func (r *ClosureRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM closures WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
