package repos

import (
	"glaneur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, business_id, name, description, category, unit_price, current_stock,
  COALESCE(expiry_date,'') AS expiry_date, photo_url, COALESCE(created_at,'') AS created_at`

func (r *ProductRepo) ListByBusiness(businessID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT`+productCols+`
  FROM products
  WHERE business_id = ?
  ORDER BY created_at DESC
`, businessID)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
  SELECT`+productCols+`
  FROM products
  WHERE id = ?
`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
  INSERT INTO products(id, business_id, name, description, category, unit_price, current_stock, expiry_date, photo_url, created_at)
  VALUES(?,?,?,?,?,?,?,?,?,?)
`, p.ID, p.BusinessID, p.Name, p.Description, p.Category, p.UnitPrice, p.CurrentStock, p.ExpiryDate, p.PhotoURL, p.CreatedAt)
	return err
}

func (r *ProductRepo) Save(p domain.Product) (bool, error) {
	res, err := r.db.Exec(`
  UPDATE products
  SET name = ?, description = ?, category = ?, unit_price = ?, current_stock = ?, expiry_date = ?, photo_url = ?
  WHERE id = ?
`, p.Name, p.Description, p.Category, p.UnitPrice, p.CurrentStock, p.ExpiryDate, p.PhotoURL, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
