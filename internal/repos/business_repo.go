package repos

import (
	"glaneur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BusinessRepo struct{ db *sqlx.DB }

func NewBusinessRepo(db *sqlx.DB) *BusinessRepo { return &BusinessRepo{db: db} }

func (r *BusinessRepo) Get(id string) (domain.Business, error) {
	var b domain.Business
	err := r.db.Get(&b, `
  SELECT id, name, type, description, address, photo_url, collection_instructions,
         is_active, COALESCE(created_at,'') AS created_at
  FROM businesses
  WHERE id = ?
`, id)
	return b, err
}

func (r *BusinessRepo) Create(b domain.Business) error {
	_, err := r.db.Exec(`
  INSERT INTO businesses(id, name, type, description, address, photo_url, collection_instructions, is_active, created_at)
  VALUES(?,?,?,?,?,?,?,?,?)
`, b.ID, b.Name, b.Type, b.Description, b.Address, b.PhotoURL, b.CollectionInstructions, b.IsActive, b.CreatedAt)
	return err
}

// Save writes the full row back; reports false when the id is unknown.
func (r *BusinessRepo) Save(b domain.Business) (bool, error) {
	res, err := r.db.Exec(`
  UPDATE businesses
  SET name = ?, type = ?, description = ?, address = ?, photo_url = ?, collection_instructions = ?, is_active = ?
  WHERE id = ?
`, b.Name, b.Type, b.Description, b.Address, b.PhotoURL, b.CollectionInstructions, b.IsActive, b.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
