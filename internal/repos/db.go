package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory sqlite database exists per connection; a second pooled
	// connection would see an empty schema.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo business and its catalogue if the store is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Businesses
CREATE TABLE IF NOT EXISTS businesses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  photo_url TEXT NOT NULL DEFAULT '',
  collection_instructions TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  current_stock INTEGER NOT NULL DEFAULT 0,
  expiry_date TEXT NOT NULL DEFAULT '',
  photo_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_business ON products(business_id);

-- Donations. product_id carries no foreign key on purpose: deleting a product
-- must leave donations referencing it untouched.
CREATE TABLE IF NOT EXISTS donations(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  max_per_person INTEGER NOT NULL DEFAULT 1,
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','paused','completed')),
  available_from TEXT NOT NULL,
  available_to TEXT NOT NULL,
  collection_slots TEXT NOT NULL DEFAULT '[]',
  tax_benefit_value TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_donations_business ON donations(business_id);
CREATE INDEX IF NOT EXISTS idx_donations_status   ON donations(status);

-- Schedules: one row per business and day, enforced by the unique index.
CREATE TABLE IF NOT EXISTS schedules(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
  is_open INTEGER NOT NULL DEFAULT 1,
  time_slots TEXT NOT NULL DEFAULT '[]',
  business_type TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_schedules_business_day ON schedules(business_id, day_of_week);

-- Exceptional closures
CREATE TABLE IF NOT EXISTS closures(
  id TEXT PRIMARY KEY,
  business_id TEXT NOT NULL REFERENCES businesses(id),
  date TEXT NOT NULL,
  reason TEXT NOT NULL DEFAULT '',
  is_emergency INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_closures_business ON closures(business_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM businesses`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo business/products/donations")

	now := time.Now().UTC()
	ts := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }
	day := 24 * time.Hour

	tx := db.MustBegin()

	tx.MustExec(`INSERT INTO businesses(id,name,type,description,address,collection_instructions) VALUES
	  ('demo-business-1','Restaurant Le Jardin Bio','Restaurant',
	   'Restaurant de cuisine biologique locale avec un engagement fort pour l''environnement.',
	   '123 Rue des Jardins, 75001 Paris',
	   'Entrée par la porte arrière, sonner deux fois. Apporter des contenants.')`)

	tx.MustExec(`INSERT INTO products(id,business_id,name,description,category,unit_price,current_stock,expiry_date) VALUES
	  ('product-1','demo-business-1','Pain de campagne artisanal','Pain bio au levain naturel, cuit au feu de bois','Boulangerie','4.50',8,?),
	  ('product-2','demo-business-1','Salade César bio','Salade fraîche avec parmesan, croûtons maison','Plats','12.80',5,?),
	  ('product-3','demo-business-1','Tomates cerises bio','Tomates cerises de producteurs locaux','Légumes','6.20',15,?),
	  ('product-4','demo-business-1','Tarte aux pommes','Tarte artisanale aux pommes du verger','Desserts','18.00',3,?),
	  ('product-5','demo-business-1','Jus de pomme fermier','Jus de pomme 100% naturel, sans conservateur','Boissons','3.80',12,?),
	  ('product-6','demo-business-1','Bananes bio équitables','Bananes issues du commerce équitable','Fruits','2.90',2,?)`,
		ts(2*day), ts(1*day), ts(3*day), ts(1*day), ts(7*day), ts(2*day))

	tx.MustExec(`INSERT INTO donations(id,business_id,product_id,quantity,max_per_person,description,status,available_from,available_to,collection_slots,tax_benefit_value) VALUES
	  ('donation-1','demo-business-1','product-1',3,1,'Pain de la veille, encore excellent pour le petit déjeuner','active',?,?,'["lunch","dinner"]','8.10'),
	  ('donation-2','demo-business-1','product-2',2,1,'Salades préparées ce matin, à consommer rapidement','active',?,?,'["lunch"]','15.36'),
	  ('donation-3','demo-business-1','product-4',1,1,'Tarte d''hier, parfaite pour le goûter','completed',?,?,'["afternoon"]','10.80'),
	  ('donation-4','demo-business-1','product-6',1,2,'Bananes très mûres, parfaites pour smoothies','completed',?,?,'["morning"]','1.74')`,
		ts(0), ts(2*day),
		ts(0), ts(1*day),
		ts(-1*day), ts(-2*time.Hour),
		ts(-2*day), ts(-1*day))

	return tx.Commit()
}
