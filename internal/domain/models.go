package domain

// Business types, they drive the schedule slot policy.
const (
	TypeRestaurant = "restaurant" // up to two slots (Matin/Soir)
	TypeCulture    = "culture"    // one whole-day slot
	TypeBienEtre   = "bien-etre"  // free-form custom slots
)

// Donation statuses. StatusExpired is derived for display only and never stored.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

type Business struct {
	ID                     string `db:"id" json:"id"`
	Name                   string `db:"name" json:"name"`
	Type                   string `db:"type" json:"type"` // Restaurant, Supermarché, Boulangerie, ...
	Description            string `db:"description" json:"description"`
	Address                string `db:"address" json:"address"`
	PhotoURL               string `db:"photo_url" json:"photoUrl"`
	CollectionInstructions string `db:"collection_instructions" json:"collectionInstructions"`
	IsActive               bool   `db:"is_active" json:"isActive"`
	CreatedAt              string `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID           string `db:"id" json:"id"`
	BusinessID   string `db:"business_id" json:"businessId"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	Category     string `db:"category" json:"category"` // Boulangerie | Plats | Légumes | Fruits | Boissons | Desserts | Autres
	UnitPrice    string `db:"unit_price" json:"unitPrice"`
	CurrentStock int    `db:"current_stock" json:"currentStock"`
	ExpiryDate   string `db:"expiry_date" json:"expiryDate,omitempty"` // RFC3339, empty when none
	PhotoURL     string `db:"photo_url" json:"photoUrl"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Donation is a time-boxed offer of Quantity units of a Product. It references
// the product by id only; deleting the product leaves the donation in place.
type Donation struct {
	ID              string   `db:"id" json:"id"`
	BusinessID      string   `db:"business_id" json:"businessId"`
	ProductID       string   `db:"product_id" json:"productId"`
	Quantity        int      `db:"quantity" json:"quantity"`
	MaxPerPerson    int      `db:"max_per_person" json:"maxPerPerson"`
	Description     string   `db:"description" json:"description"`
	Status          string   `db:"status" json:"status"`
	AvailableFrom   string   `db:"available_from" json:"availableFrom"` // RFC3339
	AvailableTo     string   `db:"available_to" json:"availableTo"`    // RFC3339
	SlotsJSON       string   `db:"collection_slots" json:"-"`
	CollectionSlots []string `db:"-" json:"collectionSlots"`
	TaxBenefitValue string   `db:"tax_benefit_value" json:"taxBenefitValue"`
	EffectiveStatus string   `db:"-" json:"effectiveStatus,omitempty"`
	CreatedAt       string   `db:"created_at" json:"createdAt"`
}

type TimeSlot struct {
	StartTime string `json:"startTime"` // "HH:MM", 24h
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	Type      string `json:"type,omitempty"` // morning | evening | all_day | custom
}

// Schedule holds the weekly collection window for one day. At most one row
// exists per (business, day) pair; writes go through an upsert.
type Schedule struct {
	ID           string     `db:"id" json:"id"`
	BusinessID   string     `db:"business_id" json:"businessId"`
	DayOfWeek    int        `db:"day_of_week" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	IsOpen       bool       `db:"is_open" json:"isOpen"`
	SlotsJSON    string     `db:"time_slots" json:"-"`
	TimeSlots    []TimeSlot `db:"-" json:"timeSlots"`
	BusinessType string     `db:"business_type" json:"businessType"`
}

// Closure is a dated override (holiday, emergency) for one business.
type Closure struct {
	ID          string `db:"id" json:"id"`
	BusinessID  string `db:"business_id" json:"businessId"`
	Date        string `db:"date" json:"date"` // "YYYY-MM-DD"
	Reason      string `db:"reason" json:"reason"`
	IsEmergency bool   `db:"is_emergency" json:"isEmergency"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}
