package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"glaneur/internal/domain"
	"glaneur/internal/repos"
	"glaneur/internal/services"
)

const demoBusiness = "demo-business-1"

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func donationSvc(db *sqlx.DB, policy domain.FiscalPolicy) *services.DonationService {
	return services.NewDonationService(repos.NewDonationRepo(db), repos.NewProductRepo(db), policy)
}

func window(t *testing.T) (string, string) {
	t.Helper()
	now := time.Now().UTC()
	return now.Format(time.RFC3339), now.Add(48 * time.Hour).Format(time.RFC3339)
}

func TestDonationCreate_FiscalValue(t *testing.T) {
	db := memdb(t)
	from, to := window(t)

	// Salade César bio is seeded at 12.80
	full := donationSvc(db, domain.FullValue)
	d, err := full.Create(demoBusiness, services.DonationInput{
		ProductID:     "product-2",
		Quantity:      3,
		AvailableFrom: from,
		AvailableTo:   to,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.TaxBenefitValue != "38.40" {
		t.Fatalf("full value: want 38.40, got %s", d.TaxBenefitValue)
	}
	if d.MaxPerPerson != 1 {
		t.Fatalf("maxPerPerson should default to 1, got %d", d.MaxPerPerson)
	}
	if d.Status != domain.StatusActive {
		t.Fatalf("status should default to active, got %s", d.Status)
	}

	benefit := donationSvc(db, domain.TaxBenefit)
	d2, err := benefit.Create(demoBusiness, services.DonationInput{
		ProductID:     "product-2",
		Quantity:      3,
		AvailableFrom: from,
		AvailableTo:   to,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d2.TaxBenefitValue != "23.04" {
		t.Fatalf("tax benefit: want 23.04, got %s", d2.TaxBenefitValue)
	}
}

func TestDonationCreate_Rejections(t *testing.T) {
	db := memdb(t)
	svc := donationSvc(db, domain.TaxBenefit)
	from, to := window(t)

	var ve *services.ValidationError

	_, err := svc.Create(demoBusiness, services.DonationInput{
		ProductID: "no-such-product", Quantity: 1, AvailableFrom: from, AvailableTo: to,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("unknown product: want ValidationError, got %v", err)
	}

	_, err = svc.Create(demoBusiness, services.DonationInput{
		ProductID: "product-1", Quantity: 0, AvailableFrom: from, AvailableTo: to,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("zero quantity: want ValidationError, got %v", err)
	}

	// window inverted
	_, err = svc.Create(demoBusiness, services.DonationInput{
		ProductID: "product-1", Quantity: 1, AvailableFrom: to, AvailableTo: from,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("inverted window: want ValidationError, got %v", err)
	}

	_, err = svc.Create(demoBusiness, services.DonationInput{
		ProductID: "product-1", Quantity: 1, AvailableTo: to,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("missing availableFrom: want ValidationError, got %v", err)
	}
}

func TestDonationUpdate_MergeSemantics(t *testing.T) {
	db := memdb(t)
	svc := donationSvc(db, domain.TaxBenefit)

	// seeded donation-1: product-1 (4.50) × 3, slots ["lunch","dinner"]
	desc := "ramassage en soirée uniquement"
	d, err := svc.Update("donation-1", services.DonationPatch{Description: &desc})
	if err != nil {
		t.Fatal(err)
	}
	if d.Description != desc {
		t.Fatalf("description not updated: %q", d.Description)
	}
	if d.Quantity != 3 || len(d.CollectionSlots) != 2 {
		t.Fatalf("untouched fields changed: %+v", d)
	}

	// collectionSlots fully replaces
	slots := []string{"morning"}
	d, err = svc.Update("donation-1", services.DonationPatch{CollectionSlots: &slots})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.CollectionSlots) != 1 || d.CollectionSlots[0] != "morning" {
		t.Fatalf("slots should be fully replaced, got %v", d.CollectionSlots)
	}

	// quantity change recomputes the fiscal value: 4.50 × 2 × 0.60 = 5.40
	qty := 2
	d, err = svc.Update("donation-1", services.DonationPatch{Quantity: &qty})
	if err != nil {
		t.Fatal(err)
	}
	if d.TaxBenefitValue != "5.40" {
		t.Fatalf("want recomputed value 5.40, got %s", d.TaxBenefitValue)
	}

	// merged window must stay ordered
	bad := time.Now().UTC().Add(-30 * 24 * time.Hour).Format(time.RFC3339)
	var ve *services.ValidationError
	if _, err := svc.Update("donation-1", services.DonationPatch{AvailableTo: &bad}); !errors.As(err, &ve) {
		t.Fatalf("inverted merged window: want ValidationError, got %v", err)
	}

	if _, err := svc.Update("missing-id", services.DonationPatch{Description: &desc}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDonationDelete_NotFoundSignal(t *testing.T) {
	db := memdb(t)
	svc := donationSvc(db, domain.TaxBenefit)

	found, err := svc.Delete("donation-1")
	if err != nil || !found {
		t.Fatalf("first delete: want found=true, got %v err=%v", found, err)
	}
	found, err = svc.Delete("donation-1")
	if err != nil || found {
		t.Fatalf("second delete: want found=false, got %v err=%v", found, err)
	}
}

func TestProductDelete_DoesNotCascade(t *testing.T) {
	db := memdb(t)
	svc := donationSvc(db, domain.TaxBenefit)
	products := repos.NewProductRepo(db)

	// donation-1 references product-1
	if found, err := products.Delete("product-1"); err != nil || !found {
		t.Fatalf("product delete: found=%v err=%v", found, err)
	}

	d, err := svc.Get("donation-1", time.Now())
	if err != nil {
		t.Fatalf("donation should survive its product: %v", err)
	}
	if d.ProductID != "product-1" || d.TaxBenefitValue != "8.10" {
		t.Fatalf("orphaned donation changed: %+v", d)
	}
}

func TestDonationList_EffectiveStatus(t *testing.T) {
	db := memdb(t)
	svc := donationSvc(db, domain.TaxBenefit)

	// far future: every active donation still displays active
	all, err := svc.List(demoBusiness, "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("want 4 seeded donations, got %d", len(all))
	}

	later := time.Now().Add(90 * 24 * time.Hour)
	all, err = svc.List(demoBusiness, "", later)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range all {
		if d.Status == domain.StatusActive && d.EffectiveStatus != domain.StatusExpired {
			t.Fatalf("active donation past window should display expired: %+v", d)
		}
		if d.Status != domain.StatusActive && d.EffectiveStatus != d.Status {
			t.Fatalf("non-active status must pass through: %+v", d)
		}
	}

	// stored status untouched by display derivation
	active, err := svc.List(demoBusiness, domain.StatusActive, later)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Fatalf("stored status should remain active for 2 donations, got %d", len(active))
	}
}
