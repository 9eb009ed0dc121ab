package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"glaneur/internal/config"
	"glaneur/internal/http/handlers"
	"glaneur/internal/repos"
)

// Minimal app setup mirroring the route table in cmd/glaneur, without the
// rate limiter so tests can hammer the API.
func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	if cfg.DBDSN == "" {
		cfg.DBDSN = ":memory:"
	}
	if cfg.BusinessID == "" {
		cfg.BusinessID = "demo-business-1"
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	app := fiber.New()
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)
	api := app.Group("/api")
	api.Get("/business", deps.BusinessHandler.Get)
	api.Patch("/business", deps.BusinessHandler.Patch)
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/expiring", deps.ProductHandler.Expiring)
	api.Post("/products", deps.ProductHandler.Create)
	api.Patch("/products/:id", deps.ProductHandler.Patch)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Get("/donations", deps.DonationHandler.List)
	api.Get("/donations/:id", deps.DonationHandler.Get)
	api.Post("/donations", deps.DonationHandler.Create)
	api.Patch("/donations/:id", deps.DonationHandler.Patch)
	api.Delete("/donations/:id", deps.DonationHandler.Delete)
	api.Get("/schedule", deps.ScheduleHandler.List)
	api.Post("/schedule", deps.ScheduleHandler.Upsert)
	api.Post("/schedule/bulk", deps.ScheduleHandler.Bulk)
	api.Get("/schedule/day/:dow", deps.ScheduleHandler.Day)
	api.Get("/schedule/date/:date", deps.ScheduleHandler.Date)
	api.Get("/closures", deps.ClosureHandler.List)
	api.Post("/closures", deps.ClosureHandler.Create)
	api.Delete("/closures/:id", deps.ClosureHandler.Delete)
	api.Get("/stats", deps.StatsHandler.Summary)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})
	resp := doJSON(t, app, "GET", "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestBusinessGetAndPatch(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "GET", "/api/business", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var biz map[string]any
	decode(t, resp, &biz)
	if biz["name"] != "Restaurant Le Jardin Bio" {
		t.Fatalf("unexpected seeded business: %v", biz["name"])
	}

	resp = doJSON(t, app, "PATCH", "/api/business", map[string]any{
		"collectionInstructions": "Sonner à l'interphone, demander Marc.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &biz)
	if biz["collectionInstructions"] != "Sonner à l'interphone, demander Marc." {
		t.Fatalf("patch not applied: %v", biz["collectionInstructions"])
	}
	if biz["name"] != "Restaurant Le Jardin Bio" {
		t.Fatalf("untouched field changed: %v", biz["name"])
	}
}

func TestProductLifecycle(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "POST", "/api/products", map[string]any{
		"name":         "Quiche lorraine",
		"category":     "Plats",
		"unitPrice":    "7.90",
		"currentStock": 4,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	decode(t, resp, &created)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created product has no id")
	}

	// bad category rejected
	resp = doJSON(t, app, "POST", "/api/products", map[string]any{
		"name": "X", "category": "Surgelés", "unitPrice": "1.00",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category: want 400, got %d", resp.StatusCode)
	}

	// bad price rejected
	resp = doJSON(t, app, "POST", "/api/products", map[string]any{
		"name": "Café", "category": "Boissons", "unitPrice": "1,50",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("comma price: want 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "PATCH", "/api/products/"+id, map[string]any{"currentStock": 0})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: want 200, got %d", resp.StatusCode)
	}
	var patched map[string]any
	decode(t, resp, &patched)
	if patched["currentStock"].(float64) != 0 {
		t.Fatalf("stock not updated: %v", patched["currentStock"])
	}

	resp = doJSON(t, app, "DELETE", "/api/products/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "DELETE", "/api/products/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", resp.StatusCode)
	}
}

func TestDonationCreateOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, config.Config{FiscalPolicy: "full-value"})
	from := time.Now().UTC().Format(time.RFC3339)
	to := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)

	resp := doJSON(t, app, "POST", "/api/donations", map[string]any{
		"productId":     "product-2",
		"quantity":      3,
		"availableFrom": from,
		"availableTo":   to,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var d map[string]any
	decode(t, resp, &d)
	if d["taxBenefitValue"] != "38.40" {
		t.Fatalf("full-value policy: want 38.40, got %v", d["taxBenefitValue"])
	}

	// inverted window is a client error
	resp = doJSON(t, app, "POST", "/api/donations", map[string]any{
		"productId": "product-2", "quantity": 1, "availableFrom": to, "availableTo": from,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted window: want 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/donations/does-not-exist", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing donation: want 404, got %d", resp.StatusCode)
	}
}

func TestDonationListFilter(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "GET", "/api/donations?status=completed", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var list []map[string]any
	decode(t, resp, &list)
	if len(list) != 2 {
		t.Fatalf("want 2 completed donations, got %d", len(list))
	}

	resp = doJSON(t, app, "GET", "/api/donations?status=bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad status: want 400, got %d", resp.StatusCode)
	}
}

func TestScheduleUpsertOverHTTP(t *testing.T) {
	app, db := newTestApp(t, config.Config{})

	body := map[string]any{
		"dayOfWeek":    1,
		"businessType": "restaurant",
		"timeSlots": []map[string]any{
			{"startTime": "11:30", "endTime": "14:30"},
			{"startTime": "18:30", "endTime": "22:00"},
		},
	}
	resp := doJSON(t, app, "POST", "/api/schedule", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upsert: want 200, got %d", resp.StatusCode)
	}

	// same day again, only flipping the open flag
	resp = doJSON(t, app, "POST", "/api/schedule", map[string]any{"dayOfWeek": 1, "isOpen": false})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second upsert: want 200, got %d", resp.StatusCode)
	}
	var sc map[string]any
	decode(t, resp, &sc)
	if sc["isOpen"].(bool) {
		t.Fatal("isOpen should be false")
	}
	if len(sc["timeSlots"].([]any)) != 2 {
		t.Fatalf("slots lost in merge: %v", sc["timeSlots"])
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM schedules WHERE day_of_week = 1`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want one row for the day, got %d", n)
	}

	// a third slot breaks the restaurant policy
	body["timeSlots"] = append(body["timeSlots"].([]map[string]any),
		map[string]any{"startTime": "23:00", "endTime": "23:30"})
	resp = doJSON(t, app, "POST", "/api/schedule", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("policy violation: want 422, got %d", resp.StatusCode)
	}
}

func TestScheduleBulkCloseAll(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "POST", "/api/schedule/bulk", map[string]any{
		"action": "close-all", "businessType": "restaurant",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out struct {
		Results []struct {
			Day int  `json:"day"`
			OK  bool `json:"ok"`
		} `json:"results"`
	}
	decode(t, resp, &out)
	if len(out.Results) != 7 {
		t.Fatalf("want 7 per-day results, got %d", len(out.Results))
	}
	for _, r := range out.Results {
		if !r.OK {
			t.Fatalf("day %d should close cleanly", r.Day)
		}
	}

	resp = doJSON(t, app, "POST", "/api/schedule/bulk", map[string]any{"action": "explode"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown action: want 400, got %d", resp.StatusCode)
	}
}

func TestClosuresOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "POST", "/api/closures", map[string]any{
		"date": "2026-12-25", "reason": "Noël", "isEmergency": false,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	decode(t, resp, &created)
	id, _ := created["id"].(string)

	resp = doJSON(t, app, "POST", "/api/closures", map[string]any{"date": "25/12/2026"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad date: want 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/closures", nil)
	var list []map[string]any
	decode(t, resp, &list)
	if len(list) != 1 {
		t.Fatalf("want 1 closure, got %d", len(list))
	}

	resp = doJSON(t, app, "DELETE", "/api/closures/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
}

func TestStatsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, config.Config{})

	resp := doJSON(t, app, "GET", "/api/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var sum map[string]any
	decode(t, resp, &sum)
	if sum["activeDonations"].(float64) != 2 || sum["completedDonations"].(float64) != 2 {
		t.Fatalf("unexpected summary: %v", sum)
	}
	if sum["peopleBenefited"].(float64) != 3 {
		t.Fatalf("want 3 people benefited, got %v", sum["peopleBenefited"])
	}
}
