package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/payment/stripe"
	"github.com/cyfa-store/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutServiceTest(t *testing.T, handler http.HandlerFunc) (*CheckoutService, *repository.GormCartRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartItem{}); err != nil {
		t.Fatalf("migrate cart items failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
		t.Fatalf("reset cart items failed: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cartRepo := repository.NewCartRepository(db)
	svc := NewCheckoutService(cartRepo, &stripe.Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
		SuccessURL: "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example.com/cart",
		Currency:   "NGN",
	})
	svc.now = func() time.Time { return time.UnixMilli(1_756_710_293_847) }
	return svc, cartRepo
}

func seedCartLine(t *testing.T, repo *repository.GormCartRepository, token string, nairaPrice int64, quantity int) {
	t.Helper()
	err := repo.MergeItem(&models.CartItem{
		CartToken: token,
		ProductID: "prod_scarf",
		Name:      "Silk Scarf",
		Image:     "https://cdn.example.com/scarf.jpg",
		UnitPrice: models.NewMoneyFromNaira(nairaPrice),
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("seed cart line failed: %v", err)
	}
}

func TestCreateSessionHandsOffCartLines(t *testing.T) {
	var form map[string][]string
	svc, repo := setupCheckoutServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "cs_test_1", "url": "https://checkout.stripe.com/c/pay/cs_test_1", "status": "open",
		})
	})
	seedCartLine(t, repo, "tok-checkout", 25_000, 2)

	session, err := svc.CreateSession(context.Background(), "tok-checkout", "")
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.SessionID != "cs_test_1" || session.URL == "" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if !strings.HasPrefix(session.OrderNumber, "CYF-") || len(session.OrderNumber) != len("CYF-")+8 {
		t.Fatalf("unexpected order number: %s", session.OrderNumber)
	}
	if got := form["line_items[0][price_data][unit_amount]"]; len(got) != 1 || got[0] != "2500000" {
		t.Fatalf("unexpected unit amount: %v", got)
	}
	if got := form["line_items[0][quantity]"]; len(got) != 1 || got[0] != "2" {
		t.Fatalf("unexpected quantity: %v", got)
	}

	// A failed hand-off attempt must never drain the cart; neither does a
	// successful one until payment is confirmed.
	items, err := repo.ListByToken("tok-checkout")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected cart untouched after hand-off, got %d lines", len(items))
	}
}

func TestCreateSessionEmptyCart(t *testing.T) {
	svc, _ := setupCheckoutServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected for empty cart")
	})
	_, err := svc.CreateSession(context.Background(), "tok-empty", "")
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCreateSessionProviderFailureLeavesCart(t *testing.T) {
	svc, repo := setupCheckoutServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	seedCartLine(t, repo, "tok-fail", 25_000, 1)

	_, err := svc.CreateSession(context.Background(), "tok-fail", "")
	if !errors.Is(err, ErrCheckoutFailed) {
		t.Fatalf("expected ErrCheckoutFailed, got %v", err)
	}
	items, err := repo.ListByToken("tok-fail")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected cart untouched after failure, got %d lines", len(items))
	}
}

func TestConfirmSuccessClearsCart(t *testing.T) {
	svc, repo := setupCheckoutServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                  "cs_test_1",
			"payment_status":      "paid",
			"status":              "complete",
			"amount_total":        5_375_000,
			"currency":            "ngn",
			"client_reference_id": "CYF-10293847",
		})
	})
	seedCartLine(t, repo, "tok-confirm", 25_000, 2)

	confirmation, err := svc.ConfirmSuccess(context.Background(), "tok-confirm", "cs_test_1")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmation.OrderNumber != "CYF-10293847" {
		t.Fatalf("unexpected order number: %s", confirmation.OrderNumber)
	}
	if confirmation.AmountTotal.Kobo() != 5_375_000 {
		t.Fatalf("unexpected amount: %d", confirmation.AmountTotal.Kobo())
	}
	items, err := repo.ListByToken("tok-confirm")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cart cleared after confirmation, got %d lines", len(items))
	}
}

func TestConfirmSuccessUnpaidLeavesCart(t *testing.T) {
	svc, repo := setupCheckoutServiceTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "cs_test_1", "payment_status": "unpaid", "status": "open",
		})
	})
	seedCartLine(t, repo, "tok-unpaid", 25_000, 1)

	_, err := svc.ConfirmSuccess(context.Background(), "tok-unpaid", "cs_test_1")
	if !errors.Is(err, ErrPaymentNotSettled) {
		t.Fatalf("expected ErrPaymentNotSettled, got %v", err)
	}
	items, err := repo.ListByToken("tok-unpaid")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(items))
	}
}
