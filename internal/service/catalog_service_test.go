package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyfa-store/api/internal/payment/stripe"
)

func setupCatalogServiceTest(t *testing.T) *CatalogService {
	t.Helper()
	server := fakeStripeCatalog(t)
	t.Cleanup(server.Close)
	return NewCatalogService(&stripe.Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
		Currency:   "NGN",
	}, time.Minute)
}

func TestListProductsMapsMetadata(t *testing.T) {
	svc := setupCatalogServiceTest(t)

	views, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	var scarf *ProductView
	for i := range views {
		if views[i].ID == "prod_scarf" {
			scarf = &views[i]
		}
	}
	if scarf == nil {
		t.Fatalf("prod_scarf missing from %+v", views)
	}
	if scarf.Price.Kobo() != 2_500_000 {
		t.Fatalf("unexpected price: %d", scarf.Price.Kobo())
	}
	if scarf.PriceFormatted != "₦25,000" {
		t.Fatalf("unexpected formatted price: %s", scarf.PriceFormatted)
	}
	if scarf.Category != "accessories" || scarf.Rating != 4.8 || scarf.Reviews != 127 {
		t.Fatalf("metadata not mapped: %+v", scarf)
	}
	if len(scarf.Colors) != 2 || scarf.Colors[0] != "ivory" || scarf.Colors[1] != "noir" {
		t.Fatalf("colors not split: %+v", scarf.Colors)
	}
	if !scarf.IsNew {
		t.Fatalf("expected is_new to be true")
	}
	if scarf.Image != "https://cdn.example.com/scarf.jpg" {
		t.Fatalf("unexpected primary image: %s", scarf.Image)
	}
	if scarf.OriginalPrice.Kobo() != 3_000_000 || scarf.OriginalPriceFormatted != "₦30,000" {
		t.Fatalf("original price not mapped: %+v", scarf)
	}
	if scarf.StripePriceID != "price_scarf" {
		t.Fatalf("unexpected stripe price id: %s", scarf.StripePriceID)
	}
}

func TestGetProductUnknownID(t *testing.T) {
	svc := setupCatalogServiceTest(t)

	if _, err := svc.GetProduct(context.Background(), "prod_ghost"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), "  "); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for blank id, got %v", err)
	}
}

func TestListProductsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	svc := NewCatalogService(&stripe.Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
		Currency:   "NGN",
	}, time.Minute)

	if _, err := svc.ListProducts(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
