package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig(baseURL string) *Config {
	return &Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: baseURL,
		SuccessURL: "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example.com/cart",
		Currency:   "NGN",
	}
}

func TestValidateConfigRejectsMissingSecret(t *testing.T) {
	cfg := testConfig("")
	cfg.SecretKey = ""
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected config error for empty secret key")
	}
}

func TestCreateCheckoutSessionEncodesLineItems(t *testing.T) {
	var captured map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %s", auth)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form failed: %v", err)
		}
		captured = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cs_test_abc",
			"url":    "https://checkout.stripe.com/c/pay/cs_test_abc",
			"status": "open",
		})
	}))
	defer server.Close()

	result, err := CreateCheckoutSession(context.Background(), testConfig(server.URL), CheckoutInput{
		Reference: "CYF-10293847",
		LineItems: []LineItem{
			{Name: "Silk Scarf", Image: "https://cdn.example.com/scarf.jpg", UnitAmount: 2_500_000, Quantity: 2},
			{Name: "Leather Tote", UnitAmount: 8_000_000, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create checkout session failed: %v", err)
	}
	if result.SessionID != "cs_test_abc" {
		t.Fatalf("unexpected session id: %s", result.SessionID)
	}
	if result.URL == "" {
		t.Fatalf("expected hosted checkout url")
	}

	checks := map[string]string{
		"mode":                                               "payment",
		"client_reference_id":                                "CYF-10293847",
		"line_items[0][quantity]":                            "2",
		"line_items[0][price_data][currency]":                "ngn",
		"line_items[0][price_data][unit_amount]":             "2500000",
		"line_items[0][price_data][product_data][name]":      "Silk Scarf",
		"line_items[0][price_data][product_data][images][0]": "https://cdn.example.com/scarf.jpg",
		"line_items[1][quantity]":                            "1",
		"line_items[1][price_data][unit_amount]":             "8000000",
	}
	for key, want := range checks {
		got := ""
		if values, ok := captured[key]; ok && len(values) > 0 {
			got = values[0]
		}
		if got != want {
			t.Fatalf("form field %s = %q, want %q", key, got, want)
		}
	}
	if _, ok := captured["line_items[1][price_data][product_data][images][0]"]; ok {
		t.Fatalf("expected no image field for line without image")
	}
}

func TestCreateCheckoutSessionRejectsInvalidLine(t *testing.T) {
	_, err := CreateCheckoutSession(context.Background(), testConfig("https://api.stripe.com"), CheckoutInput{
		LineItems: []LineItem{{Name: "Broken", UnitAmount: 0, Quantity: 1}},
	})
	if err == nil {
		t.Fatalf("expected error for zero unit amount")
	}
}

func TestGetCheckoutSessionPaid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_abc" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                  "cs_test_abc",
			"payment_status":      "paid",
			"status":              "complete",
			"amount_total":        10_175_000,
			"currency":            "ngn",
			"client_reference_id": "CYF-10293847",
		})
	}))
	defer server.Close()

	session, err := GetCheckoutSession(context.Background(), testConfig(server.URL), "cs_test_abc")
	if err != nil {
		t.Fatalf("get checkout session failed: %v", err)
	}
	if !session.IsPaid() {
		t.Fatalf("expected session to report paid")
	}
	if session.AmountTotal != 10_175_000 {
		t.Fatalf("unexpected amount total: %d", session.AmountTotal)
	}
	if session.Currency != "NGN" {
		t.Fatalf("unexpected currency: %s", session.Currency)
	}
	if session.Reference != "CYF-10293847" {
		t.Fatalf("unexpected reference: %s", session.Reference)
	}
}

func TestListProductsExpandsDefaultPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/products" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("active") != "true" {
			t.Fatalf("expected active filter, got %q", query.Get("active"))
		}
		if query.Get("expand[]") != "data.default_price" {
			t.Fatalf("expected default_price expansion, got %q", query.Get("expand[]"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{
					"id":          "prod_1",
					"name":        "Silk Scarf",
					"description": "Hand rolled silk",
					"images":      []string{"https://cdn.example.com/scarf.jpg"},
					"metadata":    map[string]string{"category": "accessories", "rating": "4.8"},
					"default_price": map[string]interface{}{
						"id":          "price_1",
						"unit_amount": 2_500_000,
						"currency":    "ngn",
					},
				},
			},
		})
	}))
	defer server.Close()

	products, err := ListProducts(context.Background(), testConfig(server.URL), 0)
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	product := products[0]
	if product.ID != "prod_1" || product.Name != "Silk Scarf" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.UnitAmount != 2_500_000 || product.Currency != "NGN" {
		t.Fatalf("unexpected price: %d %s", product.UnitAmount, product.Currency)
	}
	if product.Metadata["category"] != "accessories" {
		t.Fatalf("unexpected metadata: %+v", product.Metadata)
	}
}

func TestGetProductNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := GetProduct(context.Background(), testConfig(server.URL), "prod_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
