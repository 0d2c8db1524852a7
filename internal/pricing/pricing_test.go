package pricing

import (
	"errors"
	"testing"

	"github.com/cyfa-store/api/internal/models"
)

func item(productID string, nairaPrice int64, quantity int) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		Name:      productID,
		UnitPrice: models.NewMoneyFromNaira(nairaPrice),
		Quantity:  quantity,
	}
}

func TestCalculateEmptyCart(t *testing.T) {
	snapshot, err := Calculate(nil, "")
	if err != nil {
		t.Fatalf("calculate empty cart failed: %v", err)
	}
	if !snapshot.Subtotal.IsZero() {
		t.Fatalf("empty cart subtotal want 0 got %d", snapshot.Subtotal.Kobo())
	}
	if snapshot.Shipping.Kobo() != models.NewMoneyFromNaira(5_000).Kobo() {
		t.Fatalf("empty cart still below threshold, shipping want 5000 naira got %s", snapshot.Shipping)
	}
	if snapshot.TotalItems != 0 {
		t.Fatalf("empty cart total items want 0 got %d", snapshot.TotalItems)
	}
}

func TestCalculateFreeShippingBoundary(t *testing.T) {
	// One item at ₦50,000 x2: subtotal sits exactly on the free-shipping
	// threshold, so shipping is zero and VAT applies to the full subtotal.
	items := []models.CartItem{item("prod_silk_dress", 50_000, 2)}
	snapshot, err := Calculate(items, "")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got, want := snapshot.Subtotal.Kobo(), models.NewMoneyFromNaira(100_000).Kobo(); got != want {
		t.Fatalf("subtotal want %d got %d", want, got)
	}
	if !snapshot.Discount.IsZero() {
		t.Fatalf("no promo, discount want 0 got %d", snapshot.Discount.Kobo())
	}
	if !snapshot.Shipping.IsZero() {
		t.Fatalf("threshold boundary must ship free, got %s", snapshot.Shipping)
	}
	if got, want := snapshot.Tax.Kobo(), models.NewMoneyFromNaira(7_500).Kobo(); got != want {
		t.Fatalf("tax want %d got %d", want, got)
	}
	if got, want := snapshot.Total.Kobo(), models.NewMoneyFromNaira(107_500).Kobo(); got != want {
		t.Fatalf("total want %d got %d", want, got)
	}
}

func TestCalculateWithPromoDropsBelowThreshold(t *testing.T) {
	// The 10% discount pulls the same cart under the threshold, so the flat
	// shipping fee comes back and VAT shrinks with the discounted subtotal.
	items := []models.CartItem{item("prod_silk_dress", 50_000, 2)}
	snapshot, err := Calculate(items, "CYFA10")
	if err != nil {
		t.Fatalf("calculate with promo failed: %v", err)
	}
	if got, want := snapshot.Discount.Kobo(), models.NewMoneyFromNaira(10_000).Kobo(); got != want {
		t.Fatalf("discount want %d got %d", want, got)
	}
	if got, want := snapshot.Shipping.Kobo(), models.NewMoneyFromNaira(5_000).Kobo(); got != want {
		t.Fatalf("shipping want %d got %d", want, got)
	}
	if got, want := snapshot.Tax.Kobo(), models.NewMoneyFromNaira(6_750).Kobo(); got != want {
		t.Fatalf("tax want %d got %d", want, got)
	}
	if got, want := snapshot.Total.Kobo(), models.NewMoneyFromNaira(101_750).Kobo(); got != want {
		t.Fatalf("total want %d got %d", want, got)
	}
	if snapshot.PromoCode != "CYFA10" {
		t.Fatalf("promo code want CYFA10 got %q", snapshot.PromoCode)
	}
}

func TestCalculateRemovingPromoRestoresSubtotal(t *testing.T) {
	items := []models.CartItem{item("prod_loafers", 30_000, 1)}
	withPromo, err := Calculate(items, "LUXURY10")
	if err != nil {
		t.Fatalf("calculate with promo failed: %v", err)
	}
	withoutPromo, err := Calculate(items, "")
	if err != nil {
		t.Fatalf("calculate without promo failed: %v", err)
	}
	if withPromo.Subtotal.Kobo() != withoutPromo.Subtotal.Kobo() {
		t.Fatalf("subtotal must not depend on promo: %d vs %d",
			withPromo.Subtotal.Kobo(), withoutPromo.Subtotal.Kobo())
	}
	if !withoutPromo.Discount.IsZero() {
		t.Fatalf("discount after removal want 0 got %d", withoutPromo.Discount.Kobo())
	}
}

func TestValidatePromoCaseInsensitive(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"CYFA10", "CYFA10"},
		{"cyfa10", "CYFA10"},
		{" Luxury10 ", "LUXURY10"},
	}
	for _, tc := range cases {
		got, err := ValidatePromo(tc.input)
		if err != nil {
			t.Fatalf("ValidatePromo(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ValidatePromo(%q) want %q got %q", tc.input, tc.want, got)
		}
	}
}

func TestValidatePromoRejectsUnknownCode(t *testing.T) {
	for _, input := range []string{"", "  ", "SAVE20", "CYFA1O"} {
		if _, err := ValidatePromo(input); !errors.Is(err, ErrPromoInvalid) {
			t.Fatalf("ValidatePromo(%q) want ErrPromoInvalid got %v", input, err)
		}
	}
}

func TestCalculateRejectsUnknownPromo(t *testing.T) {
	items := []models.CartItem{item("prod_scarf", 12_000, 1)}
	if _, err := Calculate(items, "SAVE20"); !errors.Is(err, ErrPromoInvalid) {
		t.Fatalf("want ErrPromoInvalid got %v", err)
	}
}

func TestCalculateTaxRoundsHalfUp(t *testing.T) {
	// ₦1 x1 with promo: discounted subtotal 90 kobo, 7.5% VAT = 6.75 kobo,
	// which rounds half-up to 7 kobo.
	items := []models.CartItem{{ProductID: "prod_pin", UnitPrice: models.NewMoneyFromKobo(100), Quantity: 1}}
	snapshot, err := Calculate(items, "CYFA10")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if got := snapshot.Discount.Kobo(); got != 10 {
		t.Fatalf("discount want 10 kobo got %d", got)
	}
	if got := snapshot.Tax.Kobo(); got != 7 {
		t.Fatalf("tax want 7 kobo got %d", got)
	}
}

func TestFreeShippingGap(t *testing.T) {
	items := []models.CartItem{item("prod_belt", 60_000, 1)}
	snapshot, err := Calculate(items, "")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	gap, met := FreeShippingGap(snapshot)
	if met {
		t.Fatalf("₦60,000 should not meet the threshold")
	}
	if got, want := gap.Kobo(), models.NewMoneyFromNaira(40_000).Kobo(); got != want {
		t.Fatalf("gap want %d got %d", want, got)
	}

	snapshot, err = Calculate([]models.CartItem{item("prod_coat", 150_000, 1)}, "")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if _, met := FreeShippingGap(snapshot); !met {
		t.Fatalf("₦150,000 should meet the threshold")
	}
}
