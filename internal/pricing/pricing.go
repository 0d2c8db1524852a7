package pricing

import (
	"errors"
	"strings"

	"github.com/cyfa-store/api/internal/models"

	"github.com/shopspring/decimal"
)

// ErrPromoInvalid reports a promo code outside the allow-list.
var ErrPromoInvalid = errors.New("promo code invalid")

// Storefront pricing policy. A valid promo takes 10% off the subtotal,
// orders of ₦100,000 or more (after discount) ship free, and VAT is a flat
// 7.5% of the discounted subtotal.
var (
	promoDiscountRate = decimal.New(10, -2) // 0.10
	vatRate           = decimal.New(75, -3) // 0.075

	freeShippingThreshold = models.NewMoneyFromNaira(100_000)
	flatShippingFee       = models.NewMoneyFromNaira(5_000)
)

// promoCodes is the static allow-list; both codes map to the same rate.
var promoCodes = map[string]decimal.Decimal{
	"CYFA10":   promoDiscountRate,
	"LUXURY10": promoDiscountRate,
}

// Snapshot is the derived pricing breakdown for a cart. It is computed fresh
// from the items on every call and never stored.
type Snapshot struct {
	Subtotal   models.Money `json:"subtotal"`
	Discount   models.Money `json:"discount"`
	Shipping   models.Money `json:"shipping"`
	Tax        models.Money `json:"tax"`
	Total      models.Money `json:"total"`
	PromoCode  string       `json:"promo_code,omitempty"`
	TotalItems int          `json:"total_items"`
}

// ValidatePromo checks a user-submitted code against the allow-list,
// case-insensitively. It returns the canonical (uppercase) form on success.
func ValidatePromo(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", ErrPromoInvalid
	}
	if _, ok := promoCodes[normalized]; !ok {
		return "", ErrPromoInvalid
	}
	return normalized, nil
}

// Calculate derives the Snapshot for the given items and optional promo code.
// An empty promo code means no discount; an unknown one is rejected so a
// stale code can never silently price a cart.
func Calculate(items []models.CartItem, promoCode string) (Snapshot, error) {
	snapshot := Snapshot{}

	applied := ""
	rate := decimal.Zero
	if strings.TrimSpace(promoCode) != "" {
		canonical, err := ValidatePromo(promoCode)
		if err != nil {
			return Snapshot{}, err
		}
		applied = canonical
		rate = promoCodes[canonical]
	}

	subtotal := models.NewMoneyFromKobo(0)
	totalItems := 0
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.MulInt(quantity))
		totalItems += quantity
	}

	discount := models.NewMoneyFromKobo(0)
	if applied != "" {
		discount = subtotal.MulRate(rate)
	}
	discounted := subtotal.Sub(discount)

	shipping := flatShippingFee
	if discounted.Cmp(freeShippingThreshold) >= 0 {
		shipping = models.NewMoneyFromKobo(0)
	}

	tax := discounted.MulRate(vatRate)

	snapshot.Subtotal = subtotal
	snapshot.Discount = discount
	snapshot.Shipping = shipping
	snapshot.Tax = tax
	snapshot.Total = discounted.Add(shipping).Add(tax)
	snapshot.PromoCode = applied
	snapshot.TotalItems = totalItems
	return snapshot, nil
}

// FreeShippingGap returns how much more spend (after discount) would unlock
// free shipping, and whether the threshold is already met.
func FreeShippingGap(snapshot Snapshot) (models.Money, bool) {
	discounted := snapshot.Subtotal.Sub(snapshot.Discount)
	if discounted.Cmp(freeShippingThreshold) >= 0 {
		return models.NewMoneyFromKobo(0), true
	}
	return freeShippingThreshold.Sub(discounted), false
}
