package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/payment/stripe"
	"github.com/cyfa-store/api/internal/pricing"
	"github.com/cyfa-store/api/internal/repository"
)

const orderNumberPrefix = "CYF-"

// CheckoutSession is the hand-off to the hosted payment page.
type CheckoutSession struct {
	SessionID   string `json:"id"`
	URL         string `json:"url"`
	OrderNumber string `json:"order_number"`
}

// OrderConfirmation is returned once a session's payment has settled.
type OrderConfirmation struct {
	OrderNumber string       `json:"order_number"`
	SessionID   string       `json:"session_id"`
	AmountTotal models.Money `json:"amount_total"`
	Currency    string       `json:"currency"`
}

// CheckoutService converts a cart into a hosted Stripe checkout session and
// confirms settled payments. The cart is only cleared after a confirmed
// payment; a failed hand-off leaves it untouched.
type CheckoutService struct {
	cartRepo  repository.CartRepository
	stripeCfg *stripe.Config
	now       func() time.Time
}

// NewCheckoutService creates the checkout service.
func NewCheckoutService(cartRepo repository.CartRepository, stripeCfg *stripe.Config) *CheckoutService {
	return &CheckoutService{
		cartRepo:  cartRepo,
		stripeCfg: stripeCfg,
		now:       time.Now,
	}
}

// CreateSession builds a checkout session from the cart's lines. The promo
// code is validated up front so an invalid code fails before any network
// call.
func (s *CheckoutService) CreateSession(ctx context.Context, cartToken, promoCode string) (*CheckoutSession, error) {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	items, err := s.cartRepo.ListByToken(token)
	if err != nil {
		return nil, err
	}
	snapshot, err := pricing.Calculate(items, promoCode)
	if err != nil {
		return nil, err
	}
	if snapshot.TotalItems == 0 {
		return nil, ErrCartEmpty
	}

	lineItems := make([]stripe.LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		lineItems = append(lineItems, stripe.LineItem{
			Name:       item.Name,
			Image:      item.Image,
			UnitAmount: item.UnitPrice.Kobo(),
			Quantity:   item.Quantity,
		})
	}

	orderNumber := s.newOrderNumber()
	result, err := stripe.CreateCheckoutSession(ctx, s.stripeCfg, stripe.CheckoutInput{
		Reference: orderNumber,
		LineItems: lineItems,
	})
	if err != nil {
		logger.Errorw("checkout session creation failed", "cart_token", token, "error", err)
		return nil, ErrCheckoutFailed
	}
	logger.Infow("checkout session created",
		"cart_token", token,
		"session_id", result.SessionID,
		"order_number", orderNumber,
		"total_items", snapshot.TotalItems,
	)
	return &CheckoutSession{
		SessionID:   result.SessionID,
		URL:         result.URL,
		OrderNumber: orderNumber,
	}, nil
}

// ConfirmSuccess verifies the session's payment settled, clears the cart and
// returns the order confirmation. An unsettled payment leaves the cart as is.
func (s *CheckoutService) ConfirmSuccess(ctx context.Context, cartToken, sessionID string) (*OrderConfirmation, error) {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	session, err := stripe.GetCheckoutSession(ctx, s.stripeCfg, sessionID)
	if err != nil {
		logger.Errorw("checkout session lookup failed", "session_id", sessionID, "error", err)
		return nil, ErrCheckoutFailed
	}
	if !session.IsPaid() {
		return nil, ErrPaymentNotSettled
	}
	if err := s.cartRepo.ClearByToken(token); err != nil {
		return nil, err
	}
	orderNumber := strings.TrimSpace(session.Reference)
	if orderNumber == "" {
		orderNumber = s.newOrderNumber()
	}
	logger.Infow("order confirmed",
		"order_number", orderNumber,
		"session_id", session.SessionID,
		"amount_total", session.AmountTotal,
	)
	return &OrderConfirmation{
		OrderNumber: orderNumber,
		SessionID:   session.SessionID,
		AmountTotal: models.NewMoneyFromKobo(session.AmountTotal),
		Currency:    session.Currency,
	}, nil
}

// newOrderNumber mints a short order reference from the clock's last eight
// millisecond digits.
func (s *CheckoutService) newOrderNumber() string {
	millis := strconv.FormatInt(s.now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return orderNumberPrefix + millis
}
