package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cyfa-store/api/internal/cache"
	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/payment/stripe"
)

const (
	catalogListCacheKey       = "catalog:products"
	catalogProductCachePrefix = "catalog:product:"
)

// ProductView is a catalog entry shaped for the storefront. Price is the
// amount in kobo; PriceFormatted is the naira display string.
type ProductView struct {
	ID                     string       `json:"id"`
	Name                   string       `json:"name"`
	Description            string       `json:"description"`
	Price                  models.Money `json:"price"`
	PriceFormatted         string       `json:"price_formatted"`
	OriginalPrice          models.Money `json:"original_price"`
	OriginalPriceFormatted string       `json:"original_price_formatted,omitempty"`
	Currency               string       `json:"currency"`
	Image                  string       `json:"image"`
	Images                 []string     `json:"images"`
	Category               string       `json:"category"`
	Rating                 float64      `json:"rating"`
	Reviews                int          `json:"reviews"`
	Colors                 []string     `json:"colors"`
	IsNew                  bool         `json:"is_new"`
	StripePriceID          string       `json:"stripe_price_id"`
}

// CatalogService serves products from Stripe with a Redis read-through cache.
type CatalogService struct {
	stripeCfg *stripe.Config
	cacheTTL  time.Duration
}

// NewCatalogService creates the catalog service.
func NewCatalogService(stripeCfg *stripe.Config, cacheTTL time.Duration) *CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{stripeCfg: stripeCfg, cacheTTL: cacheTTL}
}

// ListProducts returns the active catalog, cached for the configured TTL.
func (s *CatalogService) ListProducts(ctx context.Context) ([]ProductView, error) {
	var cached []ProductView
	if hit, err := cache.GetJSON(ctx, catalogListCacheKey, &cached); err != nil {
		logger.Warnw("catalog list cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	products, err := stripe.ListProducts(ctx, s.stripeCfg, 0)
	if err != nil {
		logger.Errorw("stripe product list failed", "error", err)
		return nil, ErrCatalogUnavailable
	}
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, buildProductView(product))
	}
	if err := cache.SetJSON(ctx, catalogListCacheKey, views, s.cacheTTL); err != nil {
		logger.Warnw("catalog list cache write failed", "error", err)
	}
	return views, nil
}

// GetProduct returns one product by its Stripe id.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*ProductView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductNotFound
	}
	cacheKey := catalogProductCachePrefix + productID
	var cached ProductView
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("catalog product cache read failed", "product_id", productID, "error", err)
	} else if hit {
		return &cached, nil
	}

	product, err := stripe.GetProduct(ctx, s.stripeCfg, productID)
	if errors.Is(err, stripe.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.Errorw("stripe product fetch failed", "product_id", productID, "error", err)
		return nil, ErrCatalogUnavailable
	}
	view := buildProductView(*product)
	if err := cache.SetJSON(ctx, cacheKey, view, s.cacheTTL); err != nil {
		logger.Warnw("catalog product cache write failed", "product_id", productID, "error", err)
	}
	return &view, nil
}

// InvalidateCache drops the cached product list.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if err := cache.Del(ctx, catalogListCacheKey); err != nil {
		logger.Warnw("catalog cache invalidation failed", "error", err)
	}
}

func buildProductView(product stripe.Product) ProductView {
	price := models.NewMoneyFromKobo(product.UnitAmount)
	view := ProductView{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          price,
		PriceFormatted: price.Format(),
		Currency:       product.Currency,
		Images:         product.Images,
		StripePriceID:  product.PriceID,
	}
	if len(product.Images) > 0 {
		view.Image = product.Images[0]
	}
	meta := product.Metadata
	if meta == nil {
		return view
	}
	view.Category = strings.TrimSpace(meta["category"])
	if original, err := models.ParseMoney(meta["original_price"]); err == nil && original.Kobo() > 0 {
		view.OriginalPrice = original
		view.OriginalPriceFormatted = original.Format()
	}
	if rating, err := strconv.ParseFloat(strings.TrimSpace(meta["rating"]), 64); err == nil {
		view.Rating = rating
	}
	if reviews, err := strconv.Atoi(strings.TrimSpace(meta["reviews"])); err == nil {
		view.Reviews = reviews
	}
	if colors := strings.TrimSpace(meta["colors"]); colors != "" {
		parts := strings.Split(colors, ",")
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				view.Colors = append(view.Colors, trimmed)
			}
		}
	}
	view.IsNew = strings.EqualFold(strings.TrimSpace(meta["is_new"]), "true")
	return view
}
