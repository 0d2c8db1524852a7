package provider

import (
	"time"

	"github.com/cyfa-store/api/internal/cache"
	"github.com/cyfa-store/api/internal/config"
	"github.com/cyfa-store/api/internal/logger"
	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/payment/stripe"
	"github.com/cyfa-store/api/internal/queue"
	"github.com/cyfa-store/api/internal/repository"
	"github.com/cyfa-store/api/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CartRepo       repository.CartRepository
	ContactRepo    repository.ContactMessageRepository
	NewsletterRepo repository.NewsletterRepository

	// Services
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	CheckoutService     *service.CheckoutService
	NotificationService *service.NotificationService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CartRepo = repository.NewCartRepository(db)
	c.ContactRepo = repository.NewContactMessageRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
}

func (c *Container) initServices() {
	stripeCfg := StripeConfig(c.Config)
	cacheTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second

	c.CatalogService = service.NewCatalogService(stripeCfg, cacheTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogService)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, stripeCfg)
	c.NotificationService = service.NewNotificationService(c.ContactRepo, c.NewsletterRepo, c.QueueClient)
}

// StripeConfig maps the app config onto the payment client's config.
func StripeConfig(cfg *config.Config) *stripe.Config {
	return &stripe.Config{
		SecretKey:      cfg.Stripe.SecretKey,
		PublishableKey: cfg.Stripe.PublishableKey,
		APIBaseURL:     cfg.Stripe.APIBaseURL,
		SuccessURL:     cfg.Stripe.SuccessURL,
		CancelURL:      cfg.Stripe.CancelURL,
		Currency:       cfg.Stripe.Currency,
		TimeoutMS:      cfg.Stripe.TimeoutMS,
	}
}
