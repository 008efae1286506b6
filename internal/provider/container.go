package provider

import (
	"github.com/botanical-decor/shop-api/internal/authz"
	"github.com/botanical-decor/shop-api/internal/cache"
	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/logger"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/queue"
	"github.com/botanical-decor/shop-api/internal/repository"
	"github.com/botanical-decor/shop-api/internal/service"
)

// Container wires repositories and services once and hands them to the
// HTTP handlers and the queue worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProfileRepo repository.ProfileRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	EmailService   *service.EmailService
	UploadService  *service.UploadService
	ProductService *service.ProductService
	PricingService *service.PricingService
	CartService    *service.CartService
	OrderService   *service.OrderService
}

// NewContainer builds the dependency graph. The database must already be
// initialized.
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
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.BootstrapBuiltinRoles(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.PricingService = service.NewPricingService(c.Config.Shop)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.PricingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.PricingService, c.QueueClient)
	c.AuthService = service.NewAuthService(c.Config, c.ProfileRepo, c.EmailService, c.QueueClient)
	c.ProfileService = service.NewProfileService(c.ProfileRepo)
}
