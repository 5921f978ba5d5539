package app

import (
	"sync"

	"github.com/pkg/errors"

	"shopfront/pkg/domain/service"
	"shopfront/pkg/infrastructure/storage"
)

// App owns all mutable state: the two storage scopes and the services
// built on them. Handlers serialize access through Mu; the domain layer
// itself assumes single-goroutine ownership.
type App struct {
	Mu sync.Mutex

	Config  *Config
	Catalog service.Catalog
	Auth    service.AuthService
	Cart    service.CartService
	Orders  service.OrderService
}

func New(cfg *Config) (*App, error) {
	durable, err := openDurableStore(cfg)
	if err != nil {
		return nil, err
	}
	ephemeral := storage.NewMemoryStore()
	dispatcher := NewLogDispatcher()

	catalog := service.NewCatalog()

	auth, err := service.NewAuthService(durable, ephemeral, dispatcher)
	if err != nil {
		return nil, errors.Wrap(err, "init auth service")
	}

	cart, err := service.NewCartService(durable, catalog, dispatcher)
	if err != nil {
		return nil, errors.Wrap(err, "init cart service")
	}

	orders, err := service.NewOrderService(durable, cart, dispatcher, cfg.AllowEmptyCart)
	if err != nil {
		return nil, errors.Wrap(err, "init order service")
	}

	return &App{
		Config:  cfg,
		Catalog: catalog,
		Auth:    auth,
		Cart:    cart,
		Orders:  orders,
	}, nil
}

func openDurableStore(cfg *Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "file":
		return storage.NewFileStore(cfg.DataFile)
	case "mysql":
		return storage.NewMySQLStore(cfg.MySQLDSN)
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
