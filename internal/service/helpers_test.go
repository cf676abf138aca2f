package service

import (
	"context"
	"testing"

	"quotepanel/internal/repository"
	"quotepanel/internal/storage"
)

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	gw          *storage.Gateway
	budgetRepo  repository.BudgetRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	configRepo  repository.ConfigRepository
	counterRepo repository.CounterRepository

	catalog   CatalogService
	budgets   BudgetService
	clients   ClientService
	orders    OrderService
	config    ConfigService
	backup    BackupService
	dashboard DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gw := storage.NewGateway(storage.NewMemoryStore())

	env := &testEnv{
		gw:          gw,
		budgetRepo:  repository.NewBudgetRepository(gw),
		clientRepo:  repository.NewClientRepository(gw),
		productRepo: repository.NewProductRepository(gw),
		orderRepo:   repository.NewOrderRepository(gw),
		configRepo:  repository.NewConfigRepository(gw),
		counterRepo: repository.NewCounterRepository(gw),
	}
	env.catalog = NewCatalogService(env.productRepo, nil)
	env.budgets = NewBudgetService(env.budgetRepo, env.clientRepo, env.counterRepo, env.configRepo, env.catalog, nil)
	env.clients = NewClientService(env.clientRepo, env.budgetRepo, nil)
	env.orders = NewOrderService(env.orderRepo, env.budgets, nil)
	env.config = NewConfigService(env.configRepo, env.budgets, nil)
	env.backup = NewBackupService(env.clientRepo, env.productRepo, env.budgetRepo, env.catalog, nil)
	env.dashboard = NewDashboardService(env.budgets, env.clients, env.catalog, env.orders)
	return env
}

func ctx() context.Context { return context.Background() }
