package service

import (
	"context"

	"quotepanel/internal/model"
)

// DashboardSummary backs the landing screen counters.
type DashboardSummary struct {
	BudgetsToday  int            `json:"budgetsToday"`
	Clients       int            `json:"clients"`
	Products      int            `json:"products"`
	Orders        int            `json:"orders"`
	LatestBudgets []model.Budget `json:"latestBudgets"`
}

type DashboardService interface {
	Summary(ctx context.Context) DashboardSummary
}

type dashboardService struct {
	budgets BudgetService
	clients ClientService
	catalog CatalogService
	orders  OrderService
}

func NewDashboardService(budgets BudgetService, clients ClientService, catalog CatalogService, orders OrderService) DashboardService {
	return &dashboardService{budgets: budgets, clients: clients, catalog: catalog, orders: orders}
}

func (s *dashboardService) Summary(ctx context.Context) DashboardSummary {
	// List already sorts newest-first.
	latest, _, _ := s.budgets.List(ctx, BudgetFilter{Page: 1, Limit: 5})

	return DashboardSummary{
		BudgetsToday:  s.budgets.TodayCount(ctx),
		Clients:       len(s.clients.GetAll(ctx)),
		Products:      len(s.catalog.GetAll(ctx)),
		Orders:        len(s.orders.List(ctx)),
		LatestBudgets: latest,
	}
}
