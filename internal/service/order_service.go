package service

import (
	"context"
	"fmt"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptRow is one order item flattened for the goods-reception screen.
type ReceiptRow struct {
	OrderID     string  `json:"orderId"`
	OrderNumber *string `json:"orderNumber"`
	ClientName  string  `json:"clientName"`
	ItemName    string  `json:"itemName"`
	Qty         int     `json:"qty"`
	Received    bool    `json:"received"`
}

type OrderService interface {
	FromCurrentBudget(ctx context.Context) (model.Order, error)
	List(ctx context.Context) []model.Order
	Get(ctx context.Context, id string) (model.Order, error)
	ReceiptRows(ctx context.Context) []ReceiptRow
	SetItemReceived(ctx context.Context, orderID, itemName string, received bool) (model.Order, error)
	SetDeliveryDate(ctx context.Context, orderID, date string) (model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	budgets   BudgetService
	hub       EventBroadcaster
}

func NewOrderService(orderRepo repository.OrderRepository, budgets BudgetService, hub EventBroadcaster) OrderService {
	return &orderService{orderRepo: orderRepo, budgets: budgets, hub: hub}
}

// FromCurrentBudget snapshots the in-progress quote into a purchase
// order. The order copies names and amounts; later edits to the draft or
// the catalog never touch it. Payment date is assumed to be today, the
// day the sale closed.
func (s *orderService) FromCurrentBudget(ctx context.Context) (model.Order, error) {
	draft := s.budgets.Draft(ctx)
	if len(draft.Items) == 0 {
		return model.Order{}, fmt.Errorf("el presupuesto está vacío, agregá productos antes de pasar a pedidos: %w", ErrValidation)
	}

	orderID := "ord_" + uuid.NewString()
	items := make([]model.OrderItem, 0, len(draft.Items))
	for idx, li := range draft.Items {
		qty := li.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal := decimal.NewFromFloat(li.UnitPrice).Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, model.OrderItem{
			ID:        fmt.Sprintf("%s_item%d", orderID, idx),
			Name:      li.Name,
			Qty:       qty,
			UnitPrice: li.UnitPrice,
			Subtotal:  subtotal.InexactFloat64(),
			Received:  false,
		})
	}

	clientName := draft.ClientName
	if clientName == "" {
		clientName = "Sin nombre"
	}
	budgetDate := draft.Date
	today := todayISO()
	if budgetDate == "" {
		budgetDate = today
	}
	number := s.budgets.DocumentNumber(ctx)

	order := model.Order{
		ID:           orderID,
		Number:       &number,
		ClientName:   clientName,
		CreatedAt:    today,
		BudgetDate:   budgetDate,
		PaymentDate:  today,
		DeliveryDate: nil,
		Items:        items,
	}
	order.Status = model.DeriveOrderStatus(order)

	if err := s.orderRepo.Upsert(order); err != nil {
		return model.Order{}, fmt.Errorf("failed to save order: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("order.created", map[string]interface{}{"id": order.ID})
	}
	return order, nil
}

// List returns all orders with the status recomputed from item receipt
// flags, so stale persisted statuses can never leak out.
func (s *orderService) List(ctx context.Context) []model.Order {
	orders := s.orderRepo.All()
	for i := range orders {
		orders[i].Status = model.DeriveOrderStatus(orders[i])
	}
	return orders
}

func (s *orderService) Get(ctx context.Context, id string) (model.Order, error) {
	o, ok := s.orderRepo.FindByID(id)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	o.Status = model.DeriveOrderStatus(o)
	return o, nil
}

func (s *orderService) ReceiptRows(ctx context.Context) []ReceiptRow {
	rows := []ReceiptRow{}
	for _, o := range s.orderRepo.All() {
		for _, it := range o.Items {
			rows = append(rows, ReceiptRow{
				OrderID:     o.ID,
				OrderNumber: o.Number,
				ClientName:  o.ClientName,
				ItemName:    it.Name,
				Qty:         it.Qty,
				Received:    it.Received,
			})
		}
	}
	return rows
}

// SetItemReceived flips the receipt flag of the item with the given
// name. Items are addressed by name here because that is the only stable
// handle the reception screen has; duplicate names update the first match.
func (s *orderService) SetItemReceived(ctx context.Context, orderID, itemName string, received bool) (model.Order, error) {
	o, ok := s.orderRepo.FindByID(orderID)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	found := false
	for i := range o.Items {
		if o.Items[i].Name == itemName {
			o.Items[i].Received = received
			found = true
			break
		}
	}
	if !found {
		return model.Order{}, ErrOrderItemNotFound
	}
	o.Status = model.DeriveOrderStatus(o)
	if err := s.orderRepo.Upsert(o); err != nil {
		return model.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("order.updated", map[string]interface{}{"id": o.ID, "status": o.Status})
	}
	return o, nil
}

func (s *orderService) SetDeliveryDate(ctx context.Context, orderID, date string) (model.Order, error) {
	o, ok := s.orderRepo.FindByID(orderID)
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	if date == "" {
		o.DeliveryDate = nil
	} else {
		o.DeliveryDate = &date
	}
	o.Status = model.DeriveOrderStatus(o)
	if err := s.orderRepo.Upsert(o); err != nil {
		return model.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("order.updated", map[string]interface{}{"id": o.ID})
	}
	return o, nil
}
