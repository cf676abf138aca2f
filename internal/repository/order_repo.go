package repository

import (
	"quotepanel/internal/model"
	"quotepanel/internal/storage"
)

type OrderRepository interface {
	All() []model.Order
	FindByID(id string) (model.Order, bool)
	Upsert(o model.Order) error
}

type orderRepository struct {
	gw *storage.Gateway
}

func NewOrderRepository(gw *storage.Gateway) OrderRepository {
	return &orderRepository{gw: gw}
}

func (r *orderRepository) All() []model.Order {
	list := []model.Order{}
	r.gw.ReadJSON(storage.KeyOrders, &list)
	return list
}

func (r *orderRepository) FindByID(id string) (model.Order, bool) {
	for _, o := range r.All() {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

func (r *orderRepository) Upsert(o model.Order) error {
	list := r.All()
	for i := range list {
		if list[i].ID == o.ID {
			list[i] = o
			return r.gw.WriteJSON(storage.KeyOrders, list)
		}
	}
	list = append(list, o)
	return r.gw.WriteJSON(storage.KeyOrders, list)
}
