package repository

import (
	"quotepanel/internal/model"
	"quotepanel/internal/storage"
)

type BudgetRepository interface {
	All() []model.Budget
	FindByID(id string) (model.Budget, bool)
	Upsert(b model.Budget) error
	Delete(id string) (bool, error)
	Replace(list []model.Budget) error
}

type budgetRepository struct {
	gw *storage.Gateway
}

func NewBudgetRepository(gw *storage.Gateway) BudgetRepository {
	return &budgetRepository{gw: gw}
}

func (r *budgetRepository) All() []model.Budget {
	list := []model.Budget{}
	r.gw.ReadJSON(storage.KeyBudgets, &list)
	return list
}

func (r *budgetRepository) FindByID(id string) (model.Budget, bool) {
	for _, b := range r.All() {
		if b.ID == id {
			return b, true
		}
	}
	return model.Budget{}, false
}

func (r *budgetRepository) Upsert(b model.Budget) error {
	list := r.All()
	for i := range list {
		if list[i].ID == b.ID {
			list[i] = b
			return r.gw.WriteJSON(storage.KeyBudgets, list)
		}
	}
	list = append(list, b)
	return r.gw.WriteJSON(storage.KeyBudgets, list)
}

func (r *budgetRepository) Delete(id string) (bool, error) {
	list := r.All()
	out := list[:0]
	found := false
	for _, b := range list {
		if b.ID == id {
			found = true
			continue
		}
		out = append(out, b)
	}
	if !found {
		return false, nil
	}
	return true, r.gw.WriteJSON(storage.KeyBudgets, out)
}

func (r *budgetRepository) Replace(list []model.Budget) error {
	if list == nil {
		list = []model.Budget{}
	}
	return r.gw.WriteJSON(storage.KeyBudgets, list)
}
