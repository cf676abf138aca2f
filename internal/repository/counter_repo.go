package repository

import (
	"quotepanel/internal/storage"
)

// CounterRepository tracks the monotonically increasing document number.
// The number exists only for display purposes and increments once per
// successful budget save.
type CounterRepository interface {
	Current() int
	Increment() (int, error)
}

type counterRepository struct {
	gw *storage.Gateway
}

func NewCounterRepository(gw *storage.Gateway) CounterRepository {
	return &counterRepository{gw: gw}
}

func (r *counterRepository) Current() int {
	n := 1
	r.gw.ReadJSON(storage.KeyLastBudgetNo, &n)
	if n <= 0 {
		n = 1
	}
	return n
}

func (r *counterRepository) Increment() (int, error) {
	n := r.Current() + 1
	return n, r.gw.WriteJSON(storage.KeyLastBudgetNo, n)
}
