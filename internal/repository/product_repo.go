package repository

import (
	"quotepanel/internal/model"
	"quotepanel/internal/storage"
)

// ProductRepository persists the user-created half of the catalog only;
// the built-in list is hardcoded in the catalog service.
type ProductRepository interface {
	All() []model.Product
	FindByID(id string) (model.Product, bool)
	Upsert(p model.Product) error
	Delete(id string) (bool, error)
	Replace(list []model.Product) error
}

type productRepository struct {
	gw *storage.Gateway
}

func NewProductRepository(gw *storage.Gateway) ProductRepository {
	return &productRepository{gw: gw}
}

func (r *productRepository) All() []model.Product {
	list := []model.Product{}
	r.gw.ReadJSON(storage.KeyProductsCustom, &list)
	return list
}

func (r *productRepository) FindByID(id string) (model.Product, bool) {
	for _, p := range r.All() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (r *productRepository) Upsert(p model.Product) error {
	list := r.All()
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			return r.gw.WriteJSON(storage.KeyProductsCustom, list)
		}
	}
	list = append(list, p)
	return r.gw.WriteJSON(storage.KeyProductsCustom, list)
}

func (r *productRepository) Delete(id string) (bool, error) {
	list := r.All()
	out := list[:0]
	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return false, nil
	}
	return true, r.gw.WriteJSON(storage.KeyProductsCustom, out)
}

func (r *productRepository) Replace(list []model.Product) error {
	if list == nil {
		list = []model.Product{}
	}
	return r.gw.WriteJSON(storage.KeyProductsCustom, list)
}
