package repository

import (
	"quotepanel/internal/model"
	"quotepanel/internal/storage"
)

type ClientRepository interface {
	All() []model.Client
	FindByID(id string) (model.Client, bool)
	Upsert(c model.Client) error
	Delete(id string) (bool, error)
	Replace(list []model.Client) error
}

type clientRepository struct {
	gw *storage.Gateway
}

func NewClientRepository(gw *storage.Gateway) ClientRepository {
	return &clientRepository{gw: gw}
}

func (r *clientRepository) All() []model.Client {
	list := []model.Client{}
	r.gw.ReadJSON(storage.KeyClients, &list)
	return list
}

func (r *clientRepository) FindByID(id string) (model.Client, bool) {
	for _, c := range r.All() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Client{}, false
}

func (r *clientRepository) Upsert(c model.Client) error {
	list := r.All()
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = c
			return r.gw.WriteJSON(storage.KeyClients, list)
		}
	}
	list = append(list, c)
	return r.gw.WriteJSON(storage.KeyClients, list)
}

func (r *clientRepository) Delete(id string) (bool, error) {
	list := r.All()
	out := list[:0]
	found := false
	for _, c := range list {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return false, nil
	}
	return true, r.gw.WriteJSON(storage.KeyClients, out)
}

func (r *clientRepository) Replace(list []model.Client) error {
	if list == nil {
		list = []model.Client{}
	}
	return r.gw.WriteJSON(storage.KeyClients, list)
}
