package storage

import (
	"encoding/json"
	"log"
	"reflect"
)

// Prefix applied to every persisted key. Matches the namespace the
// original panel used, so restored key dumps stay compatible.
const namespacePrefix = "farberPro_"

// Persisted record keys. All components go through the Gateway with these
// constants; no other package spells out a storage key.
const (
	KeyBudgets        = "budgets"
	KeyClients        = "clients"
	KeyProductsCustom = "productsCustom"
	KeyOrders         = "orders"
	KeyConfig         = "config"
	KeyLastBudgetNo   = "lastBudgetNumber"
)

// Gateway is the single entry point for persisted JSON records. Reads that
// hit a missing or undecodable record recover silently: the caller's
// pre-populated default value is left untouched and no error is surfaced.
type Gateway struct {
	store Store
}

func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// ReadJSON decodes the record under key into out, which must be a non-nil
// pointer holding the documented default value. Decoding is all-or-nothing:
// a partially matching record merges over the default field by field, but a
// missing key or any decode failure leaves out exactly as it arrived and
// ReadJSON reports false. json.Unmarshal alone cannot give that guarantee —
// it mutates the target up to the point of a type error — so the decode runs
// against a scratch copy of the default and is copied back only on success.
func (g *Gateway) ReadJSON(key string, out any) bool {
	raw, err := g.store.Get(namespacePrefix + key)
	if err != nil {
		return false
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		log.Printf("storage: ReadJSON target for %q is not a pointer", key)
		return false
	}

	tmp := reflect.New(rv.Elem().Type())
	tmp.Elem().Set(rv.Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		log.Printf("storage: corrupt record %q, using defaults: %v", key, err)
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

// WriteJSON encodes v and stores it under the namespaced key.
func (g *Gateway) WriteJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return g.store.Set(namespacePrefix+key, raw)
}

func (g *Gateway) Close() error { return g.store.Close() }
