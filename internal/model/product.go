package model

// ProductOrigin enum constants
const (
	ProductOriginBase = "base" // built-in catalog entry, immutable
	ProductOriginUser = "user" // created through the panel, editable
)

// Product is a catalog entry. Only user-created entries may be edited or
// removed; the built-in list is fixed.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Category string  `json:"category"`
	Price    float64 `json:"price"` // non-negative
	Poster   string  `json:"poster,omitempty"`
	Video    string  `json:"video,omitempty"`
	Hot      bool    `json:"hot"`
	Origin   string  `json:"origin"`
}
