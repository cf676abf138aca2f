package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"
	"quotepanel/pkg/textutil"

	"github.com/google/uuid"
)

// baseProducts is the built-in half of the catalog. It ships with the
// binary and is never persisted; only user-created products hit storage.
var baseProducts = []model.Product{
	{
		ID:       "dubai-negro",
		Name:     "Estación DUBAI negra",
		Code:     "DUBAI-NEGRO",
		Category: "Estaciones",
		Price:    350000,
		Poster:   "assets/product_images/dubai_negro.webp",
		Video:    "assets/videos/dubai_negro.mp4",
		Hot:      true,
		Origin:   model.ProductOriginBase,
	},
	{
		ID:       "dubai-blanco",
		Name:     "Estación DUBAI blanca",
		Code:     "DUBAI-BLANCO",
		Category: "Estaciones",
		Price:    360000,
		Poster:   "assets/product_images/dubai_negro.webp",
		Video:    "assets/videos/dubai_negro.mp4",
		Origin:   model.ProductOriginBase,
	},
	{
		ID:       "zen-ergo",
		Name:     "Silla Zen Ergo",
		Code:     "ZEN-ERGO",
		Category: "Sillas",
		Price:    120000,
		Poster:   "assets/product_images/zen_ergo_negro.webp",
		Video:    "assets/videos/zen_ergo_negro.mp4",
		Hot:      true,
		Origin:   model.ProductOriginBase,
	},
	{
		ID:       "silla-nordica",
		Name:     "Silla Nórdica madera",
		Code:     "NORDICA-MAD",
		Category: "Sillas",
		Price:    110000,
		Poster:   "assets/product_images/zen_ergo_negro.webp",
		Video:    "assets/videos/zen_ergo_negro.mp4",
		Origin:   model.ProductOriginBase,
	},
	{
		ID:       "armario-bajo",
		Name:     "Armario bajo puerta batiente",
		Code:     "ARM-BAJO",
		Category: "Armarios",
		Price:    95000,
		Poster:   "assets/product_images/armario_bajo_puerta_batiente.webp",
		Video:    "assets/videos/ram.mp4",
		Origin:   model.ProductOriginBase,
	},
	{
		ID:       "biblioteca-baja",
		Name:     "Biblioteca baja 2 puertas",
		Code:     "BIB-BAJA",
		Category: "Armarios",
		Price:    98000,
		Poster:   "assets/product_images/armario_bajo_puerta_batiente.webp",
		Video:    "assets/videos/ram.mp4",
		Origin:   model.ProductOriginBase,
	},
}

// ProductFilter narrows the catalog view. Text matches the normalized
// name, code and category; Category is an exact match; Sort accepts
// priceAsc or priceDesc and otherwise keeps catalog order.
type ProductFilter struct {
	Text     string
	Category string
	Sort     string
}

// SaveProductRequest creates or updates a user product. An empty ID
// means create.
type SaveProductRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Poster   string  `json:"poster"`
	Video    string  `json:"video"`
	Hot      bool    `json:"hot"`
}

type CatalogService interface {
	GetAll(ctx context.Context) []model.Product
	GetByID(ctx context.Context, id string) (model.Product, error)
	Filter(ctx context.Context, f ProductFilter) []model.Product
	Save(ctx context.Context, req SaveProductRequest) (model.Product, error)
	Delete(ctx context.Context, id string, confirm bool) error
	Categories(ctx context.Context) []string
}

type catalogService struct {
	productRepo repository.ProductRepository
	hub         EventBroadcaster
}

func NewCatalogService(productRepo repository.ProductRepository, hub EventBroadcaster) CatalogService {
	return &catalogService{productRepo: productRepo, hub: hub}
}

// GetAll lists built-in entries first, user creations after, mirroring
// the insertion order of each half.
func (s *catalogService) GetAll(ctx context.Context) []model.Product {
	custom := s.productRepo.All()
	out := make([]model.Product, 0, len(baseProducts)+len(custom))
	out = append(out, baseProducts...)
	out = append(out, custom...)
	return out
}

func (s *catalogService) GetByID(ctx context.Context, id string) (model.Product, error) {
	for _, p := range s.GetAll(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrProductNotFound
}

func (s *catalogService) Filter(ctx context.Context, f ProductFilter) []model.Product {
	all := s.GetAll(ctx)

	filtered := make([]model.Product, 0, len(all))
	text := textutil.Normalize(f.Text)
	for _, p := range all {
		if text != "" {
			base := textutil.Normalize(fmt.Sprintf("%s %s %s", p.Name, p.Code, p.Category))
			if !strings.Contains(base, text) {
				continue
			}
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case "priceAsc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "priceDesc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered
}

func (s *catalogService) Save(ctx context.Context, req SaveProductRequest) (model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Product{}, fmt.Errorf("el nombre del producto es obligatorio: %w", ErrValidation)
	}
	if req.Price <= 0 {
		return model.Product{}, fmt.Errorf("indicá un precio válido: %w", ErrValidation)
	}

	if req.ID != "" && isBaseProduct(req.ID) {
		return model.Product{}, fmt.Errorf("los productos del catálogo base solo se pueden ver, no editar: %w", ErrBuiltInImmutable)
	}

	category := req.Category
	if category == "" {
		category = "Estaciones"
	}

	p := model.Product{
		ID:       req.ID,
		Name:     name,
		Code:     strings.TrimSpace(req.Code),
		Category: category,
		Price:    req.Price,
		Poster:   strings.TrimSpace(req.Poster),
		Video:    strings.TrimSpace(req.Video),
		Hot:      req.Hot,
		Origin:   model.ProductOriginUser,
	}
	if p.ID == "" {
		p.ID = "custom-prod_" + uuid.NewString()
	}

	if err := s.productRepo.Upsert(p); err != nil {
		return model.Product{}, fmt.Errorf("failed to save product: %w", err)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("product.saved", map[string]interface{}{"id": p.ID})
	}
	return p, nil
}

// Delete removes a user product. Quotes already saved keep their line
// items; only the catalog changes.
func (s *catalogService) Delete(ctx context.Context, id string, confirm bool) error {
	if isBaseProduct(id) {
		return fmt.Errorf("solo se pueden eliminar productos creados por vos: %w", ErrBuiltInImmutable)
	}
	if !confirm {
		return fmt.Errorf("¿seguro que querés eliminar este producto? Los presupuestos ya guardados no se modifican: %w", ErrConfirmationRequired)
	}
	found, err := s.productRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return ErrProductNotFound
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("product.deleted", map[string]interface{}{"id": id})
	}
	return nil
}

// Categories returns the distinct category names across the whole
// catalog, built-in order first.
func (s *catalogService) Categories(ctx context.Context) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range s.GetAll(ctx) {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func isBaseProduct(id string) bool {
	for _, p := range baseProducts {
		if p.ID == id {
			return true
		}
	}
	return false
}
