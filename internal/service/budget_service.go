package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"quotepanel/internal/model"
	"quotepanel/internal/repository"
	"quotepanel/pkg/pagination"
	"quotepanel/pkg/textutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventBroadcaster pushes change events to connected panels. A nil
// broadcaster disables notifications (tests, one-shot tools).
type EventBroadcaster interface {
	BroadcastEvent(eventType string, data interface{})
}

// --- DTOs ---

// BudgetTotals is the summary box next to the line-item table.
type BudgetTotals struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	Iva             float64 `json:"iva"`
	Shipping        float64 `json:"shipping"`
	Total           float64 `json:"total"`
	FormattedTotal  string  `json:"formattedTotal"` // display form, e.g. "$ 170.400"
}

// UpdateDraftRequest carries the header fields of the in-progress budget.
// Pointer fields distinguish "not sent" from "set to zero value".
type UpdateDraftRequest struct {
	ClientName      *string  `json:"clientName"`
	Date            *string  `json:"date"`
	Notes           *string  `json:"notes"`
	Currency        *string  `json:"currency"`
	PaymentMethod   *string  `json:"paymentMethod"`
	DiscountPercent *float64 `json:"discountPercent"`
	Shipping        *float64 `json:"shipping"`
	DeliveryTime    *string  `json:"deliveryTime"`
	Validity        *string  `json:"validity"`
	Conditions      *string  `json:"conditions"`
}

// BudgetFilter holds the history filters; all criteria are conjunctive.
type BudgetFilter struct {
	Text     string
	ClientID string
	Status   string
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD
	Page     int
	Limit    int
}

// ConditionsPreset is one of the quick templates for the commercial
// conditions block of a quote.
type ConditionsPreset struct {
	DeliveryTime string `json:"deliveryTime"`
	Validity     string `json:"validity"`
	Conditions   string `json:"conditions"`
}

var conditionsPresets = map[string]ConditionsPreset{
	"standard": {
		DeliveryTime: "30 a 45 días hábiles desde la aprobación.",
		Validity:     "15 días corridos desde la emisión.",
		Conditions: "Precios expresados en moneda local. No incluyen IVA salvo aclaración. " +
			"Condiciones de pago: 50% de anticipo y 50% contra entrega. " +
			"Los plazos de entrega pueden variar según disponibilidad.",
	},
	"contado": {
		DeliveryTime: "10 a 20 días hábiles desde la acreditación del pago.",
		Validity:     "7 días corridos desde la emisión.",
		Conditions: "Precios finales por pago contado/transferencia. No incluyen IVA salvo aclaración. " +
			"El trabajo se agenda una vez acreditado el pago total.",
	},
	"medida": {
		DeliveryTime: "Plazo a coordinar según alcance del proyecto.",
		Validity:     "Presupuesto orientativo, sujeto a relevamiento y ajustes finales.",
		Conditions: "El presente presupuesto corresponde a un proyecto a medida. " +
			"Los valores pueden ajustarse según definición final de materiales, medidas y alcance. " +
			"Se requerirá aprobación de planos y detalles antes de iniciar producción.",
	},
}

// --- Interface ---

type BudgetService interface {
	Draft(ctx context.Context) model.Budget
	ResetDraft(ctx context.Context) model.Budget
	AddProduct(ctx context.Context, productID string) (model.Budget, error)
	AddCustomItem(ctx context.Context, name string, qty int, price float64) (model.Budget, error)
	SetQuantity(ctx context.Context, productID string, qty int) model.Budget
	RemoveItem(ctx context.Context, productID string) model.Budget
	UpdateDraft(ctx context.Context, req UpdateDraftRequest) model.Budget
	Totals(ctx context.Context) BudgetTotals
	Save(ctx context.Context) (model.Budget, error)
	Get(ctx context.Context, id string) (model.Budget, error)
	List(ctx context.Context, f BudgetFilter) ([]model.Budget, int, error)
	Duplicate(ctx context.Context, id string) (model.Budget, error)
	SetStatus(ctx context.Context, id, status string) (model.Budget, error)
	Delete(ctx context.Context, id string, confirm bool) error
	TodayCount(ctx context.Context) int
	DocumentNumber(ctx context.Context) string
	ConditionsPreset(ctx context.Context, kind string) (ConditionsPreset, error)
	ApplyConfig(cfg model.Config)
}

type budgetService struct {
	budgetRepo  repository.BudgetRepository
	clientRepo  repository.ClientRepository
	counterRepo repository.CounterRepository
	catalog     CatalogService
	hub         EventBroadcaster

	// In-progress quote. Explicit session state, guarded because gin
	// serves requests concurrently even for a single operator.
	mu    sync.Mutex
	draft model.Budget
	cfg   model.Config
}

func NewBudgetService(
	budgetRepo repository.BudgetRepository,
	clientRepo repository.ClientRepository,
	counterRepo repository.CounterRepository,
	configRepo repository.ConfigRepository,
	catalog CatalogService,
	hub EventBroadcaster,
) BudgetService {
	s := &budgetService{
		budgetRepo:  budgetRepo,
		clientRepo:  clientRepo,
		counterRepo: counterRepo,
		catalog:     catalog,
		hub:         hub,
		cfg:         configRepo.Load(),
	}
	s.draft = s.newDraft()
	return s
}

// --- Draft lifecycle ---

func (s *budgetService) newDraft() model.Budget {
	return model.Budget{
		ID:            "bud_" + uuid.NewString(),
		ClientID:      nil,
		ClientName:    "",
		Date:          todayISO(),
		Shipping:      s.cfg.DefaultShipping,
		Currency:      s.cfg.Currency,
		PaymentMethod: "Transferencia",
		Items:         []model.LineItem{},
		Status:        model.BudgetStatusDraft,
	}
}

func (s *budgetService) Draft(ctx context.Context) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Total = s.totalsLocked().Total
	return copyBudget(s.draft)
}

func (s *budgetService) ResetDraft(ctx context.Context) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.newDraft()
	return copyBudget(s.draft)
}

func (s *budgetService) AddProduct(ctx context.Context, productID string) (model.Budget, error) {
	prod, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return model.Budget{}, fmt.Errorf("producto no encontrado en catálogo: %w", ErrProductNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Items {
		if s.draft.Items[i].ProductID == prod.ID {
			s.draft.Items[i].Quantity++
			return copyBudget(s.draft), nil
		}
	}
	s.draft.Items = append(s.draft.Items, model.LineItem{
		ProductID: prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.Price,
		Quantity:  1,
	})
	return copyBudget(s.draft), nil
}

// AddCustomItem appends an ad-hoc line that exists on no catalog entry.
// It behaves like any other line afterwards (one row, quantity edits).
func (s *budgetService) AddCustomItem(ctx context.Context, name string, qty int, price float64) (model.Budget, error) {
	if name == "" {
		return model.Budget{}, fmt.Errorf("ingresá un nombre para el ítem: %w", ErrValidation)
	}
	if qty < 1 {
		return model.Budget{}, fmt.Errorf("cantidad inválida: %w", ErrValidation)
	}
	if price < 0 {
		return model.Budget{}, fmt.Errorf("precio inválido: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Items = append(s.draft.Items, model.LineItem{
		ProductID: "custom_" + uuid.NewString(),
		Name:      name,
		UnitPrice: price,
		Quantity:  qty,
	})
	return copyBudget(s.draft), nil
}

func (s *budgetService) SetQuantity(ctx context.Context, productID string, qty int) model.Budget {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Items {
		if s.draft.Items[i].ProductID == productID {
			s.draft.Items[i].Quantity = qty
			break
		}
	}
	return copyBudget(s.draft)
}

func (s *budgetService) RemoveItem(ctx context.Context, productID string) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.draft.Items[:0]
	for _, it := range s.draft.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	s.draft.Items = items
	return copyBudget(s.draft)
}

func (s *budgetService) UpdateDraft(ctx context.Context, req UpdateDraftRequest) model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ClientName != nil {
		s.draft.ClientName = *req.ClientName
		s.draft.ClientID = s.resolveClientID(s.draft.ClientName)
	}
	if req.Date != nil && *req.Date != "" {
		s.draft.Date = *req.Date
	}
	if req.Notes != nil {
		s.draft.Notes = *req.Notes
	}
	if req.Currency != nil {
		s.draft.Currency = *req.Currency
	}
	if req.PaymentMethod != nil {
		s.draft.PaymentMethod = *req.PaymentMethod
	}
	if req.DiscountPercent != nil {
		s.draft.DiscountPercent = *req.DiscountPercent
	}
	if req.Shipping != nil {
		s.draft.Shipping = *req.Shipping
	}
	if req.DeliveryTime != nil {
		s.draft.DeliveryTime = *req.DeliveryTime
	}
	if req.Validity != nil {
		s.draft.Validity = *req.Validity
	}
	if req.Conditions != nil {
		s.draft.Conditions = *req.Conditions
	}
	return copyBudget(s.draft)
}

func (s *budgetService) resolveClientID(name string) *string {
	if name == "" {
		return nil
	}
	norm := textutil.Normalize(name)
	for _, c := range s.clientRepo.All() {
		if textutil.Normalize(c.Name) == norm {
			id := c.ID
			return &id
		}
	}
	return nil
}

// --- Totals ---

func (s *budgetService) Totals(ctx context.Context) BudgetTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

func (s *budgetService) totalsLocked() BudgetTotals {
	return ComputeTotals(s.draft.Items, s.draft.DiscountPercent, s.draft.Shipping, s.cfg)
}

// ComputeTotals applies the quote arithmetic: the requested discount is
// capped at the configured maximum, IVA applies to the discounted base,
// shipping is added untaxed.
func ComputeTotals(items []model.LineItem, discountPercent, shipping float64, cfg model.Config) BudgetTotals {
	hundred := decimal.NewFromInt(100)

	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
	}

	effective := discountPercent
	if effective > cfg.MaxDiscount {
		effective = cfg.MaxDiscount
	}
	if effective < 0 {
		effective = 0
	}

	discountAmount := subtotal.Mul(decimal.NewFromFloat(effective)).Div(hundred)
	taxable := subtotal.Sub(discountAmount)
	iva := taxable.Mul(decimal.NewFromFloat(cfg.IvaPercent)).Div(hundred)
	total := taxable.Add(iva).Add(decimal.NewFromFloat(shipping))

	return BudgetTotals{
		Subtotal:        subtotal.InexactFloat64(),
		DiscountAmount:  discountAmount.InexactFloat64(),
		DiscountPercent: effective,
		Iva:             iva.InexactFloat64(),
		Shipping:        shipping,
		Total:           total.InexactFloat64(),
		FormattedTotal:  textutil.FormatMoney(total.InexactFloat64()),
	}
}

// --- Persistence ---

func (s *budgetService) Save(ctx context.Context) (model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.ClientName == "" {
		return model.Budget{}, fmt.Errorf("indicá un cliente para el presupuesto: %w", ErrValidation)
	}

	s.draft.ClientID = s.resolveClientID(s.draft.ClientName)
	s.draft.Total = s.totalsLocked().Total
	if s.draft.Status == "" {
		s.draft.Status = model.BudgetStatusDraft
	}

	saved := copyBudget(s.draft)
	if err := s.budgetRepo.Upsert(saved); err != nil {
		return model.Budget{}, fmt.Errorf("failed to save budget: %w", err)
	}
	if _, err := s.counterRepo.Increment(); err != nil {
		return model.Budget{}, fmt.Errorf("failed to advance document number: %w", err)
	}

	s.draft = s.newDraft()

	if s.hub != nil {
		s.hub.BroadcastEvent("budget.saved", map[string]interface{}{"id": saved.ID})
	}
	return saved, nil
}

func (s *budgetService) Get(ctx context.Context, id string) (model.Budget, error) {
	b, ok := s.budgetRepo.FindByID(id)
	if !ok {
		return model.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

// List returns the filtered history page plus the filtered total. Budgets
// sort newest-first; the free-text filter matches the normalized client
// name, id and the 1-based position in the sorted list.
func (s *budgetService) List(ctx context.Context, f BudgetFilter) ([]model.Budget, int, error) {
	budgets := s.budgetRepo.All()
	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].Date > budgets[j].Date
	})

	text := textutil.Normalize(f.Text)
	filtered := make([]model.Budget, 0, len(budgets))
	for idx, b := range budgets {
		if text != "" {
			base := textutil.Normalize(fmt.Sprintf("%s %s %d", b.ClientName, b.ID, idx+1))
			if !strings.Contains(base, text) {
				continue
			}
		}
		if f.ClientID != "" {
			if b.ClientID == nil || *b.ClientID != f.ClientID {
				continue
			}
		}
		if f.Status != "" && budgetStatusOrDraft(b) != f.Status {
			continue
		}
		// Fixed-width YYYY-MM-DD makes lexicographic range checks valid.
		if f.DateFrom != "" && b.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && b.Date > f.DateTo {
			continue
		}
		filtered = append(filtered, b)
	}

	total := len(filtered)
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		p := pagination.Params{Page: page, Limit: f.Limit, Offset: (page - 1) * f.Limit}
		lo, hi := p.Slice(total)
		filtered = filtered[lo:hi]
	}
	return filtered, total, nil
}

func (s *budgetService) Duplicate(ctx context.Context, id string) (model.Budget, error) {
	original, ok := s.budgetRepo.FindByID(id)
	if !ok {
		return model.Budget{}, ErrBudgetNotFound
	}
	dup := copyBudget(original)
	dup.ID = "bud_" + uuid.NewString()
	dup.Status = model.BudgetStatusDraft
	dup.Date = todayISO()
	if err := s.budgetRepo.Upsert(dup); err != nil {
		return model.Budget{}, fmt.Errorf("failed to duplicate budget: %w", err)
	}
	return dup, nil
}

func (s *budgetService) SetStatus(ctx context.Context, id, status string) (model.Budget, error) {
	if !model.ValidBudgetStatus(status) {
		return model.Budget{}, fmt.Errorf("estado desconocido %q: %w", status, ErrValidation)
	}
	b, ok := s.budgetRepo.FindByID(id)
	if !ok {
		return model.Budget{}, ErrBudgetNotFound
	}
	b.Status = status
	if err := s.budgetRepo.Upsert(b); err != nil {
		return model.Budget{}, fmt.Errorf("failed to update status: %w", err)
	}
	return b, nil
}

func (s *budgetService) Delete(ctx context.Context, id string, confirm bool) error {
	if !confirm {
		return fmt.Errorf("¿seguro que querés eliminar este presupuesto?: %w", ErrConfirmationRequired)
	}
	found, err := s.budgetRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if !found {
		return ErrBudgetNotFound
	}
	// Orders already derived from this budget stay untouched.
	return nil
}

// --- Dashboard helpers ---

func (s *budgetService) TodayCount(ctx context.Context) int {
	today := todayISO()
	n := 0
	for _, b := range s.budgetRepo.All() {
		if b.Date == today {
			n++
		}
	}
	return n
}

// DocumentNumber renders the display number of the next quote, zero
// padded the way the printed header shows it.
func (s *budgetService) DocumentNumber(ctx context.Context) string {
	return fmt.Sprintf("%04d", s.counterRepo.Current())
}

func (s *budgetService) ConditionsPreset(ctx context.Context, kind string) (ConditionsPreset, error) {
	p, ok := conditionsPresets[kind]
	if !ok {
		return ConditionsPreset{}, fmt.Errorf("plantilla desconocida %q: %w", kind, ErrValidation)
	}
	return p, nil
}

// ApplyConfig is the configuration broadcast target: the new defaults
// take effect on the in-progress draft immediately.
func (s *budgetService) ApplyConfig(cfg model.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.draft.Shipping = cfg.DefaultShipping
	s.draft.Currency = cfg.Currency
}

// --- helpers ---

func budgetStatusOrDraft(b model.Budget) string {
	if b.Status == "" {
		return model.BudgetStatusDraft
	}
	return b.Status
}

func copyBudget(b model.Budget) model.Budget {
	out := b
	out.Items = make([]model.LineItem, len(b.Items))
	copy(out.Items, b.Items)
	if b.ClientID != nil {
		id := *b.ClientID
		out.ClientID = &id
	}
	return out
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}
