package model

// BudgetStatus enum constants. The persisted values stay in Spanish so
// backups produced by the original panel import without translation.
const (
	BudgetStatusDraft    = "Borrador"
	BudgetStatusInReview = "En revisión"
	BudgetStatusApproved = "Aprobado"
	BudgetStatusLost     = "Perdido"
)

// BudgetStatuses lists every valid budget status.
var BudgetStatuses = []string{
	BudgetStatusDraft,
	BudgetStatusInReview,
	BudgetStatusApproved,
	BudgetStatusLost,
}

// ValidBudgetStatus reports whether s is one of the four defined statuses.
func ValidBudgetStatus(s string) bool {
	for _, st := range BudgetStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// LineItem is one product entry within a budget. Name and unit price are
// captured at the time of addition and never re-fetched from the catalog,
// so later catalog price changes do not affect saved budgets.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"` // always >= 1
}

// Budget is a quote document. Total is a cache: it is recomputed from
// items + discount + shipping + tax immediately before every save and
// never hand-edited.
type Budget struct {
	ID              string     `json:"id"`
	ClientID        *string    `json:"clientId"` // nil when the client name did not resolve
	ClientName      string     `json:"clientName"`
	Date            string     `json:"date"` // YYYY-MM-DD
	DiscountPercent float64    `json:"discountPercent"`
	Shipping        float64    `json:"shipping"`
	Currency        string     `json:"currency"`
	PaymentMethod   string     `json:"paymentMethod"`
	Notes           string     `json:"notes"`
	Items           []LineItem `json:"items"`
	Status          string     `json:"status"`
	Total           float64    `json:"total"`
	DeliveryTime    string     `json:"deliveryTime,omitempty"`
	Validity        string     `json:"validity,omitempty"`
	Conditions      string     `json:"conditions,omitempty"`
}
