package model

// OrderStatus enum constants. Always a pure function of received vs total
// items; stored only as a convenience and re-derived on every mutation.
const (
	OrderStatusEmpty    = "vacio"
	OrderStatusPending  = "pendiente"
	OrderStatusPartial  = "parcial"
	OrderStatusComplete = "completo"
)

// OrderItem is a fulfillment line derived from a budget line. It carries a
// generated stable ID even though receipt toggling still matches by name,
// so the name-based contract can be retired without a data migration.
type OrderItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
	Received  bool    `json:"received"`
}

// Order is a fulfillment record derived from a budget snapshot.
type Order struct {
	ID           string      `json:"id"`
	Number       *string     `json:"number"` // display number, nil when unknown
	ClientName   string      `json:"clientName"`
	CreatedAt    string      `json:"createdAt"`  // YYYY-MM-DD
	BudgetDate   string      `json:"budgetDate"` // YYYY-MM-DD
	PaymentDate  string      `json:"paymentDate"`
	DeliveryDate *string     `json:"deliveryDate"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
}

// DeriveOrderStatus computes the status from item receipt state:
// empty, pending (none received), complete (all received), else partial.
func DeriveOrderStatus(o Order) string {
	if len(o.Items) == 0 {
		return OrderStatusEmpty
	}
	received := 0
	for _, it := range o.Items {
		if it.Received {
			received++
		}
	}
	switch {
	case received == 0:
		return OrderStatusPending
	case received >= len(o.Items):
		return OrderStatusComplete
	default:
		return OrderStatusPartial
	}
}
