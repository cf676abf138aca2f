package service

import "errors"

// Error taxonomy shared by every service. Handlers translate these with
// errors.Is: validation -> 400, not-found -> 404, permission -> 403,
// missing confirmation -> 409. Storage decode problems never reach here —
// the gateway recovers them with defaults.
var (
	ErrValidation           = errors.New("validation failed")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderItemNotFound    = errors.New("order item not found")
	ErrBuiltInImmutable     = errors.New("built-in catalog entries cannot be modified")
	ErrConfirmationRequired = errors.New("confirmation required")
)
