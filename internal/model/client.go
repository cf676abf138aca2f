package model

// Client is a contact record. IDs are immutable once created; deleting a
// client never cascades into budgets — referencing budgets keep the
// denormalized name and only lose the link.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // required, non-empty
	Contact   string `json:"contact,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"` // RFC3339
}
