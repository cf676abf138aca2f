package model

// Config holds the tenant-wide settings. Stored overrides are merged over
// DefaultConfig on every load; a partial or corrupt stored record simply
// keeps the defaults for the missing fields.
type Config struct {
	IvaPercent      float64 `json:"ivaPercent"`
	MaxDiscount     float64 `json:"maxDiscount"`
	DefaultShipping float64 `json:"defaultShipping"`
	Currency        string  `json:"currency"`
	CompanyName     string  `json:"companyName"`
	Cuit            string  `json:"cuit"`
	Bank            string  `json:"bank"`
	Cbu             string  `json:"cbu"`
}

// DefaultConfig returns the hard-coded tenant defaults.
func DefaultConfig() Config {
	return Config{
		IvaPercent:      21,
		MaxDiscount:     30,
		DefaultShipping: 0,
		Currency:        "ARS",
		CompanyName:     "Farber Muebles SRL",
		Cuit:            "30-00000000-0",
		Bank:            "Banco Galicia",
		Cbu:             "0000000000000000000000",
	}
}
