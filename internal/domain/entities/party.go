package entities

// SellerTierRepresentante marks sellers priced with per-category discounts.
const SellerTierRepresentante = "representante"

// Seller (vendedor). CommissionPercent is nil when never configured.
type Seller struct {
	ID                string   `json:"id"`
	Name              string   `json:"nome"`
	Email             string   `json:"email,omitempty"`
	Tier              string   `json:"tipo"`
	CommissionPercent *float64 `json:"comissao_percentual,omitempty"`
}

// CommissionPercentOrDefault returns the configured percentage or the 5% default.
func (s Seller) CommissionPercentOrDefault() float64 {
	if s.CommissionPercent == nil {
		return DefaultCommissionPercent
	}
	return *s.CommissionPercent
}

// IsRepresentante reports whether the seller is priced per category.
func (s Seller) IsRepresentante() bool {
	return s.Tier == SellerTierRepresentante
}

// CategoryDiscount is a representante discount, keyed by seller+category.
type CategoryDiscount struct {
	SellerID string  `json:"vendedor_id"`
	Category string  `json:"categoria"`
	Percent  float64 `json:"desconto_percentual"`
}

// Client (EbdCliente) is the church/organization being sold to and onboarded.
type Client struct {
	ID         string `json:"id"`
	Name       string `json:"nome"`
	Document   string `json:"documento,omitempty"`
	CEP        string `json:"cep,omitempty"`
	Phone      string `json:"telefone,omitempty"`
	Email      string `json:"email,omitempty"`
	CanInvoice bool   `json:"pode_faturar"`
}
