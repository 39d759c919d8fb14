package entities

import (
	"fmt"
	"time"
)

const (
	DefaultCommissionPercent = 5.0

	CommissionOriginOnline  = "online"
	CommissionOriginBalcao  = "balcao"
	ParcelaStatusAguardando = "aguardando"
	ParcelaStatusPaga       = "paga"
	CommissionReleased      = "liberada"
	CommissionDeferred      = "pendente"
)

// CommissionParcela is a receivable installment owed to a seller.
//
// Storage model (DynamoDB):
//   - PK: id (ParcelaID(order_id, numero_parcela))
//   - GSI vendedor_id-index: vendedor_id / data_vencimento
type CommissionParcela struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"pedido_id"`
	SellerID          string    `json:"vendedor_id"`
	ClientID          string    `json:"cliente_id"`
	Origin            string    `json:"origem"`
	NumeroParcela     int       `json:"numero_parcela"`
	TotalParcelas     int       `json:"total_parcelas"`
	Value             float64   `json:"valor"`
	CommissionPercent float64   `json:"comissao_percentual"`
	CommissionValue   float64   `json:"valor_comissao"`
	DueDate           time.Time `json:"data_vencimento"`
	Status            string    `json:"status"`
	CommissionStatus  string    `json:"comissao_status"`
	InvoiceURL        string    `json:"nota_fiscal_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ParcelaID derives the parcela key from its order so the store can reject a
// second parcela for the same order.
func ParcelaID(orderID string, numero int) string {
	return fmt.Sprintf("%s#%d", orderID, numero)
}

// CommissionBatchResult reports the outcome of one order in a batch approval.
type CommissionBatchResult struct {
	OrderID string             `json:"order_id"`
	Parcela *CommissionParcela `json:"parcela,omitempty"`
	Skipped bool               `json:"skipped,omitempty"`
	Error   string             `json:"error,omitempty"`
}
