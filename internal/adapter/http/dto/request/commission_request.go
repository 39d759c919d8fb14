package request

type CommissionBatchRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
}
