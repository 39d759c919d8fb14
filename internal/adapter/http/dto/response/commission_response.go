package response

import "ebd_gestao/internal/domain/entities"

type CommissionBatchResponse struct {
	Approved int                              `json:"approved"`
	Skipped  int                              `json:"skipped"`
	Failed   int                              `json:"failed"`
	Results  []entities.CommissionBatchResult `json:"results"`
}

func FromCommissionBatch(results []entities.CommissionBatchResult) CommissionBatchResponse {
	res := CommissionBatchResponse{Results: results}
	if res.Results == nil {
		res.Results = []entities.CommissionBatchResult{}
	}
	for _, r := range results {
		switch {
		case r.Parcela != nil:
			res.Approved++
		case r.Skipped:
			res.Skipped++
		default:
			res.Failed++
		}
	}
	return res
}
