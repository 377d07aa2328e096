package dto

import "github.com/SscSPs/voucher_engine/internal/core/domain"

// ImportResponse reports the outcome of a bulk import. Queued imports carry
// only the task id; their results are logged by the worker.
type ImportResponse struct {
	Results []domain.ImportResult `json:"results,omitempty"`
	Queued  bool                  `json:"queued"`
	TaskID  string                `json:"taskID,omitempty"`
	Saved   int                   `json:"saved"`
	Failed  int                   `json:"failed"`
}

// ToImportResponse summarises synchronous import results.
func ToImportResponse(results []domain.ImportResult) ImportResponse {
	resp := ImportResponse{Results: results}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Saved++
		}
	}
	return resp
}
