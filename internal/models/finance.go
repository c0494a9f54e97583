package models

import "time"

const (
	LedgerTypeIncome  = "entrada"
	LedgerTypeExpense = "saida"
)

// LedgerEntry is a manually recorded financial line item. Entries are
// create-only; there is no update or delete surface.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	Type        string    `json:"tipo"`
	Title       string    `json:"titulo"`
	Value       float64   `json:"valor"`
	Description string    `json:"descricao,omitempty"`
	PostedAt    time.Time `json:"data_lancamento"`
}

type LedgerEntryRequest struct {
	Type        string  `json:"tipo" binding:"required"`
	Title       string  `json:"titulo" binding:"required"`
	Value       float64 `json:"valor" binding:"required"`
	Description string  `json:"descricao"`
}

// FinanceEntry is one row of the financial report: either a manual ledger
// entry or a completed order surfaced as a synthetic income line. The report
// is recomputed on every read, never materialized.
type FinanceEntry struct {
	ID    int64   `json:"id"`
	Type  string  `json:"tipo"`
	Title string  `json:"titulo"`
	Value float64 `json:"valor"`
	Date  string  `json:"data"`
}
