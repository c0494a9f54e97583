package models

// PriceItem is a sellable line item in the price catalog. The availability
// flag alone decides whether the item shows up in the public listing.
type PriceItem struct {
	ID          int64   `json:"id"`
	Key         string  `json:"item_chave"`
	Description string  `json:"descricao"`
	Category    string  `json:"categoria"`
	UnitPrice   float64 `json:"valor"`
	Available   bool    `json:"disponivel"`
}

type PriceItemRequest struct {
	Description string  `json:"descricao" binding:"required"`
	Category    string  `json:"categoria" binding:"required"`
	UnitPrice   float64 `json:"valor"`
}

// PriceItemToggleRequest sets availability to an absolute value, so repeating
// the same call is a no-op.
type PriceItemToggleRequest struct {
	Available *bool `json:"disponivel" binding:"required"`
}
