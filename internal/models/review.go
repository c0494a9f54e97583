package models

import "time"

// Review is customer feedback tied to a token-authorized order. The customer
// name is always copied from the order, never taken from the request.
type Review struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"id_orcamento"`
	CustomerName string    `json:"cliente_nome"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comentario"`
	PhotoURLs    []string  `json:"fotos_urls"`
	Visible      bool      `json:"visivel"`
	CreatedAt    time.Time `json:"data_avaliacao"`
}

type ReviewRequest struct {
	Token   string   `json:"token" binding:"required"`
	Rating  int      `json:"rating" binding:"required"`
	Comment string   `json:"comentario"`
	Photos  []string `json:"fotos"`
}
