package models

import (
	"time"

	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCompleted OrderStatus = "completed"
)

// Order is a customer rental request ("orcamento") and its lifecycle state.
// Status only moves forward: pending -> approved -> completed.
type Order struct {
	bun.BaseModel `bun:"table:orcamentos"`

	ID            int64       `json:"id" bun:"id,pk,autoincrement"`
	CustomerName  string      `json:"nome" bun:"nome"`
	Phone         string      `json:"whatsapp" bun:"whatsapp"`
	Address       string      `json:"endereco" bun:"endereco"`
	ChildCount    int         `json:"qtd_criancas" bun:"qtd_criancas"`
	AgeRange      string      `json:"faixa_etaria" bun:"faixa_etaria"`
	TentModel     string      `json:"modelo_barraca" bun:"modelo_barraca"`
	TentCount     int         `json:"qtd_barracas" bun:"qtd_barracas"`
	Colors        string      `json:"cores" bun:"cores"`
	Theme         string      `json:"tema" bun:"tema"`
	StandardItems []string    `json:"itens_padrao" bun:"itens_padrao,array"`
	ExtraItems    string      `json:"itens_adicionais" bun:"itens_adicionais"`
	EventDate     string      `json:"data_festa" bun:"data_festa"`
	EventTime     string      `json:"horario" bun:"horario"`
	Dietary       []string    `json:"alimentacao" bun:"alimentacao,array"`
	Allergies     string      `json:"alergias" bun:"alergias"`
	Status        OrderStatus `json:"status" bun:"status"`
	ReviewToken   string      `json:"token_avaliacao,omitempty" bun:"token_avaliacao"`
	FinalValue    float64     `json:"valor_final" bun:"valor_final"`
	CreatedAt     time.Time   `json:"data_pedido" bun:"data_pedido"`
}

// OrderRequest is the public quote-submission payload.
type OrderRequest struct {
	CustomerName  string   `json:"nome" binding:"required"`
	Phone         string   `json:"whatsapp" binding:"required"`
	Address       string   `json:"endereco"`
	ChildCount    int      `json:"qtd_criancas"`
	AgeRange      string   `json:"faixa_etaria"`
	TentModel     string   `json:"modelo_barraca"`
	TentCount     int      `json:"qtd_barracas"`
	Colors        string   `json:"cores"`
	Theme         string   `json:"tema"`
	StandardItems []string `json:"itens_padrao"`
	ExtraItems    string   `json:"itens_adicionais"`
	EventDate     string   `json:"data_festa" binding:"required"`
	EventTime     string   `json:"horario"`
	Dietary       []string `json:"alimentacao"`
	Allergies     string   `json:"alergias"`
}

// AgendaEntry is the calendar projection of an approved order. Field names
// follow the admin panel's calendar widget (title/start).
type AgendaEntry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	Phone     string `json:"whatsapp"`
	Address   string `json:"endereco"`
	EventTime string `json:"horario"`
	TentModel string `json:"modelo_barraca"`
	TentCount int    `json:"qtd_barracas"`
}

// OrderEvent is published to Kafka on lifecycle transitions.
type OrderEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	OrderID   int64     `json:"order_id"`
	Order     *Order    `json:"order,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
