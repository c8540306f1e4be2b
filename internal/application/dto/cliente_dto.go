package dto

import "time"

// SaveClienteRequest body para POST /api/clientes e PUT /api/clientes/:id.
type SaveClienteRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Ativo    *bool  `json:"ativo,omitempty"` // ausente = true na criação
}

// ClienteResponse cliente em respostas.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Telefone  string    `json:"telefone"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
