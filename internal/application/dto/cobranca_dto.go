package dto

import "time"

// CreateCobrancaRequest body para POST /api/cobrancas.
// DataVencimento no formato yyyy-MM-dd (só data, sem hora).
type CreateCobrancaRequest struct {
	ClienteID      string `json:"cliente_id"`
	Nome           string `json:"nome,omitempty"`
	DataVencimento string `json:"data_vencimento"`
}

// SetAtivaRequest body para PATCH /api/cobrancas/:id/ativa.
type SetAtivaRequest struct {
	Ativa bool `json:"ativa"`
}

// CobrancaResponse cobrança com os dados do cliente em respostas.
type CobrancaResponse struct {
	ID                  string     `json:"id"`
	ClienteID           string     `json:"cliente_id"`
	Nome                string     `json:"nome,omitempty"`
	DataVencimento      string     `json:"data_vencimento"`
	Status              string     `json:"status"`
	Ativa               bool       `json:"ativa"`
	UltimoDisparo       *time.Time `json:"ultimo_disparo,omitempty"`
	StatusUltimoDisparo string     `json:"status_ultimo_disparo,omitempty"`
	ClienteNome         string     `json:"cliente_nome,omitempty"`
	ClienteTelefone     string     `json:"cliente_telefone,omitempty"`
}
