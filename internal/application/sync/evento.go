package sync

import (
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
)

// Op operação que originou a notificação de mudança.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Evento notificação de linha alterada na tabela cobrancas, tal como emitida
// pelo trigger (pg_notify no canal cobrancas_changed).
type Evento struct {
	Op  Op     `json:"op"`
	ID  string `json:"id"`
	Row *Linha `json:"row,omitempty"`
}

// Linha colunas de cobrancas presentes no payload da notificação.
// Os campos do cliente (nome, telefone) não viajam no payload: o merge
// raso preserva o que a visão já tem.
type Linha struct {
	ID                  string     `json:"id"`
	ClienteID           string     `json:"cliente_id"`
	Nome                *string    `json:"nome"`
	DataVencimento      string     `json:"data_vencimento"`
	Status              string     `json:"status"`
	Ativa               bool       `json:"ativa"`
	UltimoDisparo       *time.Time `json:"ultimo_disparo"`
	StatusUltimoDisparo *string    `json:"status_ultimo_disparo"`
}

// Mudanca atualização já reconciliada, entregue aos assinantes.
// Cobranca é uma cópia; nil quando Op é DELETE.
type Mudanca struct {
	Op       Op
	ID       string
	Cobranca *entity.CobrancaComCliente
}
