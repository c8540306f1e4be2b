package entity

import "time"

// StatusDisparo resultado do último disparo de uma cobrança.
type StatusDisparo string

const (
	StatusEnviado  StatusDisparo = "sent"
	StatusErro     StatusDisparo = "error"
	StatusInvalido StatusDisparo = "invalid"
)

// StatusAberta é o único status de ciclo de vida persistido: cobrança paga
// é removida da tabela, não marcada.
const StatusAberta = "aberta"

// Cobranca representa uma cobrança agendada para um cliente.
// DataVencimento é uma data de calendário (yyyy-MM-dd), sem hora nem fuso:
// trafega como string do banco até a resposta HTTP.
type Cobranca struct {
	ID                  string
	ClienteID           string
	Nome                string // opcional; vazio = sem nome
	DataVencimento      string // yyyy-MM-dd
	Status              string
	Ativa               bool
	UltimoDisparo       *time.Time
	StatusUltimoDisparo *StatusDisparo
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CobrancaComCliente junta a cobrança com os dados do cliente dono.
type CobrancaComCliente struct {
	Cobranca
	ClienteNome     string
	ClienteTelefone string
	ClienteAtivo    bool
	UserID          string
}
