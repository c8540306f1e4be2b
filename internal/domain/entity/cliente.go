package entity

import "time"

// Cliente representa um cliente do usuário (destinatário das cobranças).
// UserID é o dono da linha: toda consulta filtra por ele.
type Cliente struct {
	ID        string
	UserID    string
	Nome      string
	Telefone  string
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
