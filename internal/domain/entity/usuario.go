package entity

import "time"

// Usuario conta que autentica na API e é dona de clientes e cobranças.
type Usuario struct {
	ID        string
	Email     string
	SenhaHash string
	Nome      string
	CreatedAt time.Time
}
