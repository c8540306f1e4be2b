package repository

import "github.com/seu-usuario/cobrancas-api/internal/domain/entity"

// ClienteRepository define a porta de persistência de Cliente.
// Todas as operações recebem o userID dono e só enxergam as linhas dele.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(userID, id string) (*entity.Cliente, error)
	ListByUser(userID string) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	// Delete retorna domain.ErrConflict se alguma cobrança referencia o cliente.
	Delete(userID, id string) error
}
