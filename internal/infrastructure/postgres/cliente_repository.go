package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação de ClienteRepository (usável com pool ou tx).
// Toda consulta filtra por user_id: uma linha de outro dono é invisível,
// mesmo com o id correto.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste um novo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, user_id, nome, telefone, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.UserID, cliente.Nome, cliente.Telefone, cliente.Ativo,
		cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID busca um cliente do dono. Devolve nil se não existir ou for de outro dono.
func (r *ClienteRepo) GetByID(userID, id string) (*entity.Cliente, error) {
	query := `
		SELECT id, user_id, nome, telefone, ativo, created_at, updated_at
		FROM clientes WHERE id = $1 AND user_id = $2`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Nome, &c.Telefone, &c.Ativo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// ListByUser lista os clientes do dono ordenados por nome.
func (r *ClienteRepo) ListByUser(userID string) ([]*entity.Cliente, error) {
	query := `
		SELECT id, user_id, nome, telefone, ativo, created_at, updated_at
		FROM clientes WHERE user_id = $1 ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.UserID, &c.Nome, &c.Telefone, &c.Ativo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update atualiza nome, telefone e ativo. ErrNotFound se a linha não for do dono.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nome = $3, telefone = $4, ativo = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.UserID, cliente.Nome, cliente.Telefone, cliente.Ativo, cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete apaga um cliente do dono. ErrConflict se ainda houver cobranças
// referenciando o cliente (o banco rejeita via FK RESTRICT).
func (r *ClienteRepo) Delete(userID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM clientes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
