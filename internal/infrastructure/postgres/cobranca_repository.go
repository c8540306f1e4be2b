package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/domain/repository"
)

var _ repository.CobrancaRepository = (*CobrancaRepo)(nil)

// CobrancaRepo implementação de CobrancaRepository (usável com pool ou tx).
// data_vencimento é coluna DATE: lida sempre como ::text (yyyy-MM-dd) para
// nunca passar por time.Time e sofrer deslocamento de fuso.
type CobrancaRepo struct {
	q Querier
}

// NewCobrancaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCobrancaRepository(q Querier) *CobrancaRepo {
	return &CobrancaRepo{q: q}
}

const cobrancaComClienteCols = `
	c.id, c.cliente_id, c.nome, c.data_vencimento::text, c.status, c.ativa,
	c.ultimo_disparo, c.status_ultimo_disparo, c.created_at, c.updated_at,
	cl.nome, cl.telefone, cl.ativo, cl.user_id`

func scanCobrancaComCliente(row pgx.Row) (*entity.CobrancaComCliente, error) {
	var cc entity.CobrancaComCliente
	var nome, statusDisparo *string
	err := row.Scan(
		&cc.ID, &cc.ClienteID, &nome, &cc.DataVencimento, &cc.Status, &cc.Ativa,
		&cc.UltimoDisparo, &statusDisparo, &cc.CreatedAt, &cc.UpdatedAt,
		&cc.ClienteNome, &cc.ClienteTelefone, &cc.ClienteAtivo, &cc.UserID,
	)
	if err != nil {
		return nil, err
	}
	if nome != nil {
		cc.Nome = *nome
	}
	if statusDisparo != nil {
		s := entity.StatusDisparo(*statusDisparo)
		cc.StatusUltimoDisparo = &s
	}
	return &cc, nil
}

// Create persiste uma nova cobrança.
func (r *CobrancaRepo) Create(cobranca *entity.Cobranca) error {
	if cobranca.ID == "" {
		cobranca.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cobrancas (id, cliente_id, nome, data_vencimento, status, ativa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		cobranca.ID, cobranca.ClienteID, nullIfEmpty(cobranca.Nome), cobranca.DataVencimento,
		cobranca.Status, cobranca.Ativa, cobranca.CreatedAt, cobranca.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cobranca: %w", err)
	}
	return nil
}

// ListAbertasByUser lista as cobranças abertas do dono com os dados do cliente,
// ordenadas por vencimento.
func (r *CobrancaRepo) ListAbertasByUser(userID string) ([]*entity.CobrancaComCliente, error) {
	query := `
		SELECT ` + cobrancaComClienteCols + `
		FROM cobrancas c
		JOIN clientes cl ON cl.id = c.cliente_id
		WHERE c.status = 'aberta' AND cl.user_id = $1
		ORDER BY c.data_vencimento`
	return r.queryList(query, userID)
}

// ListAbertas lista todas as cobranças abertas, sem escopo de dono.
// Uso exclusivo da carga inicial do loop de reconciliação.
func (r *CobrancaRepo) ListAbertas() ([]*entity.CobrancaComCliente, error) {
	query := `
		SELECT ` + cobrancaComClienteCols + `
		FROM cobrancas c
		JOIN clientes cl ON cl.id = c.cliente_id
		WHERE c.status = 'aberta'
		ORDER BY c.data_vencimento`
	return r.queryList(query)
}

func (r *CobrancaRepo) queryList(query string, args ...any) ([]*entity.CobrancaComCliente, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cobrancas: %w", err)
	}
	defer rows.Close()
	var list []*entity.CobrancaComCliente
	for rows.Next() {
		cc, err := scanCobrancaComCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cobranca: %w", err)
		}
		list = append(list, cc)
	}
	return list, rows.Err()
}

// GetComCliente busca uma cobrança do dono junto com o cliente.
// Devolve nil se não existir ou se o cliente for de outro dono.
func (r *CobrancaRepo) GetComCliente(userID, id string) (*entity.CobrancaComCliente, error) {
	query := `
		SELECT ` + cobrancaComClienteCols + `
		FROM cobrancas c
		JOIN clientes cl ON cl.id = c.cliente_id
		WHERE c.id = $1 AND cl.user_id = $2`
	cc, err := scanCobrancaComCliente(r.q.QueryRow(context.Background(), query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cobranca: %w", err)
	}
	return cc, nil
}

// GetComClienteByID busca uma cobrança sem escopo de dono.
// Uso exclusivo do loop de reconciliação.
func (r *CobrancaRepo) GetComClienteByID(id string) (*entity.CobrancaComCliente, error) {
	query := `
		SELECT ` + cobrancaComClienteCols + `
		FROM cobrancas c
		JOIN clientes cl ON cl.id = c.cliente_id
		WHERE c.id = $1`
	cc, err := scanCobrancaComCliente(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cobranca: %w", err)
	}
	return cc, nil
}

// SetAtiva liga/desliga a cobrança. ErrNotFound se não for do dono.
func (r *CobrancaRepo) SetAtiva(userID, id string, ativa bool) error {
	query := `
		UPDATE cobrancas c SET ativa = $3, updated_at = now()
		FROM clientes cl
		WHERE c.id = $1 AND cl.id = c.cliente_id AND cl.user_id = $2`
	tag, err := r.q.Exec(context.Background(), query, id, userID, ativa)
	if err != nil {
		return fmt.Errorf("set ativa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RegistrarDisparo grava o resultado de um disparo. Sem escopo: o relay já
// resolveu a cobrança pelo dono antes de chamar. Last-write-wins por desenho.
func (r *CobrancaRepo) RegistrarDisparo(id string, status entity.StatusDisparo, em time.Time) error {
	query := `
		UPDATE cobrancas SET ultimo_disparo = $2, status_ultimo_disparo = $3, updated_at = $2
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, em, string(status))
	if err != nil {
		return fmt.Errorf("registrar disparo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove a cobrança ("pago" é exclusão, não status). ErrNotFound se não for do dono.
func (r *CobrancaRepo) Delete(userID, id string) error {
	query := `
		DELETE FROM cobrancas c
		USING clientes cl
		WHERE c.id = $1 AND cl.id = c.cliente_id AND cl.user_id = $2`
	tag, err := r.q.Exec(context.Background(), query, id, userID)
	if err != nil {
		return fmt.Errorf("delete cobranca: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
