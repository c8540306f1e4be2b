package usecase_test

import (
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
)

const (
	donoA = "aaaaaaaa-0000-0000-0000-000000000001"
	donoB = "bbbbbbbb-0000-0000-0000-000000000002"
)

// memClientes repositório de clientes em memória, escopado por dono.
type memClientes struct {
	rows        map[string]*entity.Cliente
	comCobranca map[string]bool // ids com cobranças referenciando
}

func newMemClientes() *memClientes {
	return &memClientes{rows: map[string]*entity.Cliente{}, comCobranca: map[string]bool{}}
}

func (m *memClientes) Create(c *entity.Cliente) error {
	copia := *c
	m.rows[c.ID] = &copia
	return nil
}

func (m *memClientes) GetByID(userID, id string) (*entity.Cliente, error) {
	c, ok := m.rows[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (m *memClientes) ListByUser(userID string) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range m.rows {
		if c.UserID != userID {
			continue
		}
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (m *memClientes) Update(c *entity.Cliente) error {
	atual, ok := m.rows[c.ID]
	if !ok || atual.UserID != c.UserID {
		return domain.ErrNotFound
	}
	copia := *c
	m.rows[c.ID] = &copia
	return nil
}

func (m *memClientes) Delete(userID, id string) error {
	c, ok := m.rows[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	if m.comCobranca[id] {
		return domain.ErrConflict
	}
	delete(m.rows, id)
	return nil
}

// memCobrancas repositório de cobranças em memória, dono vindo do cliente.
type memCobrancas struct {
	clientes *memClientes
	rows     map[string]*entity.Cobranca
}

func newMemCobrancas(clientes *memClientes) *memCobrancas {
	return &memCobrancas{clientes: clientes, rows: map[string]*entity.Cobranca{}}
}

func (m *memCobrancas) donoDe(cobranca *entity.Cobranca) string {
	c, ok := m.clientes.rows[cobranca.ClienteID]
	if !ok {
		return ""
	}
	return c.UserID
}

func (m *memCobrancas) comCliente(cb *entity.Cobranca) *entity.CobrancaComCliente {
	cliente := m.clientes.rows[cb.ClienteID]
	return &entity.CobrancaComCliente{
		Cobranca:        *cb,
		ClienteNome:     cliente.Nome,
		ClienteTelefone: cliente.Telefone,
		ClienteAtivo:    cliente.Ativo,
		UserID:          cliente.UserID,
	}
}

func (m *memCobrancas) Create(cb *entity.Cobranca) error {
	copia := *cb
	m.rows[cb.ID] = &copia
	m.clientes.comCobranca[cb.ClienteID] = true
	return nil
}

func (m *memCobrancas) ListAbertasByUser(userID string) ([]*entity.CobrancaComCliente, error) {
	var out []*entity.CobrancaComCliente
	for _, cb := range m.rows {
		if m.donoDe(cb) != userID {
			continue
		}
		out = append(out, m.comCliente(cb))
	}
	return out, nil
}

func (m *memCobrancas) GetComCliente(userID, id string) (*entity.CobrancaComCliente, error) {
	cb, ok := m.rows[id]
	if !ok || m.donoDe(cb) != userID {
		return nil, nil
	}
	return m.comCliente(cb), nil
}

func (m *memCobrancas) SetAtiva(userID, id string, ativa bool) error {
	cb, ok := m.rows[id]
	if !ok || m.donoDe(cb) != userID {
		return domain.ErrNotFound
	}
	cb.Ativa = ativa
	return nil
}

func (m *memCobrancas) RegistrarDisparo(id string, status entity.StatusDisparo, em time.Time) error {
	cb, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	cb.UltimoDisparo = &em
	cb.StatusUltimoDisparo = &status
	return nil
}

func (m *memCobrancas) Delete(userID, id string) error {
	cb, ok := m.rows[id]
	if !ok || m.donoDe(cb) != userID {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memCobrancas) ListAbertas() ([]*entity.CobrancaComCliente, error) {
	var out []*entity.CobrancaComCliente
	for _, cb := range m.rows {
		out = append(out, m.comCliente(cb))
	}
	return out, nil
}

func (m *memCobrancas) GetComClienteByID(id string) (*entity.CobrancaComCliente, error) {
	cb, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return m.comCliente(cb), nil
}
