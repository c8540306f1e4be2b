package repository

import (
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
)

// CobrancaRepository define a porta de persistência de Cobranca.
// O escopo de dono vem do join com clientes: cobranças não carregam user_id
// próprio, então toda consulta escopada filtra por clientes.user_id.
type CobrancaRepository interface {
	Create(cobranca *entity.Cobranca) error
	ListAbertasByUser(userID string) ([]*entity.CobrancaComCliente, error)
	GetComCliente(userID, id string) (*entity.CobrancaComCliente, error)
	SetAtiva(userID, id string, ativa bool) error
	// RegistrarDisparo grava ultimo_disparo e status_ultimo_disparo.
	// Único caminho de escrita desses campos; sempre last-write-wins.
	RegistrarDisparo(id string, status entity.StatusDisparo, em time.Time) error
	Delete(userID, id string) error

	// Sem escopo de dono: usados apenas pelo loop de reconciliação,
	// que guarda o user_id de cada linha para filtrar na leitura.
	ListAbertas() ([]*entity.CobrancaComCliente, error)
	GetComClienteByID(id string) (*entity.CobrancaComCliente, error)
}
