package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/domain/repository"
)

// CobrancaUseCase casos de uso das cobranças em aberto.
type CobrancaUseCase struct {
	cobrancas repository.CobrancaRepository
	clientes  repository.ClienteRepository
}

// NewCobrancaUseCase constrói o caso de uso.
func NewCobrancaUseCase(cobrancas repository.CobrancaRepository, clientes repository.ClienteRepository) *CobrancaUseCase {
	return &CobrancaUseCase{cobrancas: cobrancas, clientes: clientes}
}

// Create cria uma cobrança em aberto para um cliente ativo do dono.
// data_vencimento só é aceita no formato yyyy-MM-dd.
func (uc *CobrancaUseCase) Create(userID string, in dto.CreateCobrancaRequest) (*dto.CobrancaResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if in.ClienteID == "" || len([]rune(nome)) > nomeMax {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", in.DataVencimento); err != nil {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clientes.GetByID(userID, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	if !cliente.Ativo {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	cobranca := &entity.Cobranca{
		ID:             uuid.New().String(),
		ClienteID:      cliente.ID,
		Nome:           nome,
		DataVencimento: in.DataVencimento,
		Status:         entity.StatusAberta,
		Ativa:          true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.cobrancas.Create(cobranca); err != nil {
		return nil, err
	}
	resp := CobrancaToResponse(&entity.CobrancaComCliente{
		Cobranca:        *cobranca,
		ClienteNome:     cliente.Nome,
		ClienteTelefone: cliente.Telefone,
		ClienteAtivo:    cliente.Ativo,
		UserID:          userID,
	})
	return &resp, nil
}

// List lista as cobranças em aberto do dono, ordenadas por vencimento.
func (uc *CobrancaUseCase) List(userID string) ([]dto.CobrancaResponse, error) {
	list, err := uc.cobrancas.ListAbertasByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CobrancaResponse, 0, len(list))
	for _, cc := range list {
		out = append(out, CobrancaToResponse(cc))
	}
	return out, nil
}

// SetAtiva liga ou desliga o disparo de uma cobrança do dono.
func (uc *CobrancaUseCase) SetAtiva(userID, id string, ativa bool) error {
	return uc.cobrancas.SetAtiva(userID, id, ativa)
}

// Delete apaga uma cobrança do dono.
func (uc *CobrancaUseCase) Delete(userID, id string) error {
	return uc.cobrancas.Delete(userID, id)
}

// CobrancaToResponse converte a cobrança com cliente para o shape da API.
func CobrancaToResponse(cc *entity.CobrancaComCliente) dto.CobrancaResponse {
	resp := dto.CobrancaResponse{
		ID:              cc.ID,
		ClienteID:       cc.ClienteID,
		Nome:            cc.Nome,
		DataVencimento:  cc.DataVencimento,
		Status:          string(cc.Status),
		Ativa:           cc.Ativa,
		UltimoDisparo:   cc.UltimoDisparo,
		ClienteNome:     cc.ClienteNome,
		ClienteTelefone: cc.ClienteTelefone,
	}
	if cc.StatusUltimoDisparo != nil {
		resp.StatusUltimoDisparo = string(*cc.StatusUltimoDisparo)
	}
	return resp
}
