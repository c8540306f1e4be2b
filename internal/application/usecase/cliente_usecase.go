package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/domain/repository"
	"github.com/seu-usuario/cobrancas-api/pkg/texto"
)

// Limites de validação do cadastro de cliente.
const (
	nomeMin     = 2
	nomeMax     = 100
	telefoneMin = 10
	telefoneMax = 20
)

// ClienteUseCase casos de uso do cadastro de clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase constrói o caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

func validarCliente(nome, telefone string) error {
	if n := len([]rune(nome)); n < nomeMin || n > nomeMax {
		return domain.ErrInvalidInput
	}
	if n := len([]rune(telefone)); n < telefoneMin || n > telefoneMax {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create cria um cliente do dono. Nome 2–100 caracteres, telefone 10–20
// (formato livre). Ativo ausente vale true.
func (uc *ClienteUseCase) Create(userID string, in dto.SaveClienteRequest) (*dto.ClienteResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	telefone := strings.TrimSpace(in.Telefone)
	if err := validarCliente(nome, telefone); err != nil {
		return nil, err
	}
	ativo := true
	if in.Ativo != nil {
		ativo = *in.Ativo
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		UserID:    userID,
		Nome:      nome,
		Telefone:  telefone,
		Ativo:     ativo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista os clientes do dono, com busca opcional por nome
// (insensível a acento) ou telefone.
func (uc *ClienteUseCase) List(userID, busca string) ([]*dto.ClienteResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		if busca != "" && !texto.Contem(c.Nome, busca) && !strings.Contains(c.Telefone, busca) {
			continue
		}
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// Update edita nome, telefone e ativo de um cliente do dono.
func (uc *ClienteUseCase) Update(userID, id string, in dto.SaveClienteRequest) (*dto.ClienteResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	telefone := strings.TrimSpace(in.Telefone)
	if err := validarCliente(nome, telefone); err != nil {
		return nil, err
	}
	cliente, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	cliente.Nome = nome
	cliente.Telefone = telefone
	if in.Ativo != nil {
		cliente.Ativo = *in.Ativo
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Delete apaga um cliente do dono. ErrConflict se houver cobranças
// referenciando o cliente: as duas linhas ficam intactas.
func (uc *ClienteUseCase) Delete(userID, id string) error {
	return uc.repo.Delete(userID, id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		Telefone:  c.Telefone,
		Ativo:     c.Ativo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
