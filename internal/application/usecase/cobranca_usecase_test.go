package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
)

func setupCobrancas(t *testing.T) (*usecase.CobrancaUseCase, *memClientes, *memCobrancas, string) {
	t.Helper()
	clientes := newMemClientes()
	cobrancas := newMemCobrancas(clientes)
	clienteUC := usecase.NewClienteUseCase(clientes)

	criado, err := clienteUC.Create(donoA, dto.SaveClienteRequest{Nome: "João da Silva", Telefone: "5511999990000"})
	require.NoError(t, err)
	return usecase.NewCobrancaUseCase(cobrancas, clientes), clientes, cobrancas, criado.ID
}

func TestCobrancaCreate_Valida(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	cobranca, err := uc.Create(donoA, dto.CreateCobrancaRequest{
		ClienteID:      clienteID,
		Nome:           "Mensalidade março",
		DataVencimento: "2025-03-15",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cobranca.ID)
	assert.Equal(t, "2025-03-15", cobranca.DataVencimento, "a data volta byte a byte, sem fuso")
	assert.Equal(t, entity.StatusAberta, cobranca.Status)
	assert.True(t, cobranca.Ativa, "cobrança nasce ativa")
	assert.Equal(t, "João da Silva", cobranca.ClienteNome)
}

func TestCobrancaCreate_SemNome(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	cobranca, err := uc.Create(donoA, dto.CreateCobrancaRequest{ClienteID: clienteID, DataVencimento: "2025-03-15"})
	require.NoError(t, err)
	assert.Empty(t, cobranca.Nome, "nome é opcional")
}

func TestCobrancaCreate_DataForaDoFormato(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	casos := []string{"", "15/03/2025", "2025-3-5", "2025-13-01", "2025-02-30", "2025-03-15T00:00:00Z", "hoje"}
	for _, data := range casos {
		_, err := uc.Create(donoA, dto.CreateCobrancaRequest{ClienteID: clienteID, DataVencimento: data})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "data %q deve ser rejeitada", data)
	}
}

func TestCobrancaCreate_NomeLongo(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	_, err := uc.Create(donoA, dto.CreateCobrancaRequest{
		ClienteID:      clienteID,
		Nome:           strings.Repeat("a", 101),
		DataVencimento: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCobrancaCreate_ClienteInexistenteOuDeOutroDono(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	_, err := uc.Create(donoA, dto.CreateCobrancaRequest{ClienteID: "nao-existe", DataVencimento: "2025-03-15"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(donoB, dto.CreateCobrancaRequest{ClienteID: clienteID, DataVencimento: "2025-03-15"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de outro dono é indistinguível de inexistente")
}

func TestCobrancaCreate_ClienteInativo(t *testing.T) {
	uc, clientes, _, clienteID := setupCobrancas(t)
	clientes.rows[clienteID].Ativo = false

	_, err := uc.Create(donoA, dto.CreateCobrancaRequest{ClienteID: clienteID, DataVencimento: "2025-03-15"})
	assert.ErrorIs(t, err, domain.ErrConflict, "cliente inativo não recebe cobranças novas")
}

func TestCobrancaSetAtivaEDelete_EscopoDeDono(t *testing.T) {
	uc, _, _, clienteID := setupCobrancas(t)

	criada, err := uc.Create(donoA, dto.CreateCobrancaRequest{ClienteID: clienteID, DataVencimento: "2025-03-15"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.SetAtiva(donoB, criada.ID, false), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(donoB, criada.ID), domain.ErrNotFound)

	require.NoError(t, uc.SetAtiva(donoA, criada.ID, false))
	lista, err := uc.List(donoA)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.False(t, lista[0].Ativa)

	require.NoError(t, uc.Delete(donoA, criada.ID))
	lista, err = uc.List(donoA)
	require.NoError(t, err)
	assert.Empty(t, lista)
}
