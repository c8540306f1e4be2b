package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
)

// CobrancaHandler trata o CRUD de cobranças em aberto.
type CobrancaHandler struct {
	uc *usecase.CobrancaUseCase
}

// NewCobrancaHandler constrói o handler de cobranças.
func NewCobrancaHandler(uc *usecase.CobrancaUseCase) *CobrancaHandler {
	return &CobrancaHandler{uc: uc}
}

// Create cria uma cobrança em aberto para um cliente do usuário.
func (h *CobrancaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCobrancaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cobranca, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id é obrigatório, nome até 100 caracteres e data_vencimento no formato yyyy-MM-dd"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "cliente inativo não recebe cobranças novas"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cobranca)
}

// List lista as cobranças em aberto do usuário, por vencimento.
func (h *CobrancaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetUserID(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// SetAtiva liga ou desliga o disparo de uma cobrança do usuário.
func (h *CobrancaHandler) SetAtiva(c *fiber.Ctx) error {
	var in dto.SetAtivaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetAtiva(GetUserID(c), c.Params("id"), in.Ativa); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cobrança não encontrada"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete apaga uma cobrança do usuário (cobrança paga sai da base).
func (h *CobrancaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cobrança não encontrada"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
