package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
)

// ClienteHandler trata o CRUD do cadastro de clientes.
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler constrói o handler de clientes.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create cria um cliente do usuário autenticado.
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cliente, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome deve ter de 2 a 100 caracteres e telefone de 10 a 20"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// List lista os clientes do usuário; ?busca= filtra por nome ou telefone.
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetUserID(c), c.Query("busca"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// Update edita um cliente do usuário.
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cliente, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome deve ter de 2 a 100 caracteres e telefone de 10 a 20"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(cliente)
}

// Delete apaga um cliente do usuário. 409 se houver cobranças do cliente.
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "cliente possui cobranças; apague-as antes"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
