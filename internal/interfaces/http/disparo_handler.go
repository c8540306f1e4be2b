package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/seu-usuario/cobrancas-api/internal/application/disparo"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/domain"
)

// DisparoHandler trata o relay de disparo manual para o webhook.
type DisparoHandler struct {
	uc *disparo.UseCase
}

// NewDisparoHandler constrói o handler de disparos.
func NewDisparoHandler(uc *disparo.UseCase) *DisparoHandler {
	return &DisparoHandler{uc: uc}
}

// Disparar encaminha uma cobrança do usuário ao webhook de envio.
// Falha de entrega no webhook é suave: 200 com status "error" no corpo.
func (h *DisparoHandler) Disparar(c *fiber.Ctx) error {
	var in dto.DispararRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RelayError{Error: "Invalid cobranca ID"})
	}
	resultado, err := h.uc.Disparar(c.Context(), GetUserID(c), in.Cobranca.ID)
	if err != nil {
		switch err {
		case domain.ErrMisconfigured:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.RelayError{Error: "Configuração do webhook ausente"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.RelayError{Error: "Invalid cobranca ID"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.RelayError{Error: "Cobranca não encontrada"})
		case disparo.ErrCobrancaInativa:
			return c.Status(fiber.StatusConflict).JSON(dto.RelayError{Error: "Cobranca inativa"})
		}
		log.Error().Err(err).Msg("disparo falhou")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.RelayError{Error: "Erro interno"})
	}
	return c.JSON(dto.DisparoResponse{Status: resultado.Status, Message: resultado.Message})
}
