package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
)

// internalError degrada erro de infraestrutura para uma mensagem genérica.
// O detalhe fica só no log do servidor, nunca no corpo da resposta.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}
