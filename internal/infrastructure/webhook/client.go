package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/application/disparo"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

// Verificação em tempo de compilação de que Cliente implementa Notificador.
var _ disparo.Notificador = (*Cliente)(nil)

// Cliente adaptador HTTP para o webhook do n8n que envia a mensagem de
// WhatsApp. Sem retry nem idempotência: cada chamada é um POST único.
type Cliente struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewCliente constrói o adaptador para a URL configurada pelo operador.
func NewCliente(url string, log *logger.Logger) *Cliente {
	return &Cliente{
		url: url,
		httpClient: &http.Client{
			// Timeout de rede; não há camada própria de cancelamento além
			// do context do request.
			Timeout: 25 * time.Second,
		},
		log: log,
	}
}

// Enviar faz o POST do payload ao webhook. Resposta não-2xx vira ErroWebhook.
func (c *Cliente) Enviar(ctx context.Context, payload disparo.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: enviar: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.log.Debug().
		Int("status", resp.StatusCode).
		Str("cobranca_id", payload.CobrancaID).
		Bytes("resposta", respBody).
		Msg("resposta do webhook")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &disparo.ErroWebhook{Status: resp.StatusCode}
	}
	return nil
}
