package disparo

import (
	"context"
	"fmt"
)

// Payload corpo mínimo enviado ao notificador externo (workflow n8n).
// Todo conteúdo vem do banco, nunca do request do chamador.
type Payload struct {
	ClienteNome     string `json:"cliente_nome"`
	ClienteTelefone string `json:"cliente_telefone"`
	DataVencimento  string `json:"data_vencimento"`
	CobrancaID      string `json:"cobranca_id"`
	CobrancaNome    string `json:"cobranca_nome,omitempty"`
}

// Notificador porta de saída para o webhook que dispara o WhatsApp.
type Notificador interface {
	Enviar(ctx context.Context, payload Payload) error
}

// ErroWebhook resposta não-2xx do notificador. Falha "suave": o relay a
// reporta ao chamador com HTTP 200 e status error.
type ErroWebhook struct {
	Status int
}

func (e *ErroWebhook) Error() string {
	return fmt.Sprintf("Erro no webhook: %d", e.Status)
}
