package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	appsync "github.com/seu-usuario/cobrancas-api/internal/application/sync"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

// canalCobrancas é o canal NOTIFY alimentado pelo trigger da tabela cobrancas.
const canalCobrancas = "cobrancas_changed"

// reconexao espera entre tentativas após queda da conexão de escuta.
// Não há replay: mudanças ocorridas durante a queda são perdidas.
const reconexao = 2 * time.Second

// Listener escuta as notificações de linha alterada de cobrancas numa conexão
// dedicada e as converte em eventos para o loop de reconciliação.
type Listener struct {
	pool    *pgxpool.Pool
	log     *logger.Logger
	eventos chan appsync.Evento
}

// NewListener constrói o listener. Chamar Run para ativá-lo.
func NewListener(pool *pgxpool.Pool, log *logger.Logger) *Listener {
	return &Listener{
		pool:    pool,
		log:     log,
		eventos: make(chan appsync.Evento, 64),
	}
}

// Eventos canal consumido pelo reconciliador.
func (l *Listener) Eventos() <-chan appsync.Evento { return l.eventos }

// Run mantém a escuta até o contexto encerrar, reconectando após quedas.
// Bloqueante; rodar em goroutine própria.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.escutar(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn().Err(err).Msg("escuta de notificações caiu, reconectando")
		select {
		case <-time.After(reconexao):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Listener) escutar(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+canalCobrancas); err != nil {
		return err
	}
	l.log.Info().Str("canal", canalCobrancas).Msg("escutando notificações de cobranças")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var ev appsync.Evento
		if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
			l.log.Warn().Err(err).Msg("payload de notificação inválido")
			continue
		}
		select {
		case l.eventos <- ev:
		default:
			l.log.Warn().Str("cobranca_id", ev.ID).Msg("buffer de eventos cheio, evento descartado")
		}
	}
}
