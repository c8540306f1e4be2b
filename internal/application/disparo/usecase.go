package disparo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/domain"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/domain/repository"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

// cobrancaIDRe formato canônico do identificador: grupos hex 8-4-4-4-12,
// insensível a maiúsculas. Rejeita entrada malformada antes de qualquer
// acesso ao banco.
var cobrancaIDRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IDValido informa se value tem o formato canônico de identificador de cobrança.
func IDValido(value string) bool {
	return cobrancaIDRe.MatchString(value)
}

// Resultado desfecho de um disparo reportado ao chamador.
// Status "sent" ou "error"; falha de entrega é suave (HTTP 200 no relay).
type Resultado struct {
	Status  string
	Message string
}

// ErrCobrancaInativa disparo recusado: só cobranças ativas são elegíveis.
// A elegibilidade é verificada aqui, não só na UI.
var ErrCobrancaInativa = errors.New("cobrança inativa")

// UseCase é o relay de disparo: resolve a cobrança e o cliente direto do
// banco (escopado pelo dono), encaminha o payload ao notificador e grava o
// status resultante na cobrança.
type UseCase struct {
	cobrancas   repository.CobrancaRepository
	notificador Notificador
	webhookURL  string
	log         *logger.Logger
	agora       func() time.Time
}

// NewUseCase constrói o relay. webhookURL vazia só falha no momento do
// disparo, com domain.ErrMisconfigured.
func NewUseCase(cobrancas repository.CobrancaRepository, notificador Notificador, webhookURL string, log *logger.Logger) *UseCase {
	return &UseCase{
		cobrancas:   cobrancas,
		notificador: notificador,
		webhookURL:  webhookURL,
		log:         log,
		agora:       time.Now,
	}
}

// Disparar executa o fluxo completo para a cobrança do dono.
// Só o identificador vem do chamador; todo o conteúdo enviado ao notificador
// é relido do banco. Sem retry e sem exclusão mútua entre disparos
// concorrentes da mesma cobrança: o último grava por cima.
func (uc *UseCase) Disparar(ctx context.Context, userID, cobrancaID string) (*Resultado, error) {
	if uc.webhookURL == "" {
		return nil, domain.ErrMisconfigured
	}
	if !IDValido(cobrancaID) {
		return nil, domain.ErrInvalidInput
	}

	cc, err := uc.cobrancas.GetComCliente(userID, cobrancaID)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, domain.ErrNotFound
	}
	if !cc.Ativa {
		return nil, ErrCobrancaInativa
	}

	// Telefone fora da faixa persistível: registra invalid e nem chama o
	// notificador. A faixa conta caracteres, como o char_length da constraint.
	if n := len([]rune(strings.TrimSpace(cc.ClienteTelefone))); n < 10 || n > 20 {
		uc.registrar(cc.ID, entity.StatusInvalido)
		return &Resultado{Status: string(entity.StatusErro), Message: "Telefone do cliente inválido"}, nil
	}

	err = uc.notificador.Enviar(ctx, Payload{
		ClienteNome:     cc.ClienteNome,
		ClienteTelefone: cc.ClienteTelefone,
		DataVencimento:  cc.DataVencimento,
		CobrancaID:      cc.ID,
		CobrancaNome:    cc.Nome,
	})

	var resultado *Resultado
	var status entity.StatusDisparo
	if err == nil {
		status = entity.StatusEnviado
		resultado = &Resultado{Status: string(entity.StatusEnviado)}
	} else {
		// Falha suave: o chamador recebe 200 com status error; a distinção
		// entre "não chegou ao relay" e "o relay não entregou" fica no corpo.
		status = entity.StatusErro
		resultado = &Resultado{Status: string(entity.StatusErro), Message: err.Error()}
		uc.log.Warn().Err(err).Str("cobranca_id", cc.ID).Msg("notificador falhou")
	}

	uc.registrar(cc.ID, status)
	return resultado, nil
}

// registrar grava o resultado na cobrança. Melhor esforço: falha de escrita
// é logada e não muda o desfecho reportado ao chamador.
func (uc *UseCase) registrar(id string, status entity.StatusDisparo) {
	if err := uc.cobrancas.RegistrarDisparo(id, status, uc.agora()); err != nil {
		uc.log.Error().Err(err).Str("cobranca_id", id).Str("status", string(status)).
			Msg("gravar status do disparo")
	}
}
