package sync

import (
	"context"
	"sort"

	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

// Fonte é o subconjunto do repositório de cobranças usado pelo loop:
// carga inicial e busca de linhas que a visão ainda não conhece.
type Fonte interface {
	ListAbertas() ([]*entity.CobrancaComCliente, error)
	GetComClienteByID(id string) (*entity.CobrancaComCliente, error)
}

// Reconciler mantém a visão em memória das cobranças abertas e a atualiza a
// partir do canal de eventos do banco. Toda mutação acontece dentro de Run:
// um único escritor, sem locks. Snapshot e assinaturas são atendidos pelo
// mesmo loop via canais.
type Reconciler struct {
	fonte   Fonte
	eventos <-chan Evento
	log     *logger.Logger

	snapshots     chan snapshotReq
	inscricoes    chan *Assinatura
	cancelamentos chan *Assinatura
	parado        chan struct{}
}

type snapshotReq struct {
	userID string
	resp   chan []*entity.CobrancaComCliente
}

// Assinatura recebe as mudanças das cobranças de um dono.
// Deve ser liberada com Cancelar; o loop também a encerra ao parar.
type Assinatura struct {
	userID string
	c      chan Mudanca
	r      *Reconciler
}

// Mudancas canal de entrega; é fechado quando a assinatura termina.
func (a *Assinatura) Mudancas() <-chan Mudanca { return a.c }

// Cancelar libera a assinatura. Seguro chamar após o loop parar.
func (a *Assinatura) Cancelar() {
	select {
	case a.r.cancelamentos <- a:
	case <-a.r.parado:
	}
}

// NewReconciler constrói o reconciliador. Chamar Run para ativá-lo.
func NewReconciler(fonte Fonte, eventos <-chan Evento, log *logger.Logger) *Reconciler {
	return &Reconciler{
		fonte:         fonte,
		eventos:       eventos,
		log:           log,
		snapshots:     make(chan snapshotReq),
		inscricoes:    make(chan *Assinatura),
		cancelamentos: make(chan *Assinatura),
		parado:        make(chan struct{}),
	}
}

// Run carrega a visão inicial e consome eventos até o contexto encerrar.
// Bloqueante; rodar em goroutine própria.
func (r *Reconciler) Run(ctx context.Context) error {
	defer close(r.parado)

	inicial, err := r.fonte.ListAbertas()
	if err != nil {
		return err
	}
	visao := make(map[string]*entity.CobrancaComCliente, len(inicial))
	for _, cc := range inicial {
		c := *cc
		visao[c.ID] = &c
	}

	assinantes := make(map[*Assinatura]struct{})
	defer func() {
		for a := range assinantes {
			close(a.c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-r.eventos:
			r.aplicar(visao, assinantes, ev)
		case req := <-r.snapshots:
			req.resp <- snapshotDoDono(visao, req.userID)
		case a := <-r.inscricoes:
			assinantes[a] = struct{}{}
		case a := <-r.cancelamentos:
			if _, ok := assinantes[a]; ok {
				delete(assinantes, a)
				close(a.c)
			}
		}
	}
}

// aplicar reconcilia um evento na visão e notifica os assinantes do dono.
func (r *Reconciler) aplicar(visao map[string]*entity.CobrancaComCliente, assinantes map[*Assinatura]struct{}, ev Evento) {
	switch ev.Op {
	case OpDelete:
		cc, ok := visao[ev.ID]
		if !ok {
			return
		}
		delete(visao, ev.ID)
		notificar(assinantes, cc.UserID, Mudanca{Op: OpDelete, ID: ev.ID})

	case OpUpdate:
		if ev.Row == nil {
			return
		}
		cc, ok := visao[ev.Row.ID]
		if !ok {
			// Linha desconhecida (criada antes do boot ou evento perdido):
			// carrega completa, com os dados do cliente.
			r.carregar(visao, assinantes, ev.Row.ID)
			return
		}
		mesclar(cc, ev.Row)
		copia := *cc
		notificar(assinantes, cc.UserID, Mudanca{Op: OpUpdate, ID: cc.ID, Cobranca: &copia})

	case OpInsert:
		if ev.Row == nil {
			return
		}
		// O payload não traz os campos do cliente; busca a linha completa.
		r.carregar(visao, assinantes, ev.Row.ID)
	}
}

func (r *Reconciler) carregar(visao map[string]*entity.CobrancaComCliente, assinantes map[*Assinatura]struct{}, id string) {
	cc, err := r.fonte.GetComClienteByID(id)
	if err != nil {
		r.log.Error().Err(err).Str("cobranca_id", id).Msg("reconciliação: carregar linha")
		return
	}
	if cc == nil {
		return
	}
	c := *cc
	visao[c.ID] = &c
	copia := c
	notificar(assinantes, c.UserID, Mudanca{Op: OpInsert, ID: c.ID, Cobranca: &copia})
}

// mesclar sobrescreve na visão os campos de cobrancas presentes no payload.
// Os campos do cliente (nome, telefone, ativo, dono) sobrevivem intactos.
func mesclar(cc *entity.CobrancaComCliente, row *Linha) {
	cc.ClienteID = row.ClienteID
	if row.Nome != nil {
		cc.Nome = *row.Nome
	} else {
		cc.Nome = ""
	}
	cc.DataVencimento = row.DataVencimento
	cc.Status = row.Status
	cc.Ativa = row.Ativa
	cc.UltimoDisparo = row.UltimoDisparo
	if row.StatusUltimoDisparo != nil {
		s := entity.StatusDisparo(*row.StatusUltimoDisparo)
		cc.StatusUltimoDisparo = &s
	} else {
		cc.StatusUltimoDisparo = nil
	}
}

func notificar(assinantes map[*Assinatura]struct{}, userID string, m Mudanca) {
	for a := range assinantes {
		if a.userID != userID {
			continue
		}
		select {
		case a.c <- m:
		default:
			// Assinante lento: descarta em vez de travar o loop.
		}
	}
}

func snapshotDoDono(visao map[string]*entity.CobrancaComCliente, userID string) []*entity.CobrancaComCliente {
	var out []*entity.CobrancaComCliente
	for _, cc := range visao {
		if cc.UserID != userID {
			continue
		}
		c := *cc
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DataVencimento != out[j].DataVencimento {
			return out[i].DataVencimento < out[j].DataVencimento
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Snapshot devolve cópia das cobranças do dono, ordenadas por vencimento.
// ok é false quando o loop já parou: lista vazia e painel indisponível são
// situações distintas para o chamador.
func (r *Reconciler) Snapshot(userID string) (lista []*entity.CobrancaComCliente, ok bool) {
	req := snapshotReq{userID: userID, resp: make(chan []*entity.CobrancaComCliente, 1)}
	select {
	case r.snapshots <- req:
		return <-req.resp, true
	case <-r.parado:
		return nil, false
	}
}

// Assinar registra um assinante das mudanças do dono.
// Devolve nil se o loop já parou.
func (r *Reconciler) Assinar(userID string) *Assinatura {
	a := &Assinatura{userID: userID, c: make(chan Mudanca, 16), r: r}
	select {
	case r.inscricoes <- a:
		return a
	case <-r.parado:
		return nil
	}
}
