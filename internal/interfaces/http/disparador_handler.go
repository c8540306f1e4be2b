package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/seu-usuario/cobrancas-api/internal/application/dto"
	"github.com/seu-usuario/cobrancas-api/internal/application/sync"
	"github.com/seu-usuario/cobrancas-api/internal/application/usecase"
	"github.com/valyala/fasthttp"
)

// DisparadorHandler serve o painel de disparos: snapshot filtrável e o
// stream de mudanças em tempo real.
type DisparadorHandler struct {
	reconciler *sync.Reconciler
}

// NewDisparadorHandler constrói o handler do painel.
func NewDisparadorHandler(reconciler *sync.Reconciler) *DisparadorHandler {
	return &DisparadorHandler{reconciler: reconciler}
}

// Snapshot devolve as cobranças do usuário na visão reconciliada.
// ?busca= filtra por nome (insensível a acento); ?ativa= todas|ativas|inativas.
// Os totais são sempre do snapshot completo, antes dos filtros.
func (h *DisparadorHandler) Snapshot(c *fiber.Ctx) error {
	lista, ok := h.reconciler.Snapshot(GetUserID(c))
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.RelayError{Error: "Painel indisponível"})
	}
	stats := sync.Resumo(lista, time.Now())

	filtradas := sync.Filtrar(lista, c.Query("busca"), c.Query("ativa", sync.FiltroTodas))
	cobrancas := make([]dto.CobrancaResponse, 0, len(filtradas))
	for _, cc := range filtradas {
		cobrancas = append(cobrancas, usecase.CobrancaToResponse(cc))
	}
	return c.JSON(dto.DisparadorResponse{
		Cobrancas: cobrancas,
		Total:     stats.Total,
		Ativas:    stats.Ativas,
		Atrasadas: stats.Atrasadas,
	})
}

// streamEvento evento SSE do painel. Cobranca é nil quando Op é DELETE.
type streamEvento struct {
	Op       string                `json:"op"`
	ID       string                `json:"id"`
	Cobranca *dto.CobrancaResponse `json:"cobranca,omitempty"`
}

// Stream entrega as mudanças das cobranças do usuário por Server-Sent Events.
// Abre com um evento snapshot e segue com eventos mudanca até o cliente
// desconectar ou o servidor encerrar.
func (h *DisparadorHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)
	assinatura := h.reconciler.Assinar(userID)
	if assinatura == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.RelayError{Error: "Stream indisponível"})
	}
	snapshot, ok := h.reconciler.Snapshot(userID)
	if !ok {
		assinatura.Cancelar()
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.RelayError{Error: "Stream indisponível"})
	}
	inicial := make([]dto.CobrancaResponse, 0, len(snapshot))
	for _, cc := range snapshot {
		inicial = append(inicial, usecase.CobrancaToResponse(cc))
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer assinatura.Cancelar()

		if err := escreverEvento(w, "snapshot", inicial); err != nil {
			return
		}
		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()
		for {
			select {
			case m, ok := <-assinatura.Mudancas():
				if !ok {
					return
				}
				ev := streamEvento{Op: string(m.Op), ID: m.ID}
				if m.Cobranca != nil {
					resp := usecase.CobrancaToResponse(m.Cobranca)
					ev.Cobranca = &resp
				}
				if err := escreverEvento(w, "mudanca", ev); err != nil {
					return
				}
			case <-keepalive.C:
				// Comentário SSE: mantém a conexão e detecta desconexão.
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func escreverEvento(w *bufio.Writer, nome string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", nome, data); err != nil {
		return err
	}
	return w.Flush()
}
