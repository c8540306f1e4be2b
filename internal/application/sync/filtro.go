package sync

import (
	"time"

	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/pkg/texto"
)

// FiltroAtiva valores aceitos no filtro do painel de disparos.
const (
	FiltroTodas    = "todas"
	FiltroAtivas   = "ativas"
	FiltroInativas = "inativas"
)

// Filtrar aplica busca (nome do cliente ou da cobrança, insensível a acento)
// e o filtro de ativas sobre um snapshot.
func Filtrar(lista []*entity.CobrancaComCliente, busca, filtroAtiva string) []*entity.CobrancaComCliente {
	out := make([]*entity.CobrancaComCliente, 0, len(lista))
	for _, cc := range lista {
		if !texto.Contem(cc.ClienteNome, busca) && !texto.Contem(cc.Nome, busca) {
			continue
		}
		switch filtroAtiva {
		case FiltroAtivas:
			if !cc.Ativa {
				continue
			}
		case FiltroInativas:
			if cc.Ativa {
				continue
			}
		}
		out = append(out, cc)
	}
	return out
}

// Estatisticas totais exibidos no painel.
type Estatisticas struct {
	Total     int `json:"total"`
	Ativas    int `json:"ativas"`
	Atrasadas int `json:"atrasadas"`
}

// Resumo calcula os totais do snapshot completo (antes de filtros).
// Atrasada: vencimento anterior a hoje. Datas yyyy-MM-dd comparam
// lexicograficamente, sem parse.
func Resumo(lista []*entity.CobrancaComCliente, hoje time.Time) Estatisticas {
	ref := hoje.Format("2006-01-02")
	var e Estatisticas
	for _, cc := range lista {
		e.Total++
		if cc.Ativa {
			e.Ativas++
		}
		if cc.DataVencimento < ref {
			e.Atrasadas++
		}
	}
	return e
}
