package api

import (
	"net/http"
	"time"

	"github.com/agendaparoquial/server/internal/auth"
	"github.com/agendaparoquial/server/internal/calendario"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

func tipoEventoMapa(tipos []store.TipoEvento) map[int64]store.TipoEvento {
	m := make(map[int64]store.TipoEvento, len(tipos))
	for _, t := range tipos {
		m[t.ID] = t
	}
	return m
}

func tipoSalaMapa(tipos []store.TipoDeSala) map[int64]store.TipoDeSala {
	m := make(map[int64]store.TipoDeSala, len(tipos))
	for _, t := range tipos {
		m[t.ID] = t
	}
	return m
}

// Two full months is the widest view the calendar renders at once.
const maxJanelaCalendario = 62 * 24 * time.Hour

type calendarioResposta struct {
	Itens []itemDTO `json:"itens"`
	Dias  []diaDTO  `json:"dias"`
}

type itemDTO struct {
	Origem string    `json:"origem"`
	ID     int64     `json:"id"`
	Titulo string    `json:"titulo"`
	Inicio time.Time `json:"inicio"`
	Fim    time.Time `json:"fim"`
	// FimExclusivo carries the day-after-end instant calendar renderers
	// expect for all-day items, so the last day still displays.
	FimExclusivo *time.Time `json:"fimExclusivo,omitempty"`
	DiaInteiro   bool       `json:"diaInteiro"`
	Cor          string     `json:"cor"`
	Modo         string     `json:"modo"`
}

type diaDTO struct {
	Dia        string    `json:"dia"`
	Itens      []itemDTO `json:"itens"`
	Ocultos    int       `json:"ocultos"`
	RotuloMais string    `json:"rotuloMais,omitempty"`
}

// VerCalendario serves the unified month view: events and independent room
// bookings merged, de-duplicated and summarized per day.
func (a *API) VerCalendario(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}

	de, err := time.Parse("2006-01-02", r.URL.Query().Get("de"))
	if err != nil {
		httperr.Mensagem(w, http.StatusBadRequest, "parâmetro de inválido")
		return
	}
	ate, err := time.Parse("2006-01-02", r.URL.Query().Get("ate"))
	if err != nil || ate.Before(de) {
		httperr.Mensagem(w, http.StatusBadRequest, "parâmetro ate inválido")
		return
	}
	if ate.Sub(de) > maxJanelaCalendario {
		httperr.Mensagem(w, http.StatusBadRequest, "período maior que o limite de 62 dias")
		return
	}

	ctx := r.Context()
	eventos, err := a.store.Eventos.ListarPorPeriodo(ctx, filialID, de, ate)
	if err != nil {
		httperr.InternalError(w, r, err, "listar eventos do período")
		return
	}
	salas, err := a.store.Salas.ListarPorPeriodo(ctx, filialID, de, ate)
	if err != nil {
		httperr.InternalError(w, r, err, "listar salas do período")
		return
	}
	tiposEvento, err := a.store.TiposEvento.Listar(ctx, filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar tipos de evento")
		return
	}
	tiposSala, err := a.store.TiposDeSala.Listar(ctx, filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar tipos de sala")
		return
	}

	itens := calendario.Agregar(eventos, salas, tipoEventoMapa(tiposEvento), tipoSalaMapa(tiposSala))

	resposta := calendarioResposta{Itens: itensParaDTO(itens)}
	for dia := de; !dia.After(ate); dia = dia.AddDate(0, 0, 1) {
		cell := calendario.ResumirDia(itens, dia)
		resposta.Dias = append(resposta.Dias, diaDTO{
			Dia:        cell.Dia.Format("2006-01-02"),
			Itens:      itensParaDTO(cell.Itens),
			Ocultos:    cell.Ocultos,
			RotuloMais: cell.RotuloMais,
		})
	}
	httperr.JSON(w, http.StatusOK, resposta)
}

func itensParaDTO(itens []calendario.ItemCalendario) []itemDTO {
	out := make([]itemDTO, 0, len(itens))
	for _, item := range itens {
		dto := itemDTO{
			Origem:     string(item.Origem),
			ID:         item.ID,
			Titulo:     item.Titulo,
			Inicio:     item.Inicio,
			Fim:        item.Fim,
			DiaInteiro: item.DiaInteiro,
			Cor:        item.Cor,
			Modo:       string(item.Modo),
		}
		if item.DiaInteiro {
			exclusivo := calendario.FimExclusivo(item.Fim)
			dto.FimExclusivo = &exclusivo
		}
		out = append(out, dto)
	}
	return out
}
