package api

import (
	"net/http"
	"time"

	"github.com/agendaparoquial/server/internal/auth"
	"github.com/agendaparoquial/server/internal/calendario"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

type eventoRequest struct {
	Titulo           string     `json:"titulo" validate:"required,max=200"`
	Descricao        string     `json:"descricao" validate:"max=2000"`
	Inicio           time.Time  `json:"inicio" validate:"required"`
	Fim              time.Time  `json:"fim" validate:"required"`
	DiaInteiro       bool       `json:"diaInteiro"`
	TipoEventoID     int64      `json:"tipoEventoId" validate:"required,gt=0"`
	Compartilhamento string     `json:"compartilhamento" validate:"omitempty,oneof=local interparoquial diocese"`
	Slug             *string    `json:"slug,omitempty" validate:"omitempty,max=120"`
	SalaID           *int64     `json:"salaId,omitempty"`
	InteressadoID    *int64     `json:"interessadoId,omitempty"`
	RecorrenciaFreq  string     `json:"recorrenciaFreq" validate:"omitempty,oneof=nenhuma diaria semanal mensal anual"`
	RecorrenciaFim   *time.Time `json:"recorrenciaFim,omitempty"`
}

type eventoDTO struct {
	ID               int64      `json:"id"`
	FilialID         int64      `json:"filialId"`
	Titulo           string     `json:"titulo"`
	Descricao        string     `json:"descricao"`
	Inicio           time.Time  `json:"inicio"`
	Fim              time.Time  `json:"fim"`
	DiaInteiro       bool       `json:"diaInteiro"`
	TipoEventoID     int64      `json:"tipoEventoId"`
	Compartilhamento string     `json:"compartilhamento"`
	Slug             *string    `json:"slug,omitempty"`
	SalaID           *int64     `json:"salaId,omitempty"`
	InteressadoID    *int64     `json:"interessadoId,omitempty"`
	RecorrenciaFreq  string     `json:"recorrenciaFreq"`
	RecorrenciaFim   *time.Time `json:"recorrenciaFim,omitempty"`
	EventoPaiID      *int64     `json:"eventoPaiId,omitempty"`
}

func eventoParaDTO(e store.Evento) eventoDTO {
	return eventoDTO{
		ID:               e.ID,
		FilialID:         e.FilialID,
		Titulo:           e.Titulo,
		Descricao:        e.Descricao,
		Inicio:           e.Inicio,
		Fim:              e.Fim,
		DiaInteiro:       e.DiaInteiro,
		TipoEventoID:     e.TipoEventoID,
		Compartilhamento: string(e.Compartilhamento),
		Slug:             e.Slug,
		SalaID:           e.SalaID,
		InteressadoID:    e.InteressadoID,
		RecorrenciaFreq:  string(e.RecorrenciaFreq),
		RecorrenciaFim:   e.RecorrenciaFim,
		EventoPaiID:      e.EventoPaiID,
	}
}

func (req *eventoRequest) paraModelo(filialID int64) store.Evento {
	compartilhamento := store.Compartilhamento(req.Compartilhamento)
	if compartilhamento == "" {
		compartilhamento = store.CompartilhamentoLocal
	}
	freq := store.RecorrenciaFreq(req.RecorrenciaFreq)
	if freq == "" {
		freq = store.RecorrenciaNenhuma
	}
	return store.Evento{
		FilialID:         filialID,
		Titulo:           req.Titulo,
		Descricao:        req.Descricao,
		Inicio:           req.Inicio,
		Fim:              req.Fim,
		DiaInteiro:       req.DiaInteiro,
		TipoEventoID:     req.TipoEventoID,
		Compartilhamento: compartilhamento,
		Slug:             req.Slug,
		SalaID:           req.SalaID,
		InteressadoID:    req.InteressadoID,
		RecorrenciaFreq:  freq,
		RecorrenciaFim:   req.RecorrenciaFim,
	}
}

func (a *API) ListarEventos(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}

	eventos, err := a.store.Eventos.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar eventos")
		return
	}
	dtos := make([]eventoDTO, 0, len(eventos))
	for _, e := range eventos {
		dtos = append(dtos, eventoParaDTO(e))
	}
	httperr.JSON(w, http.StatusOK, dtos)
}

func (a *API) BuscarEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}

	evento, err := a.store.Eventos.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento")
		return
	}
	httperr.JSON(w, http.StatusOK, eventoParaDTO(*evento))
}

func (a *API) CriarEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoCriar})
	if !ok {
		return
	}

	var req eventoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if req.Fim.Before(req.Inicio) {
		httperr.Mensagem(w, http.StatusBadRequest, "fim anterior ao início")
		return
	}
	evento := req.paraModelo(filialID)
	if evento.RecorrenciaFreq != store.RecorrenciaNenhuma && evento.RecorrenciaFim == nil {
		httperr.Mensagem(w, http.StatusBadRequest, "evento recorrente exige data final")
		return
	}

	criado, err := a.store.Eventos.Criar(r.Context(), evento)
	if err != nil {
		responderErroStore(w, r, err, "criar evento")
		return
	}

	if criado.RecorrenciaFreq != store.RecorrenciaNenhuma {
		if err := a.gerarFilhos(r, criado); err != nil {
			httperr.InternalError(w, r, err, "gerar ocorrências")
			return
		}
	}
	httperr.JSON(w, http.StatusCreated, eventoParaDTO(*criado))
}

func (a *API) gerarFilhos(r *http.Request, raiz *store.Evento) error {
	filhos, err := calendario.GerarOcorrencias(raiz)
	if err != nil {
		return err
	}
	if len(filhos) == 0 {
		return nil
	}
	return a.store.Eventos.CriarFilhos(r.Context(), filhos)
}

// AtualizarEvento applies an update; targets that belong to a recurring
// series require the ?escopo= query parameter selecting how far the change
// reaches.
func (a *API) AtualizarEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}

	var req eventoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if req.Fim.Before(req.Inicio) {
		httperr.Mensagem(w, http.StatusBadRequest, "fim anterior ao início")
		return
	}

	alvo, err := a.store.Eventos.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento para atualizar")
		return
	}

	if !calendario.PrecisaEscopo(alvo) {
		atualizado := req.paraModelo(filialID)
		atualizado.ID = alvo.ID
		if err := a.store.Eventos.Atualizar(r.Context(), atualizado); err != nil {
			responderErroStore(w, r, err, "atualizar evento")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	escopo, err := calendario.ParseEscopoEdicao(r.URL.Query().Get("escopo"))
	if err != nil {
		httperr.BadRequest(w, r, err, "escopo obrigatório para evento recorrente")
		return
	}
	if err := a.atualizarComEscopo(r, alvo, &req, escopo); err != nil {
		responderErroStore(w, r, err, "atualizar série")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) atualizarComEscopo(r *http.Request, alvo *store.Evento, req *eventoRequest, escopo calendario.EscopoEdicao) error {
	ctx := r.Context()
	raizID := alvo.ID
	if alvo.EventoPaiID != nil {
		raizID = *alvo.EventoPaiID
	}

	switch escopo {
	case calendario.EdicaoEste:
		if alvo.EventoPaiID == nil {
			// Detaching the root would strand its children under a
			// non-recurring parent; hand the series to the earliest child
			// first, like the single-occurrence delete does.
			filhos, err := a.store.Eventos.ListarFilhos(ctx, alvo.FilialID, alvo.ID)
			if err != nil {
				return err
			}
			if len(filhos) > 0 {
				if err := a.store.Eventos.PromoverNovaRaiz(ctx, alvo.FilialID, alvo.ID, filhos[0].ID); err != nil {
					return err
				}
			}
		}
		// Detach the single occurrence from the series with its new fields.
		solto := req.paraModelo(alvo.FilialID)
		solto.ID = alvo.ID
		solto.RecorrenciaFreq = store.RecorrenciaNenhuma
		solto.RecorrenciaFim = nil
		return a.store.Eventos.AtualizarDesvinculando(ctx, solto)

	case calendario.EdicaoEsteEFuturos:
		if alvo.EventoPaiID == nil {
			// Editing the root forward rewrites the whole series.
			return a.atualizarSerieInteira(r, alvo, req)
		}
		raiz, err := a.store.Eventos.BuscarPorID(ctx, alvo.FilialID, raizID)
		if err != nil {
			return err
		}
		// Truncate the old series the day before the target, drop the target
		// and everything after it, and start a fresh series in its place.
		vespera := alvo.Inicio.AddDate(0, 0, -1)
		if err := a.store.Eventos.EncerrarRecorrencia(ctx, alvo.FilialID, raizID, vespera); err != nil {
			return err
		}
		if err := a.store.Eventos.ExcluirAPartir(ctx, alvo.FilialID, raizID, alvo.Inicio); err != nil {
			return err
		}
		novaRaiz := req.paraModelo(alvo.FilialID)
		novaRaiz.RecorrenciaFreq = raiz.RecorrenciaFreq
		novaRaiz.RecorrenciaFim = raiz.RecorrenciaFim
		criada, err := a.store.Eventos.Criar(ctx, novaRaiz)
		if err != nil {
			return err
		}
		return a.gerarFilhos(r, criada)

	case calendario.EdicaoTodos:
		raiz, err := a.store.Eventos.BuscarPorID(ctx, alvo.FilialID, raizID)
		if err != nil {
			return err
		}
		return a.atualizarSerieInteira(r, raiz, req)
	}
	return nil
}

// atualizarSerieInteira rewrites the root with the new fields, keeping the
// root's own date but taking the request's time of day and duration, then
// regenerates every child occurrence.
func (a *API) atualizarSerieInteira(r *http.Request, raiz *store.Evento, req *eventoRequest) error {
	atualizado := req.paraModelo(raiz.FilialID)
	atualizado.ID = raiz.ID
	atualizado.Inicio = noMesmoDia(raiz.Inicio, req.Inicio)
	atualizado.Fim = atualizado.Inicio.Add(req.Fim.Sub(req.Inicio))
	atualizado.RecorrenciaFreq = raiz.RecorrenciaFreq
	atualizado.RecorrenciaFim = raiz.RecorrenciaFim
	if req.RecorrenciaFreq != "" {
		atualizado.RecorrenciaFreq = store.RecorrenciaFreq(req.RecorrenciaFreq)
	}
	if req.RecorrenciaFim != nil {
		atualizado.RecorrenciaFim = req.RecorrenciaFim
	}

	if err := a.store.Eventos.Atualizar(r.Context(), atualizado); err != nil {
		return err
	}
	filhos, err := calendario.GerarOcorrencias(&atualizado)
	if err != nil {
		return err
	}
	return a.store.Eventos.SubstituirFilhos(r.Context(), raiz.FilialID, raiz.ID, filhos)
}

// noMesmoDia keeps dia's calendar date with horario's time of day.
func noMesmoDia(dia, horario time.Time) time.Time {
	y, m, d := dia.Date()
	return time.Date(y, m, d, horario.Hour(), horario.Minute(), horario.Second(), 0, horario.Location())
}

// ExcluirEvento removes an event; targets in a recurring series require
// ?escopo= selecting how much of the series goes with it.
func (a *API) ExcluirEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoExcluir})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}

	alvo, err := a.store.Eventos.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento para excluir")
		return
	}

	if !calendario.PrecisaEscopo(alvo) {
		if err := a.store.Eventos.Excluir(r.Context(), filialID, id); err != nil {
			responderErroStore(w, r, err, "excluir evento")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	escopo, err := calendario.ParseEscopoExclusao(r.URL.Query().Get("escopo"))
	if err != nil {
		httperr.BadRequest(w, r, err, "escopo obrigatório para evento recorrente")
		return
	}
	if err := a.excluirComEscopo(r, alvo, escopo); err != nil {
		responderErroStore(w, r, err, "excluir série")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) excluirComEscopo(r *http.Request, alvo *store.Evento, escopo calendario.EscopoExclusao) error {
	ctx := r.Context()
	raizID := alvo.ID
	if alvo.EventoPaiID != nil {
		raizID = *alvo.EventoPaiID
	}

	switch escopo {
	case calendario.ExclusaoEste:
		if alvo.EventoPaiID != nil {
			return a.store.Eventos.Excluir(ctx, alvo.FilialID, alvo.ID)
		}
		// Deleting the root promotes the earliest child before removal so the
		// cascade does not take the rest of the series down.
		filhos, err := a.store.Eventos.ListarFilhos(ctx, alvo.FilialID, alvo.ID)
		if err != nil {
			return err
		}
		if len(filhos) == 0 {
			return a.store.Eventos.Excluir(ctx, alvo.FilialID, alvo.ID)
		}
		if err := a.store.Eventos.PromoverNovaRaiz(ctx, alvo.FilialID, alvo.ID, filhos[0].ID); err != nil {
			return err
		}
		return a.store.Eventos.Excluir(ctx, alvo.FilialID, alvo.ID)

	case calendario.ExclusaoEsteEFuturos:
		if alvo.EventoPaiID == nil {
			return a.store.Eventos.ExcluirSerie(ctx, alvo.FilialID, alvo.ID)
		}
		vespera := alvo.Inicio.AddDate(0, 0, -1)
		if err := a.store.Eventos.EncerrarRecorrencia(ctx, alvo.FilialID, raizID, vespera); err != nil {
			return err
		}
		return a.store.Eventos.ExcluirAPartir(ctx, alvo.FilialID, raizID, alvo.Inicio)

	case calendario.ExclusaoTodos:
		return a.store.Eventos.ExcluirSerie(ctx, alvo.FilialID, raizID)
	}
	return nil
}
