package api

import (
	"net/http"
	"time"

	"github.com/agendaparoquial/server/internal/auth"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

type salaRequest struct {
	Descricao        string    `json:"descricao" validate:"required,max=500"`
	Inicio           time.Time `json:"inicio" validate:"required"`
	Fim              time.Time `json:"fim" validate:"required"`
	DiaInteiro       bool      `json:"diaInteiro"`
	TipoDeSalaID     int64     `json:"tipoDeSalaId" validate:"required,gt=0"`
	SolicitanteEmail *string   `json:"solicitanteEmail,omitempty" validate:"omitempty,email"`
}

type salaSituacaoRequest struct {
	Situacao string `json:"situacao" validate:"required,oneof=pendente aprovada recusada cancelada"`
}

type salaDTO struct {
	ID               int64     `json:"id"`
	FilialID         int64     `json:"filialId"`
	Descricao        string    `json:"descricao"`
	Inicio           time.Time `json:"inicio"`
	Fim              time.Time `json:"fim"`
	DiaInteiro       bool      `json:"diaInteiro"`
	TipoDeSalaID     int64     `json:"tipoDeSalaId"`
	Situacao         string    `json:"situacao"`
	SolicitanteEmail *string   `json:"solicitanteEmail,omitempty"`
}

func salaParaDTO(s store.Sala) salaDTO {
	return salaDTO{
		ID:               s.ID,
		FilialID:         s.FilialID,
		Descricao:        s.Descricao,
		Inicio:           s.Inicio,
		Fim:              s.Fim,
		DiaInteiro:       s.DiaInteiro,
		TipoDeSalaID:     s.TipoDeSalaID,
		Situacao:         string(s.Situacao),
		SolicitanteEmail: s.SolicitanteEmail,
	}
}

func (a *API) ListarSalas(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	salas, err := a.store.Salas.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar salas")
		return
	}
	httperr.JSON(w, http.StatusOK, salasParaDTO(salas))
}

func (a *API) ListarSalasPendentes(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	salas, err := a.store.Salas.ListarPendentes(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar salas pendentes")
		return
	}
	httperr.JSON(w, http.StatusOK, salasParaDTO(salas))
}

func salasParaDTO(salas []store.Sala) []salaDTO {
	dtos := make([]salaDTO, 0, len(salas))
	for _, s := range salas {
		dtos = append(dtos, salaParaDTO(s))
	}
	return dtos
}

func (a *API) BuscarSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	sala, err := a.store.Salas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar sala")
		return
	}
	httperr.JSON(w, http.StatusOK, salaParaDTO(*sala))
}

func (a *API) CriarSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoCriar})
	if !ok {
		return
	}
	var req salaRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if req.Fim.Before(req.Inicio) {
		httperr.Mensagem(w, http.StatusBadRequest, "fim anterior ao início")
		return
	}

	// New bookings always start pending approval.
	criada, err := a.store.Salas.Criar(r.Context(), store.Sala{
		FilialID:         filialID,
		Descricao:        req.Descricao,
		Inicio:           req.Inicio,
		Fim:              req.Fim,
		DiaInteiro:       req.DiaInteiro,
		TipoDeSalaID:     req.TipoDeSalaID,
		Situacao:         store.SalaPendente,
		SolicitanteEmail: req.SolicitanteEmail,
	})
	if err != nil {
		responderErroStore(w, r, err, "criar sala")
		return
	}
	httperr.JSON(w, http.StatusCreated, salaParaDTO(*criada))
}

func (a *API) AtualizarSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req salaRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if req.Fim.Before(req.Inicio) {
		httperr.Mensagem(w, http.StatusBadRequest, "fim anterior ao início")
		return
	}

	atual, err := a.store.Salas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar sala para atualizar")
		return
	}
	atual.Descricao = req.Descricao
	atual.Inicio = req.Inicio
	atual.Fim = req.Fim
	atual.DiaInteiro = req.DiaInteiro
	atual.TipoDeSalaID = req.TipoDeSalaID
	atual.SolicitanteEmail = req.SolicitanteEmail
	if err := a.store.Salas.Atualizar(r.Context(), *atual); err != nil {
		responderErroStore(w, r, err, "atualizar sala")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AtualizarSituacaoSala approves, rejects or cancels a pending booking.
func (a *API) AtualizarSituacaoSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req salaSituacaoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if err := a.store.Salas.AtualizarSituacao(r.Context(), filialID, id, store.SituacaoSala(req.Situacao)); err != nil {
		responderErroStore(w, r, err, "atualizar situação da sala")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) ExcluirSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoSala, Acao: auth.AcaoExcluir})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	if err := a.store.Salas.Excluir(r.Context(), filialID, id); err != nil {
		responderErroStore(w, r, err, "excluir sala")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
