package api

import (
	"net/http"

	"github.com/agendaparoquial/server/internal/auth"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

// Types are created and edited, never deleted: existing events keep their
// category even when it falls out of use, so there is no delete handler.

type tipoEventoRequest struct {
	Nome              string `json:"nome" validate:"required,max=120"`
	Cor               string `json:"cor" validate:"required,hexcolor"`
	CategoriaContrato string `json:"categoriaContrato" validate:"max=120"`
}

type tipoAtualizacaoRequest struct {
	Nome string `json:"nome" validate:"required,max=120"`
	Cor  string `json:"cor" validate:"required,hexcolor"`
}

type tipoDeSalaRequest struct {
	Nome       string `json:"nome" validate:"required,max=120"`
	Cor        string `json:"cor" validate:"required,hexcolor"`
	Capacidade int    `json:"capacidade" validate:"gte=0"`
}

func (a *API) ListarTiposEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	tipos, err := a.store.TiposEvento.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar tipos de evento")
		return
	}
	httperr.JSON(w, http.StatusOK, tipos)
}

func (a *API) CriarTipoEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoEvento, Acao: auth.AcaoCriar})
	if !ok {
		return
	}
	var req tipoEventoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	criado, err := a.store.TiposEvento.Criar(r.Context(), store.TipoEvento{
		FilialID:          filialID,
		Nome:              req.Nome,
		Cor:               req.Cor,
		CategoriaContrato: req.CategoriaContrato,
	})
	if err != nil {
		responderErroStore(w, r, err, "criar tipo de evento")
		return
	}
	httperr.JSON(w, http.StatusCreated, criado)
}

// AtualizarTipoEvento only touches name and color, the two editable fields.
func (a *API) AtualizarTipoEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoEvento, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req tipoAtualizacaoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if err := a.store.TiposEvento.Atualizar(r.Context(), filialID, id, req.Nome, req.Cor); err != nil {
		responderErroStore(w, r, err, "atualizar tipo de evento")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) ListarTiposDeSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoDeSala, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	tipos, err := a.store.TiposDeSala.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar tipos de sala")
		return
	}
	httperr.JSON(w, http.StatusOK, tipos)
}

func (a *API) CriarTipoDeSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoDeSala, Acao: auth.AcaoCriar})
	if !ok {
		return
	}
	var req tipoDeSalaRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	criado, err := a.store.TiposDeSala.Criar(r.Context(), store.TipoDeSala{
		FilialID:   filialID,
		Nome:       req.Nome,
		Cor:        req.Cor,
		Capacidade: req.Capacidade,
	})
	if err != nil {
		responderErroStore(w, r, err, "criar tipo de sala")
		return
	}
	httperr.JSON(w, http.StatusCreated, criado)
}

func (a *API) AtualizarTipoDeSala(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoTipoDeSala, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req tipoAtualizacaoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if err := a.store.TiposDeSala.Atualizar(r.Context(), filialID, id, req.Nome, req.Cor); err != nil {
		responderErroStore(w, r, err, "atualizar tipo de sala")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
