package api

import (
	"net/http"

	"github.com/agendaparoquial/server/internal/auth"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

type interessadoRequest struct {
	Nome       string `json:"nome" validate:"required,max=200"`
	Documento  string `json:"documento" validate:"required,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	Telefone   string `json:"telefone" validate:"max=20"`
	Logradouro string `json:"logradouro" validate:"max=300"`
	Cidade     string `json:"cidade" validate:"max=120"`
	UF         string `json:"uf" validate:"omitempty,len=2"`
	CEP        string `json:"cep" validate:"max=9"`
}

func (req *interessadoRequest) paraModelo(filialID int64) store.Interessado {
	return store.Interessado{
		FilialID:   filialID,
		Nome:       req.Nome,
		Documento:  req.Documento,
		Email:      req.Email,
		Telefone:   req.Telefone,
		Logradouro: req.Logradouro,
		Cidade:     req.Cidade,
		UF:         req.UF,
		CEP:        req.CEP,
	}
}

func (a *API) ListarInteressados(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoInteressado, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	interessados, err := a.store.Interessados.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar interessados")
		return
	}
	httperr.JSON(w, http.StatusOK, interessados)
}

func (a *API) BuscarInteressado(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoInteressado, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	interessado, err := a.store.Interessados.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar interessado")
		return
	}
	httperr.JSON(w, http.StatusOK, interessado)
}

func (a *API) CriarInteressado(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoInteressado, Acao: auth.AcaoCriar})
	if !ok {
		return
	}
	var req interessadoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	criado, err := a.store.Interessados.Criar(r.Context(), req.paraModelo(filialID))
	if err != nil {
		responderErroStore(w, r, err, "criar interessado")
		return
	}
	httperr.JSON(w, http.StatusCreated, criado)
}

func (a *API) AtualizarInteressado(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoInteressado, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req interessadoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	interessado := req.paraModelo(filialID)
	interessado.ID = id
	if err := a.store.Interessados.Atualizar(r.Context(), interessado); err != nil {
		responderErroStore(w, r, err, "atualizar interessado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) ExcluirInteressado(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoInteressado, Acao: auth.AcaoExcluir})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	if err := a.store.Interessados.Excluir(r.Context(), filialID, id); err != nil {
		responderErroStore(w, r, err, "excluir interessado")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
