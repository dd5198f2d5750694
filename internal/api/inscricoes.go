package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agendaparoquial/server/internal/auth"
	"github.com/agendaparoquial/server/internal/export"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

type fichaDTO struct {
	Evento          eventoDTO `json:"evento"`
	TotalInscricoes int       `json:"totalInscricoes"`
}

// ListarFichasInscricao lists the events that expose a public registration
// form (those with a slug) along with their registration counts.
func (a *API) ListarFichasInscricao(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}

	eventos, err := a.store.Eventos.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar fichas de inscrição")
		return
	}

	fichas := make([]fichaDTO, 0)
	for _, e := range eventos {
		if e.Slug == nil {
			continue
		}
		inscricoes, err := a.store.Inscricoes.ListarPorEvento(r.Context(), filialID, e.ID)
		if err != nil {
			httperr.InternalError(w, r, err, "contar inscrições")
			return
		}
		fichas = append(fichas, fichaDTO{Evento: eventoParaDTO(e), TotalInscricoes: len(inscricoes)})
	}
	httperr.JSON(w, http.StatusOK, fichas)
}

// ListarInscricoes returns the registrations of one event.
func (a *API) ListarInscricoes(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	eventoID, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	inscricoes, err := a.store.Inscricoes.ListarPorEvento(r.Context(), filialID, eventoID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar inscrições")
		return
	}
	httperr.JSON(w, http.StatusOK, inscricoes)
}

// ExportarInscricoes streams an event's registration list as CSV or XLSX,
// selected by ?formato=.
func (a *API) ExportarInscricoes(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoEvento, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	eventoID, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}

	evento, err := a.store.Eventos.BuscarPorID(r.Context(), filialID, eventoID)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento para exportação")
		return
	}
	inscricoes, err := a.store.Inscricoes.ListarPorEvento(r.Context(), filialID, eventoID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar inscrições para exportação")
		return
	}

	slug := strconv.FormatInt(evento.ID, 10)
	if evento.Slug != nil {
		slug = *evento.Slug
	}

	formato := r.URL.Query().Get("formato")
	switch formato {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.NomeArquivo(slug, "csv", a.agora())))
		if err := export.EscreverCSV(w, inscricoes); err != nil {
			httperr.LogError(r, "exportar csv", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.NomeArquivo(slug, "xlsx", a.agora())))
		if err := export.EscreverXLSX(w, inscricoes); err != nil {
			httperr.LogError(r, "exportar xlsx", err)
		}
	default:
		httperr.Mensagem(w, http.StatusBadRequest, "formato desconhecido")
	}
}

type inscricaoRequest struct {
	Nome      string `json:"nome" validate:"required,max=200"`
	Documento string `json:"documento" validate:"required,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefone  string `json:"telefone" validate:"max=20"`
}

type eventoPublicoDTO struct {
	Titulo     string `json:"titulo"`
	Descricao  string `json:"descricao"`
	Inicio     string `json:"inicio"`
	Fim        string `json:"fim"`
	DiaInteiro bool   `json:"diaInteiro"`
}

// buscarEventoPublico resolves the {slug} segment: slug lookup first, with a
// numeric-id fallback for links generated before slugs existed.
func (a *API) buscarEventoPublico(r *http.Request, filialID int64) (*store.Evento, error) {
	slug := chi.URLParam(r, "slug")
	evento, err := a.store.Eventos.BuscarPorSlug(r.Context(), filialID, slug)
	if err == nil {
		return evento, nil
	}
	id, convErr := strconv.ParseInt(slug, 10, 64)
	if convErr != nil {
		return nil, err
	}
	return a.store.Eventos.BuscarPorID(r.Context(), filialID, id)
}

// VerEventoPublico serves the public registration page data. No session.
func (a *API) VerEventoPublico(w http.ResponseWriter, r *http.Request) {
	filialID, err := urlInt64(r, "filialId")
	if err != nil {
		httperr.Mensagem(w, http.StatusBadRequest, "filial inválida")
		return
	}
	evento, err := a.buscarEventoPublico(r, filialID)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento público")
		return
	}
	httperr.JSON(w, http.StatusOK, eventoPublicoDTO{
		Titulo:     evento.Titulo,
		Descricao:  evento.Descricao,
		Inicio:     evento.Inicio.Format("2006-01-02T15:04:05Z07:00"),
		Fim:        evento.Fim.Format("2006-01-02T15:04:05Z07:00"),
		DiaInteiro: evento.DiaInteiro,
	})
}

// CriarInscricaoPublica registers an attendee through the public link.
func (a *API) CriarInscricaoPublica(w http.ResponseWriter, r *http.Request) {
	filialID, err := urlInt64(r, "filialId")
	if err != nil {
		httperr.Mensagem(w, http.StatusBadRequest, "filial inválida")
		return
	}
	evento, err := a.buscarEventoPublico(r, filialID)
	if err != nil {
		responderErroStore(w, r, err, "buscar evento para inscrição")
		return
	}
	var req inscricaoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}

	criada, err := a.store.Inscricoes.Criar(r.Context(), store.Inscricao{
		FilialID:  filialID,
		EventoID:  evento.ID,
		Nome:      req.Nome,
		Documento: req.Documento,
		Email:     req.Email,
		Telefone:  req.Telefone,
	})
	if err != nil {
		responderErroStore(w, r, err, "criar inscrição")
		return
	}
	httperr.JSON(w, http.StatusCreated, criada)
}
