// Package api implements the JSON handlers of the branch-scoped admin API.
// Every mutating handler checks the session's capability set before touching
// the store; a missing claim is answered with 403 and counted, and no
// repository call is made.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agendaparoquial/server/internal/auth"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/metrics"
	"github.com/agendaparoquial/server/internal/store"
)

// API holds the handler dependencies.
type API struct {
	store    *store.Store
	validate *validator.Validate
	agora    func() time.Time
}

func New(s *store.Store) *API {
	return &API{
		store:    s,
		validate: validator.New(),
		agora:    time.Now,
	}
}

// autorizar resolves the request's session and branch, then checks the
// required capability. It writes the error response itself; callers bail out
// when ok is false.
func (a *API) autorizar(w http.ResponseWriter, r *http.Request, c auth.Capacidade) (filialID int64, ok bool) {
	sessao, found := auth.SessaoFromContext(r.Context())
	if !found {
		httperr.Mensagem(w, http.StatusUnauthorized, "autenticação necessária")
		return 0, false
	}

	filialID, err := urlInt64(r, "filialId")
	if err != nil {
		httperr.Mensagem(w, http.StatusBadRequest, "filial inválida")
		return 0, false
	}
	if !sessao.PodeAcessarFilial(filialID) {
		httperr.Forbidden(w)
		return 0, false
	}

	if !sessao.Capacidades.Possui(c) {
		metrics.CountAccessDenied(c.Claim())
		httperr.Forbidden(w)
		return 0, false
	}
	return filialID, true
}

func urlInt64(r *http.Request, param string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parâmetro %s: %w", param, err)
	}
	return v, nil
}

// decodificar parses and validates a JSON request body.
func (a *API) decodificar(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("corpo inválido: %w", err)
	}
	if err := a.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// mensagemValidacao turns a validator error into the client-facing message.
func mensagemValidacao(err error) string {
	var campos validator.ValidationErrors
	if errors.As(err, &campos) && len(campos) > 0 {
		return fmt.Sprintf("campo %s inválido", campos[0].Field())
	}
	return "requisição inválida"
}

// responderErroStore maps store sentinel errors onto HTTP statuses.
func responderErroStore(w http.ResponseWriter, r *http.Request, err error, contexto string) {
	switch {
	case errors.Is(err, store.ErrNaoEncontrado):
		httperr.NotFound(w)
	case errors.Is(err, store.ErrConflito):
		httperr.Conflict(w, "registro conflitante")
	default:
		httperr.InternalError(w, r, err, contexto)
	}
}
