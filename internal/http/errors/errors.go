// Package errors centralizes the JSON error and response conventions of the
// API: clients always receive {"mensagem": "..."} bodies, while the real
// error goes to the log tagged with the request ID.
package errors

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type mensagemBody struct {
	Mensagem string `json:"mensagem"`
}

// JSON writes v as an application/json response.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Mensagem writes a {"mensagem": ...} error body with the given status.
func Mensagem(w http.ResponseWriter, status int, mensagem string) {
	JSON(w, status, mensagemBody{Mensagem: mensagem})
}

// InternalError logs the real error and returns a generic message so internal
// details never reach the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logf(r, "ERROR", "%s: %v", message, err)
	Mensagem(w, http.StatusInternalServerError, "erro interno")
}

// BadRequest logs the parse/validation failure and returns the client-facing
// message.
func BadRequest(w http.ResponseWriter, r *http.Request, err error, clientMessage string) {
	logf(r, "WARN", "requisição inválida: %v", err)
	Mensagem(w, http.StatusBadRequest, clientMessage)
}

// NotFound writes the standard 404 body.
func NotFound(w http.ResponseWriter) {
	Mensagem(w, http.StatusNotFound, "não encontrado")
}

// Forbidden writes the standard 403 body.
func Forbidden(w http.ResponseWriter) {
	Mensagem(w, http.StatusForbidden, "acesso negado")
}

// Conflict writes a 409 with the given message.
func Conflict(w http.ResponseWriter, mensagem string) {
	Mensagem(w, http.StatusConflict, mensagem)
}

// LogError records an error that was handled without failing the request.
func LogError(r *http.Request, message string, err error) {
	logf(r, "ERROR", "%s: %v", message, err)
}

func logf(r *http.Request, level, format string, args ...any) {
	requestID := middleware.GetReqID(r.Context())
	if requestID != "" {
		log.Printf("["+level+"] RequestID=%s: "+format, append([]any{requestID}, args...)...)
	} else {
		log.Printf("["+level+"] "+format, args...)
	}
}
