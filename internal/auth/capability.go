package auth

import "fmt"

// Recurso is an entity guarded by permission claims.
type Recurso uint8

const (
	RecursoEvento Recurso = iota
	RecursoSala
	RecursoTipoEvento
	RecursoTipoDeSala
	RecursoInteressado
	RecursoReserva
	RecursoUsuario
)

// Acao is an operation on a Recurso.
type Acao uint8

const (
	AcaoLer Acao = iota
	AcaoCriar
	AcaoEditar
	AcaoExcluir
)

// Capacidade is one (resource, action) permission. The closed enumeration
// replaces the raw claim strings the legacy client scattered across files, so
// a typo cannot silently produce a permanently-denied capability.
type Capacidade struct {
	Recurso Recurso
	Acao    Acao
}

var nomesRecurso = map[Recurso]string{
	RecursoEvento:      "Evento",
	RecursoSala:        "Sala",
	RecursoTipoEvento:  "TipoEvento",
	RecursoTipoDeSala:  "TipoDeSala",
	RecursoInteressado: "Interessado",
	RecursoReserva:     "Reserva",
	RecursoUsuario:     "Usuario",
}

var nomesAcao = map[Acao]string{
	AcaoLer:     "Ler",
	AcaoCriar:   "Criar",
	AcaoEditar:  "Editar",
	AcaoExcluir: "Excluir",
}

// Claim returns the wire-format claim string, e.g. "EventoCriar".
func (c Capacidade) Claim() string {
	return nomesRecurso[c.Recurso] + nomesAcao[c.Acao]
}

func (c Capacidade) String() string { return c.Claim() }

// claimParaCapacidade is the inverse mapping, built once at init.
var claimParaCapacidade = func() map[string]Capacidade {
	m := make(map[string]Capacidade, len(nomesRecurso)*len(nomesAcao))
	for r := range nomesRecurso {
		for a := range nomesAcao {
			c := Capacidade{Recurso: r, Acao: a}
			m[c.Claim()] = c
		}
	}
	return m
}()

// CapacidadeSet is the set of permissions granted by a token, computed once
// at session construction. There is no hierarchy: each action requires its
// own exact claim.
type CapacidadeSet struct {
	set map[Capacidade]struct{}
}

// NovoCapacidadeSet builds the set from raw claim strings. Unknown claims are
// ignored rather than rejected; the token may carry claims for modules this
// service does not handle.
func NovoCapacidadeSet(claims []string) CapacidadeSet {
	set := make(map[Capacidade]struct{}, len(claims))
	for _, claim := range claims {
		if c, ok := claimParaCapacidade[claim]; ok {
			set[c] = struct{}{}
		}
	}
	return CapacidadeSet{set: set}
}

// Possui reports whether the capability was granted.
func (s CapacidadeSet) Possui(c Capacidade) bool {
	_, ok := s.set[c]
	return ok
}

// Pode is shorthand for Possui with separate resource and action.
func (s CapacidadeSet) Pode(r Recurso, a Acao) bool {
	return s.Possui(Capacidade{Recurso: r, Acao: a})
}

// ErrAcessoNegado is the synthetic error produced by claim-gated handlers.
type ErrAcessoNegado struct {
	Capacidade Capacidade
}

func (e *ErrAcessoNegado) Error() string {
	return fmt.Sprintf("acesso negado: requer %s", e.Capacidade.Claim())
}
