package calendario

import (
	"fmt"
	"strconv"

	"github.com/agendaparoquial/server/internal/store"
)

// EscopoEdicao selects which occurrences of a recurring series an update
// applies to. The wire values match the legacy client contract.
type EscopoEdicao int

const (
	// EdicaoEste updates only the target occurrence, detaching it from the series.
	EdicaoEste EscopoEdicao = 0
	// EdicaoEsteEFuturos updates the target and all later occurrences.
	EdicaoEsteEFuturos EscopoEdicao = 1
	// EdicaoTodos updates the entire series, past occurrences included.
	EdicaoTodos EscopoEdicao = 2
)

// EscopoExclusao selects which occurrences a delete removes. Structurally
// identical to EscopoEdicao but kept as a distinct type so an edit scope
// cannot be passed to a delete path by accident.
type EscopoExclusao int

const (
	ExclusaoEste         EscopoExclusao = 0
	ExclusaoEsteEFuturos EscopoExclusao = 1
	ExclusaoTodos        EscopoExclusao = 2
)

// PrecisaEscopo reports whether a mutation on the event requires a scope:
// true when the event has a recurrence rule or is a generated child
// occurrence. Non-recurring standalone events take the plain update/delete
// path with no scope parameter.
func PrecisaEscopo(e *store.Evento) bool {
	return e.Recorrente()
}

func parseEscopo(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 2 {
		return 0, fmt.Errorf("escopo inválido %q", s)
	}
	return v, nil
}

// ParseEscopoEdicao parses the ?escopo= query value for updates.
func ParseEscopoEdicao(s string) (EscopoEdicao, error) {
	v, err := parseEscopo(s)
	return EscopoEdicao(v), err
}

// ParseEscopoExclusao parses the ?escopo= query value for deletes.
func ParseEscopoExclusao(s string) (EscopoExclusao, error) {
	v, err := parseEscopo(s)
	return EscopoExclusao(v), err
}
