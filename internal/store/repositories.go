package store

import (
	"context"
	"time"
)

// EventoRepository handles event storage, including series primitives used by
// the recurrence scope operations.
type EventoRepository interface {
	Criar(ctx context.Context, e Evento) (*Evento, error)
	CriarFilhos(ctx context.Context, filhos []Evento) error
	BuscarPorID(ctx context.Context, filialID, id int64) (*Evento, error)
	BuscarPorSlug(ctx context.Context, filialID int64, slug string) (*Evento, error)
	Listar(ctx context.Context, filialID int64) ([]Evento, error)
	ListarPorPeriodo(ctx context.Context, filialID int64, de, ate time.Time) ([]Evento, error)
	ListarFilhos(ctx context.Context, filialID, raizID int64) ([]Evento, error)
	Atualizar(ctx context.Context, e Evento) error
	// AtualizarDesvinculando applies field changes and detaches the event from
	// its series (parent cleared, recurrence reset).
	AtualizarDesvinculando(ctx context.Context, e Evento) error
	EncerrarRecorrencia(ctx context.Context, filialID, raizID int64, fim time.Time) error
	SubstituirFilhos(ctx context.Context, filialID, raizID int64, filhos []Evento) error
	Excluir(ctx context.Context, filialID, id int64) error
	// ExcluirAPartir removes the series rows (root included) starting at the
	// given instant.
	ExcluirAPartir(ctx context.Context, filialID, raizID int64, de time.Time) error
	ExcluirSerie(ctx context.Context, filialID, raizID int64) error
	// PromoverNovaRaiz re-parents the remaining children of antigaRaiz under
	// novaRaiz and turns novaRaiz into the series root.
	PromoverNovaRaiz(ctx context.Context, filialID, antigaRaizID, novaRaizID int64) error
}

// SalaRepository handles room bookings.
type SalaRepository interface {
	Criar(ctx context.Context, s Sala) (*Sala, error)
	BuscarPorID(ctx context.Context, filialID, id int64) (*Sala, error)
	Listar(ctx context.Context, filialID int64) ([]Sala, error)
	ListarPorPeriodo(ctx context.Context, filialID int64, de, ate time.Time) ([]Sala, error)
	ListarPendentes(ctx context.Context, filialID int64) ([]Sala, error)
	ContarPendentes(ctx context.Context) (int, error)
	Atualizar(ctx context.Context, s Sala) error
	AtualizarSituacao(ctx context.Context, filialID, id int64, situacao SituacaoSala) error
	Excluir(ctx context.Context, filialID, id int64) error
}

// TipoEventoRepository manages event categories. Types are created and have
// two fields edited through the UI, never deleted.
type TipoEventoRepository interface {
	Criar(ctx context.Context, t TipoEvento) (*TipoEvento, error)
	BuscarPorID(ctx context.Context, filialID, id int64) (*TipoEvento, error)
	Listar(ctx context.Context, filialID int64) ([]TipoEvento, error)
	Atualizar(ctx context.Context, filialID, id int64, nome, cor string) error
}

// TipoDeSalaRepository manages room categories.
type TipoDeSalaRepository interface {
	Criar(ctx context.Context, t TipoDeSala) (*TipoDeSala, error)
	BuscarPorID(ctx context.Context, filialID, id int64) (*TipoDeSala, error)
	Listar(ctx context.Context, filialID int64) ([]TipoDeSala, error)
	Atualizar(ctx context.Context, filialID, id int64, nome, cor string) error
}

// InteressadoRepository manages contracting parties.
type InteressadoRepository interface {
	Criar(ctx context.Context, i Interessado) (*Interessado, error)
	BuscarPorID(ctx context.Context, filialID, id int64) (*Interessado, error)
	Listar(ctx context.Context, filialID int64) ([]Interessado, error)
	Atualizar(ctx context.Context, i Interessado) error
	Excluir(ctx context.Context, filialID, id int64) error
}

// ReservaRepository manages contract records and their installment plans.
// Create and update replace the parcela list atomically.
type ReservaRepository interface {
	Criar(ctx context.Context, r Reserva) (*Reserva, error)
	BuscarPorID(ctx context.Context, filialID, id int64) (*Reserva, error)
	BuscarPorEvento(ctx context.Context, filialID, eventoID int64) (*Reserva, error)
	Listar(ctx context.Context, filialID int64) ([]Reserva, error)
	Atualizar(ctx context.Context, r Reserva) error
	Confirmar(ctx context.Context, filialID, id int64, token string) error
	ContarParcelasVencidas(ctx context.Context, referencia time.Time) (int, error)
}

// InscricaoRepository stores public event registrations.
type InscricaoRepository interface {
	Criar(ctx context.Context, i Inscricao) (*Inscricao, error)
	ListarPorEvento(ctx context.Context, filialID, eventoID int64) ([]Inscricao, error)
}
