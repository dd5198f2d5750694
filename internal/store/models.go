package store

import (
	"errors"
	"time"

	"github.com/agendaparoquial/server/internal/financeiro"
)

// RecorrenciaFreq is the recurrence frequency of an event series root.
type RecorrenciaFreq string

const (
	RecorrenciaNenhuma RecorrenciaFreq = "nenhuma"
	RecorrenciaDiaria  RecorrenciaFreq = "diaria"
	RecorrenciaSemanal RecorrenciaFreq = "semanal"
	RecorrenciaMensal  RecorrenciaFreq = "mensal"
	RecorrenciaAnual   RecorrenciaFreq = "anual"
)

// Compartilhamento is the sharing level of an event.
type Compartilhamento string

const (
	CompartilhamentoLocal          Compartilhamento = "local"
	CompartilhamentoInterParoquial Compartilhamento = "interparoquial"
	CompartilhamentoDiocese        Compartilhamento = "diocese"
)

// SituacaoSala is the approval status of a room booking.
type SituacaoSala string

const (
	SalaPendente  SituacaoSala = "pendente"
	SalaAprovada  SituacaoSala = "aprovada"
	SalaRecusada  SituacaoSala = "recusada"
	SalaCancelada SituacaoSala = "cancelada"
)

// Evento is a calendar event. It is either a recurrence root
// (RecorrenciaFreq != nenhuma, no parent), a generated child occurrence
// (EventoPaiID set, recurrence fields mirrored from the parent), or a
// standalone non-recurring event.
type Evento struct {
	ID               int64
	FilialID         int64
	Titulo           string
	Descricao        string
	Inicio           time.Time
	Fim              time.Time
	DiaInteiro       bool
	TipoEventoID     int64
	Compartilhamento Compartilhamento
	Slug             *string
	SalaID           *int64
	InteressadoID    *int64
	RecorrenciaFreq  RecorrenciaFreq
	RecorrenciaFim   *time.Time
	EventoPaiID      *int64
	CriadoEm         time.Time
	AtualizadoEm     time.Time
}

// ErrSerieInvalida is returned when an event mixes root and child recurrence fields.
var ErrSerieInvalida = errors.New("evento recorrente não pode ter evento pai")

// ValidarSerie enforces the root-or-child-or-standalone invariant.
func (e *Evento) ValidarSerie() error {
	if e.EventoPaiID != nil && e.RecorrenciaFreq != RecorrenciaNenhuma && e.RecorrenciaFim == nil {
		// Children mirror the parent's frequency but always carry its end date.
		return ErrSerieInvalida
	}
	if e.EventoPaiID == nil {
		return nil
	}
	if *e.EventoPaiID == e.ID && e.ID != 0 {
		return ErrSerieInvalida
	}
	return nil
}

// Recorrente reports whether the event belongs to a recurring series,
// either as its root or as a generated child occurrence.
func (e *Evento) Recorrente() bool {
	return e.RecorrenciaFreq != RecorrenciaNenhuma || e.EventoPaiID != nil
}

// Sala is a room booking. It may exist independently or be owned by an
// Evento through the event's SalaID reference.
type Sala struct {
	ID               int64
	FilialID         int64
	Descricao        string
	Inicio           time.Time
	Fim              time.Time
	DiaInteiro       bool
	TipoDeSalaID     int64
	Situacao         SituacaoSala
	SolicitanteEmail *string
	CriadaEm         time.Time
	AtualizadaEm     time.Time
}

// TipoEvento is a color-coded event category.
type TipoEvento struct {
	ID                int64
	FilialID          int64
	Nome              string
	Cor               string
	CategoriaContrato string
	CriadoEm          time.Time
}

// TipoDeSala is a room category with a seating capacity.
type TipoDeSala struct {
	ID         int64
	FilialID   int64
	Nome       string
	Cor        string
	Capacidade int
	CriadoEm   time.Time
}

// Interessado is the contracting party associated with a contract-bearing event.
type Interessado struct {
	ID         int64
	FilialID   int64
	Nome       string
	Documento  string
	Email      string
	Telefone   string
	Logradouro string
	Cidade     string
	UF         string
	CEP        string
	CriadoEm   time.Time
}

// Reserva is the financial/contract record linking an Evento to an Interessado.
type Reserva struct {
	ID               int64
	FilialID         int64
	EventoID         int64
	InteressadoID    int64
	ValorTotal       financeiro.Centavos
	ValorSinal       financeiro.Centavos
	VencimentoSinal  *time.Time
	Participantes    int
	Observacoes      string
	Token            string
	Confirmada       bool
	DadosPreenchidos bool
	Parcelas         []Parcela
	CriadaEm         time.Time
	AtualizadaEm     time.Time
}

// Parcela is a single installment of a Reserva's payment plan.
type Parcela struct {
	ID         int64
	ReservaID  int64
	Numero     int
	Valor      financeiro.Centavos
	Vencimento time.Time
	Sinal      bool
}

// Inscricao is a self-service registration submitted through a public event link.
type Inscricao struct {
	ID        int64
	FilialID  int64
	EventoID  int64
	Nome      string
	Documento string
	Email     string
	Telefone  string
	CriadaEm  time.Time
}
