package calendario

import (
	"fmt"
	"sort"
	"time"

	"github.com/agendaparoquial/server/internal/store"
)

// maxItensPorDia is how many items a day cell displays before summarizing.
const maxItensPorDia = 3

// OrigemItem distinguishes event-backed items from independent room bookings.
type OrigemItem string

const (
	OrigemEvento OrigemItem = "evento"
	OrigemSala   OrigemItem = "sala"
)

// ModoExibicao tells the client how to render an item.
type ModoExibicao string

const (
	// ModoBloco renders a solid colored block (all-day items).
	ModoBloco ModoExibicao = "bloco"
	// ModoPonto renders a colored dot plus time-range text on a transparent
	// background (timed items).
	ModoPonto ModoExibicao = "ponto"
)

// ItemCalendario is one displayable entry of the unified calendar.
type ItemCalendario struct {
	Origem     OrigemItem
	ID         int64
	Titulo     string
	Inicio     time.Time
	Fim        time.Time
	DiaInteiro bool
	Cor        string
	Modo       ModoExibicao
}

// DiaCalendario is the per-day cell: at most maxItensPorDia visible items and
// an overflow summary for the rest.
type DiaCalendario struct {
	Dia        time.Time
	Itens      []ItemCalendario
	Ocultos    int
	RotuloMais string
}

// Agregar merges events and independent room bookings into a single
// displayable item set. Room bookings referenced by an event's SalaID are
// folded into that event's entry instead of appearing on their own, so a
// booked room never shows twice.
//
// Within the result events come before independent rooms; each group is
// ordered by start time, then ID.
func Agregar(eventos []store.Evento, salas []store.Sala,
	tiposEvento map[int64]store.TipoEvento, tiposSala map[int64]store.TipoDeSala) []ItemCalendario {

	salasPorID := make(map[int64]store.Sala, len(salas))
	for _, s := range salas {
		salasPorID[s.ID] = s
	}

	// Rooms owned by an event are rendered as part of it.
	vinculadas := make(map[int64]struct{})
	for _, e := range eventos {
		if e.SalaID != nil {
			vinculadas[*e.SalaID] = struct{}{}
		}
	}

	itens := make([]ItemCalendario, 0, len(eventos)+len(salas))
	for _, e := range eventos {
		titulo := e.Titulo
		if e.SalaID != nil {
			if sala, ok := salasPorID[*e.SalaID]; ok {
				if tipo, ok := tiposSala[sala.TipoDeSalaID]; ok {
					titulo = fmt.Sprintf("%s %s", e.Titulo, tipo.Nome)
				}
			}
		}
		itens = append(itens, ItemCalendario{
			Origem:     OrigemEvento,
			ID:         e.ID,
			Titulo:     titulo,
			Inicio:     e.Inicio,
			Fim:        e.Fim,
			DiaInteiro: e.DiaInteiro,
			Cor:        tiposEvento[e.TipoEventoID].Cor,
			Modo:       modo(e.DiaInteiro),
		})
	}

	var independentes []ItemCalendario
	for _, s := range salas {
		if _, ok := vinculadas[s.ID]; ok {
			continue
		}
		tipo := tiposSala[s.TipoDeSalaID]
		independentes = append(independentes, ItemCalendario{
			Origem:     OrigemSala,
			ID:         s.ID,
			Titulo:     fmt.Sprintf("%s - %s", tipo.Nome, s.Descricao),
			Inicio:     s.Inicio,
			Fim:        s.Fim,
			DiaInteiro: s.DiaInteiro,
			Cor:        tipo.Cor,
			Modo:       modo(s.DiaInteiro),
		})
	}

	ordenar(itens)
	ordenar(independentes)
	return append(itens, independentes...)
}

func modo(diaInteiro bool) ModoExibicao {
	if diaInteiro {
		return ModoBloco
	}
	return ModoPonto
}

func ordenar(itens []ItemCalendario) {
	sort.SliceStable(itens, func(i, j int) bool {
		if !itens[i].Inicio.Equal(itens[j].Inicio) {
			return itens[i].Inicio.Before(itens[j].Inicio)
		}
		return itens[i].ID < itens[j].ID
	})
}

// ItensDoDia filters aggregated items down to those visible on a day, keeping
// the aggregated ordering.
func ItensDoDia(itens []ItemCalendario, dia time.Time) []ItemCalendario {
	var out []ItemCalendario
	for _, item := range itens {
		if CoincideComDia(item.Inicio, item.Fim, item.DiaInteiro, dia) {
			out = append(out, item)
		}
	}
	return out
}

// ResumirDia builds the day cell: the first maxItensPorDia items and a
// "+{n} mais" summary for the overflow.
func ResumirDia(itens []ItemCalendario, dia time.Time) DiaCalendario {
	doDia := ItensDoDia(itens, dia)
	cell := DiaCalendario{Dia: truncarDia(dia), Itens: doDia}
	if len(doDia) > maxItensPorDia {
		cell.Itens = doDia[:maxItensPorDia]
		cell.Ocultos = len(doDia) - maxItensPorDia
		cell.RotuloMais = fmt.Sprintf("+%d mais", cell.Ocultos)
	}
	return cell
}
