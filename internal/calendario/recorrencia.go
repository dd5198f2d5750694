package calendario

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/agendaparoquial/server/internal/store"
)

// maxOcorrenciasPorSerie caps generation so an open-ended or very long rule
// cannot flood the table.
const maxOcorrenciasPorSerie = 730

var freqRRule = map[store.RecorrenciaFreq]rrule.Frequency{
	store.RecorrenciaDiaria:  rrule.DAILY,
	store.RecorrenciaSemanal: rrule.WEEKLY,
	store.RecorrenciaMensal:  rrule.MONTHLY,
	store.RecorrenciaAnual:   rrule.YEARLY,
}

// GerarOcorrencias expands a recurrence root into its child occurrences,
// excluding the root's own date. Children mirror the root's fields, preserve
// its duration, and reference it through EventoPaiID.
func GerarOcorrencias(raiz *store.Evento) ([]store.Evento, error) {
	freq, ok := freqRRule[raiz.RecorrenciaFreq]
	if !ok {
		return nil, nil
	}
	if raiz.RecorrenciaFim == nil {
		return nil, fmt.Errorf("série %d sem data final de recorrência", raiz.ID)
	}

	// Until is inclusive of the whole final day.
	fim := raiz.RecorrenciaFim.In(raiz.Inicio.Location())
	until := time.Date(fim.Year(), fim.Month(), fim.Day(), 23, 59, 59, 0, fim.Location())

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: raiz.Inicio,
		Until:   until,
	})
	if err != nil {
		return nil, fmt.Errorf("regra de recorrência da série %d: %w", raiz.ID, err)
	}

	inicios := r.All()
	if len(inicios) > maxOcorrenciasPorSerie {
		inicios = inicios[:maxOcorrenciasPorSerie]
	}

	duracao := raiz.Fim.Sub(raiz.Inicio)
	var filhos []store.Evento
	for _, inicio := range inicios {
		if inicio.Equal(raiz.Inicio) {
			continue
		}
		filhos = append(filhos, store.Evento{
			FilialID:         raiz.FilialID,
			Titulo:           raiz.Titulo,
			Descricao:        raiz.Descricao,
			Inicio:           inicio,
			Fim:              inicio.Add(duracao),
			DiaInteiro:       raiz.DiaInteiro,
			TipoEventoID:     raiz.TipoEventoID,
			Compartilhamento: raiz.Compartilhamento,
			InteressadoID:    raiz.InteressadoID,
			RecorrenciaFreq:  raiz.RecorrenciaFreq,
			RecorrenciaFim:   raiz.RecorrenciaFim,
			EventoPaiID:      &raiz.ID,
		})
	}
	return filhos, nil
}
