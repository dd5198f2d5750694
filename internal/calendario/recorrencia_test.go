package calendario

import (
	"testing"
	"time"

	"github.com/agendaparoquial/server/internal/store"
)

func raizSemanal() *store.Evento {
	fim := time.Date(2026, time.June, 29, 0, 0, 0, 0, time.UTC)
	return &store.Evento{
		ID:              42,
		FilialID:        1,
		Titulo:          "Catequese",
		Inicio:          time.Date(2026, time.June, 1, 19, 0, 0, 0, time.UTC),
		Fim:             time.Date(2026, time.June, 1, 21, 0, 0, 0, time.UTC),
		TipoEventoID:    2,
		RecorrenciaFreq: store.RecorrenciaSemanal,
		RecorrenciaFim:  &fim,
	}
}

func TestGerarOcorrenciasSemanal(t *testing.T) {
	filhos, err := GerarOcorrencias(raizSemanal())
	if err != nil {
		t.Fatalf("GerarOcorrencias: %v", err)
	}

	// Mondays June 8, 15, 22, 29; the June 1 root is not duplicated.
	if len(filhos) != 4 {
		t.Fatalf("esperado 4 ocorrências, obtido %d", len(filhos))
	}
	want := []time.Time{
		time.Date(2026, time.June, 8, 19, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 15, 19, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 22, 19, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 29, 19, 0, 0, 0, time.UTC),
	}
	for i, f := range filhos {
		if !f.Inicio.Equal(want[i]) {
			t.Errorf("filhos[%d].Inicio = %v, want %v", i, f.Inicio, want[i])
		}
		if d := f.Fim.Sub(f.Inicio); d != 2*time.Hour {
			t.Errorf("filhos[%d] duração = %v, want 2h", i, d)
		}
		if f.EventoPaiID == nil || *f.EventoPaiID != 42 {
			t.Errorf("filhos[%d].EventoPaiID = %v, want 42", i, f.EventoPaiID)
		}
		if f.RecorrenciaFreq != store.RecorrenciaSemanal {
			t.Errorf("filhos[%d] deve espelhar a frequência da raiz", i)
		}
	}
}

func TestGerarOcorrenciasEspelhaCampos(t *testing.T) {
	raiz := raizSemanal()
	interessado := int64(9)
	raiz.InteressadoID = &interessado
	raiz.Compartilhamento = store.CompartilhamentoDiocese

	filhos, err := GerarOcorrencias(raiz)
	if err != nil {
		t.Fatalf("GerarOcorrencias: %v", err)
	}
	for _, f := range filhos {
		if f.Titulo != raiz.Titulo || f.TipoEventoID != raiz.TipoEventoID {
			t.Error("ocorrência deve espelhar título e tipo da raiz")
		}
		if f.Compartilhamento != store.CompartilhamentoDiocese {
			t.Error("ocorrência deve espelhar o compartilhamento da raiz")
		}
		if f.InteressadoID == nil || *f.InteressadoID != interessado {
			t.Error("ocorrência deve espelhar o interessado da raiz")
		}
		if f.ID != 0 {
			t.Error("ocorrência nova não deve ter ID")
		}
	}
}

func TestGerarOcorrenciasNaoRecorrente(t *testing.T) {
	e := &store.Evento{ID: 1, RecorrenciaFreq: store.RecorrenciaNenhuma}
	filhos, err := GerarOcorrencias(e)
	if err != nil {
		t.Fatalf("GerarOcorrencias: %v", err)
	}
	if len(filhos) != 0 {
		t.Errorf("evento não recorrente gerou %d ocorrências", len(filhos))
	}
}

func TestGerarOcorrenciasSemFim(t *testing.T) {
	raiz := raizSemanal()
	raiz.RecorrenciaFim = nil
	if _, err := GerarOcorrencias(raiz); err == nil {
		t.Error("série sem data final deveria falhar")
	}
}

func TestGerarOcorrenciasMensalUltimoDiaInclusivo(t *testing.T) {
	fim := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	raiz := &store.Evento{
		ID:              7,
		Titulo:          "Primeira sexta",
		Inicio:          time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
		Fim:             time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC),
		RecorrenciaFreq: store.RecorrenciaMensal,
		RecorrenciaFim:  &fim,
	}
	filhos, err := GerarOcorrencias(raiz)
	if err != nil {
		t.Fatalf("GerarOcorrencias: %v", err)
	}
	// July 1, August 1 and September 1: the end date itself still counts.
	if len(filhos) != 3 {
		t.Fatalf("esperado 3 ocorrências, obtido %d", len(filhos))
	}
	last := filhos[len(filhos)-1]
	if !last.Inicio.Equal(time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("última ocorrência = %v, want 1 de setembro", last.Inicio)
	}
}
