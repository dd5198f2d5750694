package calendario

import (
	"testing"

	"github.com/agendaparoquial/server/internal/store"
)

func TestPrecisaEscopo(t *testing.T) {
	pai := int64(10)

	tests := []struct {
		name   string
		evento store.Evento
		want   bool
	}{
		{"evento simples", store.Evento{ID: 1}, false},
		{"raiz de série", store.Evento{ID: 2, RecorrenciaFreq: store.RecorrenciaSemanal}, true},
		{"ocorrência filha", store.Evento{ID: 3, EventoPaiID: &pai}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrecisaEscopo(&tt.evento); got != tt.want {
				t.Errorf("PrecisaEscopo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEscopoEdicao(t *testing.T) {
	tests := []struct {
		in      string
		want    EscopoEdicao
		wantErr bool
	}{
		{"0", EdicaoEste, false},
		{"1", EdicaoEsteEFuturos, false},
		{"2", EdicaoTodos, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"todos", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEscopoEdicao(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEscopoEdicao(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseEscopoEdicao(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseEscopoExclusao(t *testing.T) {
	got, err := ParseEscopoExclusao("1")
	if err != nil {
		t.Fatalf("ParseEscopoExclusao: %v", err)
	}
	if got != ExclusaoEsteEFuturos {
		t.Errorf("ParseEscopoExclusao(\"1\") = %v, want ExclusaoEsteEFuturos", got)
	}
	if _, err := ParseEscopoExclusao("5"); err == nil {
		t.Error("ParseEscopoExclusao(\"5\") deveria falhar")
	}
}
