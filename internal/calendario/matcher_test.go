package calendario

import (
	"testing"
	"time"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func TestCoincideComDiaDiaInteiro(t *testing.T) {
	inicio := dia(2026, time.June, 1)
	fim := dia(2026, time.June, 3)

	tests := []struct {
		name string
		dia  time.Time
		want bool
	}{
		{"primeiro dia", dia(2026, time.June, 1), true},
		{"dia intermediário", dia(2026, time.June, 2), true},
		{"último dia inclusivo", dia(2026, time.June, 3), true},
		{"véspera", dia(2026, time.May, 31), false},
		{"dia seguinte", dia(2026, time.June, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoincideComDia(inicio, fim, true, tt.dia); got != tt.want {
				t.Errorf("CoincideComDia(%v) = %v, want %v", tt.dia, got, tt.want)
			}
		})
	}
}

func TestCoincideComDiaComHorario(t *testing.T) {
	inicio := time.Date(2026, time.June, 1, 22, 0, 0, 0, time.UTC)
	fim := time.Date(2026, time.June, 2, 2, 0, 0, 0, time.UTC)

	if !CoincideComDia(inicio, fim, false, dia(2026, time.June, 1)) {
		t.Error("item com horário deve aparecer no dia de início")
	}
	// Timed items do not span: day-level filtering only looks at the start.
	if CoincideComDia(inicio, fim, false, dia(2026, time.June, 2)) {
		t.Error("item com horário não deve aparecer fora do dia de início")
	}
}

func TestCoincideComDiaDuracaoZero(t *testing.T) {
	instante := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
	if !CoincideComDia(instante, instante, false, dia(2026, time.June, 1)) {
		t.Error("item de duração zero deve aparecer no seu dia")
	}
	if !CoincideComDia(instante, instante, true, dia(2026, time.June, 1)) {
		t.Error("item dia inteiro de um só dia deve aparecer nesse dia")
	}
	if CoincideComDia(instante, instante, true, dia(2026, time.June, 2)) {
		t.Error("item de um só dia não deve aparecer no dia seguinte")
	}
}

func TestFimExclusivo(t *testing.T) {
	fim := time.Date(2026, time.June, 3, 15, 30, 0, 0, time.UTC)
	want := dia(2026, time.June, 4)
	if got := FimExclusivo(fim); !got.Equal(want) {
		t.Errorf("FimExclusivo = %v, want %v", got, want)
	}
}
