package financeiro

import (
	"testing"
	"time"
)

func TestDistribuir(t *testing.T) {
	tests := []struct {
		name  string
		total Centavos
		sinal Centavos
		n     int
		want  []Centavos
	}{
		{"exemplo da documentação", 100000, 20000, 3, []Centavos{26668, 26666, 26666}},
		{"divisão exata", 90000, 0, 3, []Centavos{30000, 30000, 30000}},
		{"parcela única", 100000, 20000, 1, []Centavos{80000}},
		{"sinal maior que o total", 10000, 20000, 2, []Centavos{0, 0}},
		{"um centavo", 1, 0, 3, []Centavos{1, 0, 0}},
		{"zero parcelas", 100000, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribuir(tt.total, tt.sinal, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Distribuir() retornou %d valores, esperava %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("parcela %d = %v, esperava %v", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDistribuir_SomaExata(t *testing.T) {
	// The sum of all installments must equal total-sinal to the cent,
	// for any combination of values.
	cases := []struct {
		total, sinal Centavos
		n            int
	}{
		{100000, 20000, 3},
		{99999, 0, 7},
		{123456789, 987, 13},
		{1, 0, 100},
		{55555, 55554, 2},
	}
	for _, c := range cases {
		valores := Distribuir(c.total, c.sinal, c.n)
		var soma Centavos
		for _, v := range valores {
			soma += v
		}
		restante := c.total - c.sinal
		if restante < 0 {
			restante = 0
		}
		if soma != restante {
			t.Errorf("Distribuir(%d, %d, %d): soma %d, esperava %d", c.total, c.sinal, c.n, soma, restante)
		}
	}
}

func TestRedistribuir_PreservaVencimentos(t *testing.T) {
	hoje := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	plano := []Parcela{
		{Numero: 1, Valor: 1, Vencimento: hoje, Sinal: true},
		{Numero: 2, Valor: 2, Vencimento: hoje.AddDate(0, 1, 0)},
	}

	out := Redistribuir(plano, 10000, 0)
	if out[0].Valor != 5000 || out[1].Valor != 5000 {
		t.Errorf("valores = %v/%v, esperava 5000/5000", out[0].Valor, out[1].Valor)
	}
	if !out[0].Vencimento.Equal(hoje) || !out[1].Vencimento.Equal(hoje.AddDate(0, 1, 0)) {
		t.Error("vencimentos foram alterados pela redistribuição")
	}
	if !out[0].Sinal {
		t.Error("flag de sinal foi perdida pela redistribuição")
	}
}

func TestRedistribuir_PlanoVazio(t *testing.T) {
	if out := Redistribuir(nil, 100000, 0); len(out) != 0 {
		t.Errorf("Redistribuir(nil) retornou %d parcelas, esperava 0", len(out))
	}
}

func TestAdicionar(t *testing.T) {
	hoje := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	plano := Adicionar(nil, hoje, 10000, 0)
	if len(plano) != 1 {
		t.Fatalf("esperava 1 parcela, obteve %d", len(plano))
	}
	if !plano[0].Vencimento.Equal(hoje) {
		t.Errorf("primeira parcela vence em %v, esperava hoje", plano[0].Vencimento)
	}
	if plano[0].Valor != 10000 {
		t.Errorf("valor = %v, esperava 10000", plano[0].Valor)
	}

	plano = Adicionar(plano, hoje, 10000, 0)
	if len(plano) != 2 {
		t.Fatalf("esperava 2 parcelas, obteve %d", len(plano))
	}
	if want := hoje.Add(30 * 24 * time.Hour); !plano[1].Vencimento.Equal(want) {
		t.Errorf("segunda parcela vence em %v, esperava %v", plano[1].Vencimento, want)
	}
	if plano[0].Valor+plano[1].Valor != 10000 {
		t.Errorf("soma = %v, esperava 10000", plano[0].Valor+plano[1].Valor)
	}
}

func TestRemover(t *testing.T) {
	hoje := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var plano []Parcela
	for i := 0; i < 3; i++ {
		plano = Adicionar(plano, hoje, 9000, 0)
	}

	plano = Remover(plano, 1, 9000, 0)
	if len(plano) != 2 {
		t.Fatalf("esperava 2 parcelas, obteve %d", len(plano))
	}
	if plano[0].Numero != 1 || plano[1].Numero != 2 {
		t.Errorf("numeração = %d/%d, esperava 1/2", plano[0].Numero, plano[1].Numero)
	}
	if plano[0].Valor+plano[1].Valor != 9000 {
		t.Errorf("soma = %v, esperava 9000", plano[0].Valor+plano[1].Valor)
	}

	// Índice fora do intervalo não altera o plano.
	if out := Remover(plano, 5, 9000, 0); len(out) != 2 {
		t.Errorf("remoção fora do intervalo alterou o plano")
	}
}

func TestCentavos(t *testing.T) {
	if got := DeDecimal(266.68); got != 26668 {
		t.Errorf("DeDecimal(266.68) = %d, esperava 26668", got)
	}
	if got := DeDecimal(0.1 + 0.2); got != 30 {
		t.Errorf("DeDecimal(0.3~) = %d, esperava 30", got)
	}
	if got := Centavos(26668).String(); got != "266.68" {
		t.Errorf("String() = %q, esperava \"266.68\"", got)
	}
	if got := Centavos(-105).String(); got != "-1.05" {
		t.Errorf("String() = %q, esperava \"-1.05\"", got)
	}

	for _, s := range []string{"266.68", "266,68"} {
		got, err := ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", s, err)
		}
		if got != 26668 {
			t.Errorf("ParseDecimal(%q) = %d, esperava 26668", s, got)
		}
	}
	if got, err := ParseDecimal(""); err != nil || got != 0 {
		t.Errorf("ParseDecimal(\"\") = %d, %v; esperava 0, nil", got, err)
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Error("ParseDecimal(\"abc\") deveria falhar")
	}
}
