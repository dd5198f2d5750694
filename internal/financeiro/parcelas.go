package financeiro

import "time"

// Parcela is one installment of a payment plan as seen by the distributor.
// Persistence identifiers live in the store layer; the distributor only
// cares about order, value and due date.
type Parcela struct {
	Numero     int
	Valor      Centavos
	Vencimento time.Time
	Sinal      bool
}

// prazoEntreParcelas is the default gap between consecutive due dates.
const prazoEntreParcelas = 30 * 24 * time.Hour

// Distribuir splits max(0, total-sinal) across n installments so the values
// sum exactly to the remaining amount. Every installment gets the floored
// per-installment share; the first one also absorbs the remainder, keeping
// rounding slack in a single place instead of spreading error.
func Distribuir(total, sinal Centavos, n int) []Centavos {
	if n <= 0 {
		return nil
	}
	restante := total - sinal
	if restante < 0 {
		restante = 0
	}

	base := restante / Centavos(n)
	sobra := restante - base*Centavos(n)

	valores := make([]Centavos, n)
	for i := range valores {
		valores[i] = base
	}
	valores[0] += sobra
	return valores
}

// Redistribuir rewrites each installment's value from total/sinal, preserving
// due dates and the deposit flag. An empty plan is returned unchanged.
func Redistribuir(plano []Parcela, total, sinal Centavos) []Parcela {
	if len(plano) == 0 {
		return plano
	}
	valores := Distribuir(total, sinal, len(plano))
	out := make([]Parcela, len(plano))
	for i, p := range plano {
		p.Valor = valores[i]
		out[i] = p
	}
	return out
}

// Adicionar appends an installment due 30 days after the last one (or on the
// reference date when the plan is empty) and redistributes values.
func Adicionar(plano []Parcela, hoje time.Time, total, sinal Centavos) []Parcela {
	vencimento := hoje
	if len(plano) > 0 {
		vencimento = plano[len(plano)-1].Vencimento.Add(prazoEntreParcelas)
	}
	plano = append(plano, Parcela{
		Numero:     len(plano) + 1,
		Vencimento: vencimento,
	})
	return Redistribuir(plano, total, sinal)
}

// Remover drops the installment at index idx, renumbers the rest starting at 1
// and redistributes values. Out-of-range indexes leave the plan untouched.
func Remover(plano []Parcela, idx int, total, sinal Centavos) []Parcela {
	if idx < 0 || idx >= len(plano) {
		return plano
	}
	out := make([]Parcela, 0, len(plano)-1)
	out = append(out, plano[:idx]...)
	out = append(out, plano[idx+1:]...)
	for i := range out {
		out[i].Numero = i + 1
	}
	return Redistribuir(out, total, sinal)
}
