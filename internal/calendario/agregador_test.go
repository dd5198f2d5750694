package calendario

import (
	"testing"
	"time"

	"github.com/agendaparoquial/server/internal/store"
)

func tiposParaTeste() (map[int64]store.TipoEvento, map[int64]store.TipoDeSala) {
	tiposEvento := map[int64]store.TipoEvento{
		1: {ID: 1, Nome: "Casamento", Cor: "#AA0000"},
		2: {ID: 2, Nome: "Missa", Cor: "#00AA00"},
	}
	tiposSala := map[int64]store.TipoDeSala{
		1: {ID: 1, Nome: "Salão Principal", Cor: "#0000AA"},
		2: {ID: 2, Nome: "Capela", Cor: "#AAAA00"},
	}
	return tiposEvento, tiposSala
}

func TestAgregarSalaVinculadaNaoDuplica(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()
	salaID := int64(7)

	eventos := []store.Evento{
		{ID: 1, Titulo: "Casamento Silva", Inicio: dia(2026, time.June, 6), Fim: dia(2026, time.June, 6),
			DiaInteiro: true, TipoEventoID: 1, SalaID: &salaID},
	}
	salas := []store.Sala{
		{ID: salaID, Descricao: "Festa", Inicio: dia(2026, time.June, 6), Fim: dia(2026, time.June, 6),
			DiaInteiro: true, TipoDeSalaID: 1},
	}

	itens := Agregar(eventos, salas, tiposEvento, tiposSala)
	if len(itens) != 1 {
		t.Fatalf("esperado 1 item, obtido %d", len(itens))
	}
	item := itens[0]
	if item.Origem != OrigemEvento {
		t.Errorf("origem = %q, want evento", item.Origem)
	}
	if want := "Casamento Silva Salão Principal"; item.Titulo != want {
		t.Errorf("título = %q, want %q", item.Titulo, want)
	}
	if item.Cor != "#AA0000" {
		t.Errorf("cor = %q, want cor do tipo de evento", item.Cor)
	}
}

func TestAgregarSalaIndependente(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()

	salas := []store.Sala{
		{ID: 3, Descricao: "Reunião da pastoral", Inicio: dia(2026, time.June, 10), Fim: dia(2026, time.June, 10),
			DiaInteiro: true, TipoDeSalaID: 2},
	}

	itens := Agregar(nil, salas, tiposEvento, tiposSala)
	if len(itens) != 1 {
		t.Fatalf("esperado 1 item, obtido %d", len(itens))
	}
	item := itens[0]
	if item.Origem != OrigemSala {
		t.Errorf("origem = %q, want sala", item.Origem)
	}
	if want := "Capela - Reunião da pastoral"; item.Titulo != want {
		t.Errorf("título = %q, want %q", item.Titulo, want)
	}
	if item.Cor != "#AAAA00" {
		t.Errorf("cor = %q, want cor do tipo de sala", item.Cor)
	}
}

func TestAgregarOrdenacao(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()

	as10 := time.Date(2026, time.June, 6, 10, 0, 0, 0, time.UTC)
	as8 := time.Date(2026, time.June, 6, 8, 0, 0, 0, time.UTC)

	eventos := []store.Evento{
		{ID: 5, Titulo: "Missa das 10", Inicio: as10, Fim: as10.Add(time.Hour), TipoEventoID: 2},
		{ID: 4, Titulo: "Missa das 8", Inicio: as8, Fim: as8.Add(time.Hour), TipoEventoID: 2},
		{ID: 6, Titulo: "Confissões", Inicio: as8, Fim: as8.Add(2 * time.Hour), TipoEventoID: 2},
	}
	salas := []store.Sala{
		{ID: 1, Descricao: "Catequese", Inicio: as8, Fim: as8.Add(time.Hour), TipoDeSalaID: 2},
	}

	itens := Agregar(eventos, salas, tiposEvento, tiposSala)
	if len(itens) != 4 {
		t.Fatalf("esperado 4 itens, obtido %d", len(itens))
	}

	// Events first, ordered by start then ID; the independent room last even
	// though it starts earlier than some events.
	wantOrder := []struct {
		origem OrigemItem
		id     int64
	}{
		{OrigemEvento, 4},
		{OrigemEvento, 6},
		{OrigemEvento, 5},
		{OrigemSala, 1},
	}
	for i, want := range wantOrder {
		if itens[i].Origem != want.origem || itens[i].ID != want.id {
			t.Errorf("itens[%d] = %s/%d, want %s/%d", i, itens[i].Origem, itens[i].ID, want.origem, want.id)
		}
	}
}

func TestAgregarModoExibicao(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()

	eventos := []store.Evento{
		{ID: 1, Titulo: "Retiro", Inicio: dia(2026, time.June, 1), Fim: dia(2026, time.June, 2), DiaInteiro: true, TipoEventoID: 1},
		{ID: 2, Titulo: "Missa", Inicio: time.Date(2026, time.June, 1, 19, 0, 0, 0, time.UTC),
			Fim: time.Date(2026, time.June, 1, 20, 0, 0, 0, time.UTC), TipoEventoID: 2},
	}

	itens := Agregar(eventos, nil, tiposEvento, tiposSala)
	if itens[0].Modo != ModoBloco {
		t.Errorf("item dia inteiro: modo = %q, want bloco", itens[0].Modo)
	}
	if itens[1].Modo != ModoPonto {
		t.Errorf("item com horário: modo = %q, want ponto", itens[1].Modo)
	}
}

func TestResumirDia(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()

	d := dia(2026, time.June, 6)
	var eventos []store.Evento
	for i := int64(1); i <= 5; i++ {
		eventos = append(eventos, store.Evento{
			ID: i, Titulo: "Evento", Inicio: d.Add(time.Duration(i) * time.Hour),
			Fim: d.Add(time.Duration(i+1) * time.Hour), TipoEventoID: 1,
		})
	}

	itens := Agregar(eventos, nil, tiposEvento, tiposSala)
	cell := ResumirDia(itens, d)

	if len(cell.Itens) != 3 {
		t.Fatalf("esperado 3 itens visíveis, obtido %d", len(cell.Itens))
	}
	if cell.Ocultos != 2 {
		t.Errorf("ocultos = %d, want 2", cell.Ocultos)
	}
	if cell.RotuloMais != "+2 mais" {
		t.Errorf("rótulo = %q, want \"+2 mais\"", cell.RotuloMais)
	}
	// The earliest items are the visible ones.
	if cell.Itens[0].ID != 1 || cell.Itens[2].ID != 3 {
		t.Errorf("itens visíveis = %d..%d, want 1..3", cell.Itens[0].ID, cell.Itens[2].ID)
	}
}

func TestResumirDiaSemExcesso(t *testing.T) {
	tiposEvento, tiposSala := tiposParaTeste()

	d := dia(2026, time.June, 6)
	eventos := []store.Evento{
		{ID: 1, Titulo: "Único", Inicio: d, Fim: d, DiaInteiro: true, TipoEventoID: 1},
	}
	cell := ResumirDia(Agregar(eventos, nil, tiposEvento, tiposSala), d)
	if len(cell.Itens) != 1 || cell.Ocultos != 0 || cell.RotuloMais != "" {
		t.Errorf("dia sem excesso: itens=%d ocultos=%d rótulo=%q", len(cell.Itens), cell.Ocultos, cell.RotuloMais)
	}
}
