package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agendaparoquial/server/internal/auth"
	"github.com/agendaparoquial/server/internal/financeiro"
	httperr "github.com/agendaparoquial/server/internal/http/errors"
	"github.com/agendaparoquial/server/internal/store"
)

type reservaRequest struct {
	EventoID           int64      `json:"eventoId" validate:"required,gt=0"`
	InteressadoID      int64      `json:"interessadoId" validate:"required,gt=0"`
	ValorTotal         float64    `json:"valorTotal" validate:"gte=0"`
	ValorSinal         float64    `json:"valorSinal" validate:"gte=0"`
	VencimentoSinal    *time.Time `json:"vencimentoSinal,omitempty"`
	NumeroParcelas     int        `json:"numeroParcelas" validate:"gte=0,lte=60"`
	PrimeiroVencimento *time.Time `json:"primeiroVencimento,omitempty"`
	Participantes      int        `json:"participantes" validate:"gte=0"`
	Observacoes        string     `json:"observacoes" validate:"max=2000"`
	DadosPreenchidos   bool       `json:"dadosPreenchidos"`
}

type confirmacaoRequest struct {
	Token string `json:"token" validate:"required,uuid4"`
}

type parcelaDTO struct {
	Numero     int       `json:"numero"`
	Valor      float64   `json:"valor"`
	Vencimento time.Time `json:"vencimento"`
	Sinal      bool      `json:"sinal"`
}

type reservaDTO struct {
	ID               int64        `json:"id"`
	FilialID         int64        `json:"filialId"`
	EventoID         int64        `json:"eventoId"`
	InteressadoID    int64        `json:"interessadoId"`
	ValorTotal       float64      `json:"valorTotal"`
	ValorSinal       float64      `json:"valorSinal"`
	VencimentoSinal  *time.Time   `json:"vencimentoSinal,omitempty"`
	Participantes    int          `json:"participantes"`
	Observacoes      string       `json:"observacoes"`
	Token            string       `json:"token"`
	Confirmada       bool         `json:"confirmada"`
	DadosPreenchidos bool         `json:"dadosPreenchidos"`
	Parcelas         []parcelaDTO `json:"parcelas"`
}

func reservaParaDTO(res store.Reserva) reservaDTO {
	parcelas := make([]parcelaDTO, 0, len(res.Parcelas))
	for _, p := range res.Parcelas {
		parcelas = append(parcelas, parcelaDTO{
			Numero:     p.Numero,
			Valor:      p.Valor.Decimal(),
			Vencimento: p.Vencimento,
			Sinal:      p.Sinal,
		})
	}
	return reservaDTO{
		ID:               res.ID,
		FilialID:         res.FilialID,
		EventoID:         res.EventoID,
		InteressadoID:    res.InteressadoID,
		ValorTotal:       res.ValorTotal.Decimal(),
		ValorSinal:       res.ValorSinal.Decimal(),
		VencimentoSinal:  res.VencimentoSinal,
		Participantes:    res.Participantes,
		Observacoes:      res.Observacoes,
		Token:            res.Token,
		Confirmada:       res.Confirmada,
		DadosPreenchidos: res.DadosPreenchidos,
		Parcelas:         parcelas,
	}
}

func (a *API) ListarReservas(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	reservas, err := a.store.Reservas.Listar(r.Context(), filialID)
	if err != nil {
		httperr.InternalError(w, r, err, "listar reservas")
		return
	}
	dtos := make([]reservaDTO, 0, len(reservas))
	for _, res := range reservas {
		dtos = append(dtos, reservaParaDTO(res))
	}
	httperr.JSON(w, http.StatusOK, dtos)
}

func (a *API) BuscarReserva(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	res, err := a.store.Reservas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar reserva")
		return
	}
	httperr.JSON(w, http.StatusOK, reservaParaDTO(*res))
}

// BuscarReservaDoEvento resolves the booking attached to an event, which is
// how the event detail screen reaches the financial plan.
func (a *API) BuscarReservaDoEvento(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoLer})
	if !ok {
		return
	}
	eventoID, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	res, err := a.store.Reservas.BuscarPorEvento(r.Context(), filialID, eventoID)
	if err != nil {
		responderErroStore(w, r, err, "buscar reserva do evento")
		return
	}
	httperr.JSON(w, http.StatusOK, reservaParaDTO(*res))
}

func (a *API) CriarReserva(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoCriar})
	if !ok {
		return
	}
	var req reservaRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}

	total := financeiro.DeDecimal(req.ValorTotal)
	sinal := financeiro.DeDecimal(req.ValorSinal)
	if sinal > total {
		httperr.Mensagem(w, http.StatusBadRequest,
			fmt.Sprintf("sinal %s maior que o valor total %s", sinal, total))
		return
	}
	if sinal > 0 && req.VencimentoSinal == nil {
		httperr.Mensagem(w, http.StatusBadRequest, "sinal exige vencimento")
		return
	}

	res := store.Reserva{
		FilialID:         filialID,
		EventoID:         req.EventoID,
		InteressadoID:    req.InteressadoID,
		ValorTotal:       total,
		ValorSinal:       sinal,
		VencimentoSinal:  req.VencimentoSinal,
		Participantes:    req.Participantes,
		Observacoes:      req.Observacoes,
		Token:            uuid.NewString(),
		DadosPreenchidos: req.DadosPreenchidos,
		Parcelas:         a.montarParcelas(&req, total, sinal),
	}

	criada, err := a.store.Reservas.Criar(r.Context(), res)
	if err != nil {
		responderErroStore(w, r, err, "criar reserva")
		return
	}
	httperr.JSON(w, http.StatusCreated, reservaParaDTO(*criada))
}

// montarParcelas builds the initial installment plan: an optional deposit
// entry followed by NumeroParcelas equal shares, due 30 days apart.
func (a *API) montarParcelas(req *reservaRequest, total, sinal financeiro.Centavos) []store.Parcela {
	var parcelas []store.Parcela
	if sinal > 0 && req.VencimentoSinal != nil {
		parcelas = append(parcelas, store.Parcela{
			Numero:     0,
			Valor:      sinal,
			Vencimento: *req.VencimentoSinal,
			Sinal:      true,
		})
	}

	valores := financeiro.Distribuir(total, sinal, req.NumeroParcelas)
	primeiro := a.agora().AddDate(0, 0, 30)
	if req.PrimeiroVencimento != nil {
		primeiro = *req.PrimeiroVencimento
	}
	for i, valor := range valores {
		parcelas = append(parcelas, store.Parcela{
			Numero:     i + 1,
			Valor:      valor,
			Vencimento: primeiro.AddDate(0, 0, 30*i),
		})
	}
	return parcelas
}

// AtualizarReserva rewrites the contract fields and redistributes the
// existing plan over the new values, preserving due dates.
func (a *API) AtualizarReserva(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req reservaRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}

	atual, err := a.store.Reservas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar reserva para atualizar")
		return
	}

	total := financeiro.DeDecimal(req.ValorTotal)
	sinal := financeiro.DeDecimal(req.ValorSinal)
	if sinal > total {
		httperr.Mensagem(w, http.StatusBadRequest,
			fmt.Sprintf("sinal %s maior que o valor total %s", sinal, total))
		return
	}
	vencimentoSinal := req.VencimentoSinal
	if sinal > 0 && vencimentoSinal == nil {
		// Requests that change values without resending the deposit due date
		// keep the one already on the plan.
		for _, p := range atual.Parcelas {
			if p.Sinal {
				v := p.Vencimento
				vencimentoSinal = &v
				break
			}
		}
		if vencimentoSinal == nil {
			httperr.Mensagem(w, http.StatusBadRequest, "sinal exige vencimento")
			return
		}
	}

	atual.InteressadoID = req.InteressadoID
	atual.ValorTotal = total
	atual.ValorSinal = sinal
	atual.VencimentoSinal = vencimentoSinal
	atual.Participantes = req.Participantes
	atual.Observacoes = req.Observacoes
	atual.DadosPreenchidos = req.DadosPreenchidos
	atual.Parcelas = redistribuirPlano(atual.Parcelas, total, sinal, vencimentoSinal)

	if err := a.store.Reservas.Atualizar(r.Context(), *atual); err != nil {
		responderErroStore(w, r, err, "atualizar reserva")
		return
	}
	httperr.JSON(w, http.StatusOK, reservaParaDTO(*atual))
}

// AdicionarParcela appends one installment to the plan and redistributes.
func (a *API) AdicionarParcela(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	res, err := a.store.Reservas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar reserva")
		return
	}

	plano := financeiro.Adicionar(planoFinanceiro(res.Parcelas), a.agora(), res.ValorTotal, res.ValorSinal)
	res.Parcelas = planoPersistido(res.ID, plano, res.Parcelas, res.ValorSinal, res.VencimentoSinal)

	if err := a.store.Reservas.Atualizar(r.Context(), *res); err != nil {
		responderErroStore(w, r, err, "adicionar parcela")
		return
	}
	httperr.JSON(w, http.StatusOK, reservaParaDTO(*res))
}

// RemoverParcela drops one installment by its number and redistributes.
func (a *API) RemoverParcela(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	numero, err := urlInt64(r, "numero")
	if err != nil || numero < 1 {
		httperr.Mensagem(w, http.StatusBadRequest, "número de parcela inválido")
		return
	}
	res, err := a.store.Reservas.BuscarPorID(r.Context(), filialID, id)
	if err != nil {
		responderErroStore(w, r, err, "buscar reserva")
		return
	}

	plano := financeiro.Remover(planoFinanceiro(res.Parcelas), int(numero)-1, res.ValorTotal, res.ValorSinal)
	res.Parcelas = planoPersistido(res.ID, plano, res.Parcelas, res.ValorSinal, res.VencimentoSinal)

	if err := a.store.Reservas.Atualizar(r.Context(), *res); err != nil {
		responderErroStore(w, r, err, "remover parcela")
		return
	}
	httperr.JSON(w, http.StatusOK, reservaParaDTO(*res))
}

// ConfirmarReserva marks the contract confirmed when the presented token
// matches.
func (a *API) ConfirmarReserva(w http.ResponseWriter, r *http.Request) {
	filialID, ok := a.autorizar(w, r, auth.Capacidade{Recurso: auth.RecursoReserva, Acao: auth.AcaoEditar})
	if !ok {
		return
	}
	id, err := urlInt64(r, "id")
	if err != nil {
		httperr.BadRequest(w, r, err, "id inválido")
		return
	}
	var req confirmacaoRequest
	if err := a.decodificar(r, &req); err != nil {
		httperr.BadRequest(w, r, err, mensagemValidacao(err))
		return
	}
	if err := a.store.Reservas.Confirmar(r.Context(), filialID, id, req.Token); err != nil {
		responderErroStore(w, r, err, "confirmar reserva")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// planoFinanceiro extracts the non-deposit installments for the distributor.
func planoFinanceiro(parcelas []store.Parcela) []financeiro.Parcela {
	var plano []financeiro.Parcela
	for _, p := range parcelas {
		if p.Sinal {
			continue
		}
		plano = append(plano, financeiro.Parcela{
			Numero:     p.Numero,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
			Sinal:      false,
		})
	}
	return plano
}

// planoPersistido rebuilds the stored installment list from a distributor
// result, re-attaching the deposit entry when one existed.
func planoPersistido(reservaID int64, plano []financeiro.Parcela, anteriores []store.Parcela,
	sinal financeiro.Centavos, vencimentoSinal *time.Time) []store.Parcela {

	var out []store.Parcela
	for _, p := range anteriores {
		if p.Sinal {
			out = append(out, p)
			break
		}
	}
	if len(out) == 0 && sinal > 0 && vencimentoSinal != nil {
		out = append(out, store.Parcela{
			ReservaID:  reservaID,
			Numero:     0,
			Valor:      sinal,
			Vencimento: *vencimentoSinal,
			Sinal:      true,
		})
	}
	for _, p := range plano {
		out = append(out, store.Parcela{
			ReservaID:  reservaID,
			Numero:     p.Numero,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
		})
	}
	return out
}

// redistribuirPlano recomputes values over the existing installments after a
// contract value change, keeping due dates and refreshing the deposit entry.
func redistribuirPlano(parcelas []store.Parcela, total, sinal financeiro.Centavos, vencimentoSinal *time.Time) []store.Parcela {
	plano := financeiro.Redistribuir(planoFinanceiro(parcelas), total, sinal)

	var out []store.Parcela
	if sinal > 0 && vencimentoSinal != nil {
		out = append(out, store.Parcela{
			Numero:     0,
			Valor:      sinal,
			Vencimento: *vencimentoSinal,
			Sinal:      true,
		})
	}
	for _, p := range plano {
		out = append(out, store.Parcela{
			Numero:     p.Numero,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
		})
	}
	return out
}
