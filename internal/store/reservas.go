package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservaCols = `id, filial_id, evento_id, interessado_id, valor_total,
	valor_sinal, vencimento_sinal, participantes, observacoes, token,
	confirmada, dados_preenchidos, criada_em, atualizada_em`

// reservaRepo implements ReservaRepository.
type reservaRepo struct {
	pool *pgxpool.Pool
}

func scanReserva(row pgx.Row) (*Reserva, error) {
	var r Reserva
	err := row.Scan(&r.ID, &r.FilialID, &r.EventoID, &r.InteressadoID, &r.ValorTotal,
		&r.ValorSinal, &r.VencimentoSinal, &r.Participantes, &r.Observacoes,
		&r.Token, &r.Confirmada, &r.DadosPreenchidos, &r.CriadaEm, &r.AtualizadaEm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &r, nil
}

func (r *reservaRepo) carregarParcelas(ctx context.Context, res *Reserva) error {
	const q = `SELECT id, reserva_id, numero, valor, vencimento, sinal
		FROM parcelas WHERE reserva_id=$1 ORDER BY numero`
	rows, err := r.pool.Query(ctx, q, res.ID)
	if err != nil {
		return fmt.Errorf("carregar parcelas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p Parcela
		if err := rows.Scan(&p.ID, &p.ReservaID, &p.Numero, &p.Valor, &p.Vencimento, &p.Sinal); err != nil {
			return err
		}
		res.Parcelas = append(res.Parcelas, p)
	}
	return rows.Err()
}

func inserirParcelas(ctx context.Context, tx pgx.Tx, reservaID int64, parcelas []Parcela) error {
	const q = `INSERT INTO parcelas (reserva_id, numero, valor, vencimento, sinal)
		VALUES ($1,$2,$3,$4,$5)`
	for _, p := range parcelas {
		if _, err := tx.Exec(ctx, q, reservaID, p.Numero, p.Valor, p.Vencimento, p.Sinal); err != nil {
			return fmt.Errorf("inserir parcela %d: %w", p.Numero, err)
		}
	}
	return nil
}

func (r *reservaRepo) Criar(ctx context.Context, res Reserva) (*Reserva, error) {
	defer observeDB(ctx, "reservas.criar")()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("criar reserva: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO reservas
		(filial_id, evento_id, interessado_id, valor_total, valor_sinal,
		 vencimento_sinal, participantes, observacoes, token, confirmada, dados_preenchidos)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING ` + reservaCols
	row := tx.QueryRow(ctx, q, res.FilialID, res.EventoID, res.InteressadoID,
		res.ValorTotal, res.ValorSinal, res.VencimentoSinal, res.Participantes,
		res.Observacoes, res.Token, res.Confirmada, res.DadosPreenchidos)
	created, err := scanReserva(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar reserva: %w", err)
	}

	if err := inserirParcelas(ctx, tx, created.ID, res.Parcelas); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("criar reserva: %w", err)
	}

	created.Parcelas = nil
	if err := r.carregarParcelas(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *reservaRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*Reserva, error) {
	defer observeDB(ctx, "reservas.buscar")()
	const q = `SELECT ` + reservaCols + ` FROM reservas WHERE filial_id=$1 AND id=$2`
	res, err := scanReserva(r.pool.QueryRow(ctx, q, filialID, id))
	if err != nil {
		return nil, err
	}
	if err := r.carregarParcelas(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservaRepo) BuscarPorEvento(ctx context.Context, filialID, eventoID int64) (*Reserva, error) {
	defer observeDB(ctx, "reservas.buscar_evento")()
	const q = `SELECT ` + reservaCols + ` FROM reservas WHERE filial_id=$1 AND evento_id=$2`
	res, err := scanReserva(r.pool.QueryRow(ctx, q, filialID, eventoID))
	if err != nil {
		return nil, err
	}
	if err := r.carregarParcelas(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservaRepo) Listar(ctx context.Context, filialID int64) ([]Reserva, error) {
	defer observeDB(ctx, "reservas.listar")()
	const q = `SELECT ` + reservaCols + ` FROM reservas WHERE filial_id=$1 ORDER BY criada_em, id`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}
	defer rows.Close()
	var out []Reserva
	for rows.Next() {
		res, err := scanReserva(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.carregarParcelas(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *reservaRepo) Atualizar(ctx context.Context, res Reserva) error {
	defer observeDB(ctx, "reservas.atualizar")()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("atualizar reserva: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `UPDATE reservas SET interessado_id=$3, valor_total=$4, valor_sinal=$5,
		vencimento_sinal=$6, participantes=$7, observacoes=$8,
		dados_preenchidos=$9, atualizada_em=NOW()
		WHERE filial_id=$1 AND id=$2`
	tag, err := tx.Exec(ctx, q, res.FilialID, res.ID, res.InteressadoID, res.ValorTotal,
		res.ValorSinal, res.VencimentoSinal, res.Participantes, res.Observacoes,
		res.DadosPreenchidos)
	if err != nil {
		return fmt.Errorf("atualizar reserva: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}

	if _, err := tx.Exec(ctx, `DELETE FROM parcelas WHERE reserva_id=$1`, res.ID); err != nil {
		return fmt.Errorf("remover parcelas antigas: %w", err)
	}
	if err := inserirParcelas(ctx, tx, res.ID, res.Parcelas); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *reservaRepo) Confirmar(ctx context.Context, filialID, id int64, token string) error {
	defer observeDB(ctx, "reservas.confirmar")()
	const q = `UPDATE reservas SET confirmada=TRUE, atualizada_em=NOW()
		WHERE filial_id=$1 AND id=$2 AND token=$3`
	tag, err := r.pool.Exec(ctx, q, filialID, id, token)
	if err != nil {
		return fmt.Errorf("confirmar reserva: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *reservaRepo) ContarParcelasVencidas(ctx context.Context, referencia time.Time) (int, error) {
	defer observeDB(ctx, "reservas.contar_vencidas")()
	const q = `SELECT COUNT(*) FROM parcelas p
		JOIN reservas r ON r.id = p.reserva_id
		WHERE p.vencimento < $1 AND NOT r.confirmada`
	var n int
	if err := r.pool.QueryRow(ctx, q, referencia).Scan(&n); err != nil {
		return 0, fmt.Errorf("contar parcelas vencidas: %w", err)
	}
	return n, nil
}
