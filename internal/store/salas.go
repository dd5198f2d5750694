package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const salaCols = `id, filial_id, descricao, inicio, fim, dia_inteiro,
	tipo_de_sala_id, situacao, solicitante_email, criada_em, atualizada_em`

// salaRepo implements SalaRepository.
type salaRepo struct {
	pool *pgxpool.Pool
}

func scanSala(row pgx.Row) (*Sala, error) {
	var s Sala
	err := row.Scan(&s.ID, &s.FilialID, &s.Descricao, &s.Inicio, &s.Fim, &s.DiaInteiro,
		&s.TipoDeSalaID, &s.Situacao, &s.SolicitanteEmail, &s.CriadaEm, &s.AtualizadaEm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &s, nil
}

func collectSalas(rows pgx.Rows) ([]Sala, error) {
	defer rows.Close()
	var out []Sala
	for rows.Next() {
		s, err := scanSala(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *salaRepo) Criar(ctx context.Context, s Sala) (*Sala, error) {
	defer observeDB(ctx, "salas.criar")()
	if s.Situacao == "" {
		s.Situacao = SalaPendente
	}
	const q = `INSERT INTO salas
		(filial_id, descricao, inicio, fim, dia_inteiro, tipo_de_sala_id, situacao, solicitante_email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING ` + salaCols
	row := r.pool.QueryRow(ctx, q, s.FilialID, s.Descricao, s.Inicio, s.Fim,
		s.DiaInteiro, s.TipoDeSalaID, s.Situacao, s.SolicitanteEmail)
	created, err := scanSala(row)
	if err != nil {
		return nil, fmt.Errorf("criar sala: %w", err)
	}
	return created, nil
}

func (r *salaRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*Sala, error) {
	defer observeDB(ctx, "salas.buscar")()
	const q = `SELECT ` + salaCols + ` FROM salas WHERE filial_id=$1 AND id=$2`
	return scanSala(r.pool.QueryRow(ctx, q, filialID, id))
}

func (r *salaRepo) Listar(ctx context.Context, filialID int64) ([]Sala, error) {
	defer observeDB(ctx, "salas.listar")()
	const q = `SELECT ` + salaCols + ` FROM salas WHERE filial_id=$1 ORDER BY inicio, id`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar salas: %w", err)
	}
	return collectSalas(rows)
}

func (r *salaRepo) ListarPorPeriodo(ctx context.Context, filialID int64, de, ate time.Time) ([]Sala, error) {
	defer observeDB(ctx, "salas.listar_periodo")()
	const q = `SELECT ` + salaCols + ` FROM salas
		WHERE filial_id=$1 AND inicio <= $3 AND fim >= $2
		ORDER BY inicio, id`
	rows, err := r.pool.Query(ctx, q, filialID, de, ate)
	if err != nil {
		return nil, fmt.Errorf("listar salas por período: %w", err)
	}
	return collectSalas(rows)
}

func (r *salaRepo) ListarPendentes(ctx context.Context, filialID int64) ([]Sala, error) {
	defer observeDB(ctx, "salas.listar_pendentes")()
	const q = `SELECT ` + salaCols + ` FROM salas
		WHERE filial_id=$1 AND situacao=$2 ORDER BY criada_em, id`
	rows, err := r.pool.Query(ctx, q, filialID, SalaPendente)
	if err != nil {
		return nil, fmt.Errorf("listar salas pendentes: %w", err)
	}
	return collectSalas(rows)
}

func (r *salaRepo) ContarPendentes(ctx context.Context) (int, error) {
	defer observeDB(ctx, "salas.contar_pendentes")()
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM salas WHERE situacao=$1`, SalaPendente).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar salas pendentes: %w", err)
	}
	return n, nil
}

func (r *salaRepo) Atualizar(ctx context.Context, s Sala) error {
	defer observeDB(ctx, "salas.atualizar")()
	const q = `UPDATE salas SET descricao=$3, inicio=$4, fim=$5, dia_inteiro=$6,
		tipo_de_sala_id=$7, situacao=$8, solicitante_email=$9, atualizada_em=NOW()
		WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, s.FilialID, s.ID, s.Descricao, s.Inicio, s.Fim,
		s.DiaInteiro, s.TipoDeSalaID, s.Situacao, s.SolicitanteEmail)
	if err != nil {
		return fmt.Errorf("atualizar sala: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *salaRepo) AtualizarSituacao(ctx context.Context, filialID, id int64, situacao SituacaoSala) error {
	defer observeDB(ctx, "salas.atualizar_situacao")()
	const q = `UPDATE salas SET situacao=$3, atualizada_em=NOW() WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, filialID, id, situacao)
	if err != nil {
		return fmt.Errorf("atualizar situação: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *salaRepo) Excluir(ctx context.Context, filialID, id int64) error {
	defer observeDB(ctx, "salas.excluir")()
	tag, err := r.pool.Exec(ctx, `DELETE FROM salas WHERE filial_id=$1 AND id=$2`, filialID, id)
	if err != nil {
		return fmt.Errorf("excluir sala: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}
