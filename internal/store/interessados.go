package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interessadoCols = `id, filial_id, nome, documento, email, telefone,
	logradouro, cidade, uf, cep, criado_em`

// interessadoRepo implements InteressadoRepository.
type interessadoRepo struct {
	pool *pgxpool.Pool
}

func scanInteressado(row pgx.Row) (*Interessado, error) {
	var i Interessado
	err := row.Scan(&i.ID, &i.FilialID, &i.Nome, &i.Documento, &i.Email, &i.Telefone,
		&i.Logradouro, &i.Cidade, &i.UF, &i.CEP, &i.CriadoEm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &i, nil
}

func (r *interessadoRepo) Criar(ctx context.Context, i Interessado) (*Interessado, error) {
	defer observeDB(ctx, "interessados.criar")()
	const q = `INSERT INTO interessados
		(filial_id, nome, documento, email, telefone, logradouro, cidade, uf, cep)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING ` + interessadoCols
	row := r.pool.QueryRow(ctx, q, i.FilialID, i.Nome, i.Documento, i.Email,
		i.Telefone, i.Logradouro, i.Cidade, i.UF, i.CEP)
	created, err := scanInteressado(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar interessado: %w", err)
	}
	return created, nil
}

func (r *interessadoRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*Interessado, error) {
	defer observeDB(ctx, "interessados.buscar")()
	const q = `SELECT ` + interessadoCols + ` FROM interessados WHERE filial_id=$1 AND id=$2`
	return scanInteressado(r.pool.QueryRow(ctx, q, filialID, id))
}

func (r *interessadoRepo) Listar(ctx context.Context, filialID int64) ([]Interessado, error) {
	defer observeDB(ctx, "interessados.listar")()
	const q = `SELECT ` + interessadoCols + ` FROM interessados WHERE filial_id=$1 ORDER BY nome`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar interessados: %w", err)
	}
	defer rows.Close()
	var out []Interessado
	for rows.Next() {
		i, err := scanInteressado(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (r *interessadoRepo) Atualizar(ctx context.Context, i Interessado) error {
	defer observeDB(ctx, "interessados.atualizar")()
	const q = `UPDATE interessados SET nome=$3, documento=$4, email=$5, telefone=$6,
		logradouro=$7, cidade=$8, uf=$9, cep=$10
		WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, i.FilialID, i.ID, i.Nome, i.Documento, i.Email,
		i.Telefone, i.Logradouro, i.Cidade, i.UF, i.CEP)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflito
		}
		return fmt.Errorf("atualizar interessado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *interessadoRepo) Excluir(ctx context.Context, filialID, id int64) error {
	defer observeDB(ctx, "interessados.excluir")()
	tag, err := r.pool.Exec(ctx, `DELETE FROM interessados WHERE filial_id=$1 AND id=$2`, filialID, id)
	if err != nil {
		return fmt.Errorf("excluir interessado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}
