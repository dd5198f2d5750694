package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// tipoEventoRepo implements TipoEventoRepository.
type tipoEventoRepo struct {
	pool *pgxpool.Pool
}

func (r *tipoEventoRepo) Criar(ctx context.Context, t TipoEvento) (*TipoEvento, error) {
	defer observeDB(ctx, "tipos_evento.criar")()
	const q = `INSERT INTO tipos_evento (filial_id, nome, cor, categoria_contrato)
		VALUES ($1,$2,$3,$4)
		RETURNING id, filial_id, nome, cor, categoria_contrato, criado_em`
	var created TipoEvento
	err := r.pool.QueryRow(ctx, q, t.FilialID, t.Nome, t.Cor, t.CategoriaContrato).
		Scan(&created.ID, &created.FilialID, &created.Nome, &created.Cor,
			&created.CategoriaContrato, &created.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar tipo de evento: %w", err)
	}
	return &created, nil
}

func (r *tipoEventoRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*TipoEvento, error) {
	defer observeDB(ctx, "tipos_evento.buscar")()
	const q = `SELECT id, filial_id, nome, cor, categoria_contrato, criado_em
		FROM tipos_evento WHERE filial_id=$1 AND id=$2`
	var t TipoEvento
	err := r.pool.QueryRow(ctx, q, filialID, id).
		Scan(&t.ID, &t.FilialID, &t.Nome, &t.Cor, &t.CategoriaContrato, &t.CriadoEm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("buscar tipo de evento: %w", err)
	}
	return &t, nil
}

func (r *tipoEventoRepo) Listar(ctx context.Context, filialID int64) ([]TipoEvento, error) {
	defer observeDB(ctx, "tipos_evento.listar")()
	const q = `SELECT id, filial_id, nome, cor, categoria_contrato, criado_em
		FROM tipos_evento WHERE filial_id=$1 ORDER BY nome`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar tipos de evento: %w", err)
	}
	defer rows.Close()
	var out []TipoEvento
	for rows.Next() {
		var t TipoEvento
		if err := rows.Scan(&t.ID, &t.FilialID, &t.Nome, &t.Cor, &t.CategoriaContrato, &t.CriadoEm); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tipoEventoRepo) Atualizar(ctx context.Context, filialID, id int64, nome, cor string) error {
	defer observeDB(ctx, "tipos_evento.atualizar")()
	const q = `UPDATE tipos_evento SET nome=$3, cor=$4 WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, filialID, id, nome, cor)
	if err != nil {
		return fmt.Errorf("atualizar tipo de evento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// tipoDeSalaRepo implements TipoDeSalaRepository.
type tipoDeSalaRepo struct {
	pool *pgxpool.Pool
}

func (r *tipoDeSalaRepo) Criar(ctx context.Context, t TipoDeSala) (*TipoDeSala, error) {
	defer observeDB(ctx, "tipos_de_sala.criar")()
	const q = `INSERT INTO tipos_de_sala (filial_id, nome, cor, capacidade)
		VALUES ($1,$2,$3,$4)
		RETURNING id, filial_id, nome, cor, capacidade, criado_em`
	var created TipoDeSala
	err := r.pool.QueryRow(ctx, q, t.FilialID, t.Nome, t.Cor, t.Capacidade).
		Scan(&created.ID, &created.FilialID, &created.Nome, &created.Cor,
			&created.Capacidade, &created.CriadoEm)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar tipo de sala: %w", err)
	}
	return &created, nil
}

func (r *tipoDeSalaRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*TipoDeSala, error) {
	defer observeDB(ctx, "tipos_de_sala.buscar")()
	const q = `SELECT id, filial_id, nome, cor, capacidade, criado_em
		FROM tipos_de_sala WHERE filial_id=$1 AND id=$2`
	var t TipoDeSala
	err := r.pool.QueryRow(ctx, q, filialID, id).
		Scan(&t.ID, &t.FilialID, &t.Nome, &t.Cor, &t.Capacidade, &t.CriadoEm)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNaoEncontrado
		}
		return nil, fmt.Errorf("buscar tipo de sala: %w", err)
	}
	return &t, nil
}

func (r *tipoDeSalaRepo) Listar(ctx context.Context, filialID int64) ([]TipoDeSala, error) {
	defer observeDB(ctx, "tipos_de_sala.listar")()
	const q = `SELECT id, filial_id, nome, cor, capacidade, criado_em
		FROM tipos_de_sala WHERE filial_id=$1 ORDER BY nome`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar tipos de sala: %w", err)
	}
	defer rows.Close()
	var out []TipoDeSala
	for rows.Next() {
		var t TipoDeSala
		if err := rows.Scan(&t.ID, &t.FilialID, &t.Nome, &t.Cor, &t.Capacidade, &t.CriadoEm); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tipoDeSalaRepo) Atualizar(ctx context.Context, filialID, id int64, nome, cor string) error {
	defer observeDB(ctx, "tipos_de_sala.atualizar")()
	const q = `UPDATE tipos_de_sala SET nome=$3, cor=$4 WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, filialID, id, nome, cor)
	if err != nil {
		return fmt.Errorf("atualizar tipo de sala: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}
