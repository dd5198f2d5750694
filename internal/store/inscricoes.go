package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// inscricaoRepo implements InscricaoRepository.
type inscricaoRepo struct {
	pool *pgxpool.Pool
}

func (r *inscricaoRepo) Criar(ctx context.Context, i Inscricao) (*Inscricao, error) {
	defer observeDB(ctx, "inscricoes.criar")()
	const q = `INSERT INTO inscricoes (filial_id, evento_id, nome, documento, email, telefone)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, filial_id, evento_id, nome, documento, email, telefone, criada_em`
	var created Inscricao
	err := r.pool.QueryRow(ctx, q, i.FilialID, i.EventoID, i.Nome, i.Documento, i.Email, i.Telefone).
		Scan(&created.ID, &created.FilialID, &created.EventoID, &created.Nome,
			&created.Documento, &created.Email, &created.Telefone, &created.CriadaEm)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar inscrição: %w", err)
	}
	return &created, nil
}

func (r *inscricaoRepo) ListarPorEvento(ctx context.Context, filialID, eventoID int64) ([]Inscricao, error) {
	defer observeDB(ctx, "inscricoes.listar")()
	const q = `SELECT id, filial_id, evento_id, nome, documento, email, telefone, criada_em
		FROM inscricoes WHERE filial_id=$1 AND evento_id=$2 ORDER BY criada_em, id`
	rows, err := r.pool.Query(ctx, q, filialID, eventoID)
	if err != nil {
		return nil, fmt.Errorf("listar inscrições: %w", err)
	}
	defer rows.Close()
	var out []Inscricao
	for rows.Next() {
		var i Inscricao
		if err := rows.Scan(&i.ID, &i.FilialID, &i.EventoID, &i.Nome, &i.Documento,
			&i.Email, &i.Telefone, &i.CriadaEm); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
