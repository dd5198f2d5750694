package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventoCols = `id, filial_id, titulo, descricao, inicio, fim, dia_inteiro,
	tipo_evento_id, compartilhamento, slug, sala_id, interessado_id,
	recorrencia_freq, recorrencia_fim, evento_pai_id, criado_em, atualizado_em`

// eventoRepo implements EventoRepository.
type eventoRepo struct {
	pool *pgxpool.Pool
}

func scanEvento(row pgx.Row) (*Evento, error) {
	var e Evento
	err := row.Scan(&e.ID, &e.FilialID, &e.Titulo, &e.Descricao, &e.Inicio, &e.Fim,
		&e.DiaInteiro, &e.TipoEventoID, &e.Compartilhamento, &e.Slug, &e.SalaID,
		&e.InteressadoID, &e.RecorrenciaFreq, &e.RecorrenciaFim, &e.EventoPaiID,
		&e.CriadoEm, &e.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &e, nil
}

func collectEventos(rows pgx.Rows) ([]Evento, error) {
	defer rows.Close()
	var out []Evento
	for rows.Next() {
		e, err := scanEvento(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *eventoRepo) Criar(ctx context.Context, e Evento) (*Evento, error) {
	defer observeDB(ctx, "eventos.criar")()
	if err := e.ValidarSerie(); err != nil {
		return nil, err
	}
	const q = `INSERT INTO eventos
		(filial_id, titulo, descricao, inicio, fim, dia_inteiro, tipo_evento_id,
		 compartilhamento, slug, sala_id, interessado_id, recorrencia_freq,
		 recorrencia_fim, evento_pai_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING ` + eventoCols
	row := r.pool.QueryRow(ctx, q, e.FilialID, e.Titulo, e.Descricao, e.Inicio, e.Fim,
		e.DiaInteiro, e.TipoEventoID, e.Compartilhamento, e.Slug, e.SalaID,
		e.InteressadoID, e.RecorrenciaFreq, e.RecorrenciaFim, e.EventoPaiID)
	created, err := scanEvento(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflito
		}
		return nil, fmt.Errorf("criar evento: %w", err)
	}
	return created, nil
}

func (r *eventoRepo) CriarFilhos(ctx context.Context, filhos []Evento) error {
	defer observeDB(ctx, "eventos.criar_filhos")()
	if len(filhos) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("criar filhos: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO eventos
		(filial_id, titulo, descricao, inicio, fim, dia_inteiro, tipo_evento_id,
		 compartilhamento, slug, sala_id, interessado_id, recorrencia_freq,
		 recorrencia_fim, evento_pai_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	for _, f := range filhos {
		if f.EventoPaiID == nil {
			return ErrSerieInvalida
		}
		if _, err := tx.Exec(ctx, q, f.FilialID, f.Titulo, f.Descricao, f.Inicio, f.Fim,
			f.DiaInteiro, f.TipoEventoID, f.Compartilhamento, nil, nil,
			f.InteressadoID, f.RecorrenciaFreq, f.RecorrenciaFim, f.EventoPaiID); err != nil {
			return fmt.Errorf("criar filho: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *eventoRepo) BuscarPorID(ctx context.Context, filialID, id int64) (*Evento, error) {
	defer observeDB(ctx, "eventos.buscar")()
	const q = `SELECT ` + eventoCols + ` FROM eventos WHERE filial_id=$1 AND id=$2`
	return scanEvento(r.pool.QueryRow(ctx, q, filialID, id))
}

func (r *eventoRepo) BuscarPorSlug(ctx context.Context, filialID int64, slug string) (*Evento, error) {
	defer observeDB(ctx, "eventos.buscar_slug")()
	const q = `SELECT ` + eventoCols + ` FROM eventos WHERE filial_id=$1 AND slug=$2`
	return scanEvento(r.pool.QueryRow(ctx, q, filialID, slug))
}

func (r *eventoRepo) Listar(ctx context.Context, filialID int64) ([]Evento, error) {
	defer observeDB(ctx, "eventos.listar")()
	const q = `SELECT ` + eventoCols + ` FROM eventos WHERE filial_id=$1 ORDER BY inicio, id`
	rows, err := r.pool.Query(ctx, q, filialID)
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	return collectEventos(rows)
}

func (r *eventoRepo) ListarPorPeriodo(ctx context.Context, filialID int64, de, ate time.Time) ([]Evento, error) {
	defer observeDB(ctx, "eventos.listar_periodo")()
	const q = `SELECT ` + eventoCols + ` FROM eventos
		WHERE filial_id=$1 AND inicio <= $3 AND fim >= $2
		ORDER BY inicio, id`
	rows, err := r.pool.Query(ctx, q, filialID, de, ate)
	if err != nil {
		return nil, fmt.Errorf("listar eventos por período: %w", err)
	}
	return collectEventos(rows)
}

func (r *eventoRepo) ListarFilhos(ctx context.Context, filialID, raizID int64) ([]Evento, error) {
	defer observeDB(ctx, "eventos.listar_filhos")()
	const q = `SELECT ` + eventoCols + ` FROM eventos
		WHERE filial_id=$1 AND evento_pai_id=$2 ORDER BY inicio, id`
	rows, err := r.pool.Query(ctx, q, filialID, raizID)
	if err != nil {
		return nil, fmt.Errorf("listar filhos: %w", err)
	}
	return collectEventos(rows)
}

func (r *eventoRepo) Atualizar(ctx context.Context, e Evento) error {
	defer observeDB(ctx, "eventos.atualizar")()
	if err := e.ValidarSerie(); err != nil {
		return err
	}
	const q = `UPDATE eventos SET titulo=$3, descricao=$4, inicio=$5, fim=$6,
		dia_inteiro=$7, tipo_evento_id=$8, compartilhamento=$9, slug=$10,
		sala_id=$11, interessado_id=$12, recorrencia_freq=$13, recorrencia_fim=$14,
		evento_pai_id=$15, atualizado_em=NOW()
		WHERE filial_id=$1 AND id=$2`
	tag, err := r.pool.Exec(ctx, q, e.FilialID, e.ID, e.Titulo, e.Descricao, e.Inicio,
		e.Fim, e.DiaInteiro, e.TipoEventoID, e.Compartilhamento, e.Slug, e.SalaID,
		e.InteressadoID, e.RecorrenciaFreq, e.RecorrenciaFim, e.EventoPaiID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflito
		}
		return fmt.Errorf("atualizar evento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *eventoRepo) AtualizarDesvinculando(ctx context.Context, e Evento) error {
	e.EventoPaiID = nil
	e.RecorrenciaFreq = RecorrenciaNenhuma
	e.RecorrenciaFim = nil
	return r.Atualizar(ctx, e)
}

func (r *eventoRepo) EncerrarRecorrencia(ctx context.Context, filialID, raizID int64, fim time.Time) error {
	defer observeDB(ctx, "eventos.encerrar_recorrencia")()
	const q = `UPDATE eventos SET recorrencia_fim=$3, atualizado_em=NOW()
		WHERE filial_id=$1 AND id=$2 AND evento_pai_id IS NULL`
	tag, err := r.pool.Exec(ctx, q, filialID, raizID, fim)
	if err != nil {
		return fmt.Errorf("encerrar recorrência: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *eventoRepo) SubstituirFilhos(ctx context.Context, filialID, raizID int64, filhos []Evento) error {
	defer observeDB(ctx, "eventos.substituir_filhos")()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("substituir filhos: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM eventos WHERE filial_id=$1 AND evento_pai_id=$2`, filialID, raizID); err != nil {
		return fmt.Errorf("remover filhos antigos: %w", err)
	}
	const q = `INSERT INTO eventos
		(filial_id, titulo, descricao, inicio, fim, dia_inteiro, tipo_evento_id,
		 compartilhamento, interessado_id, recorrencia_freq, recorrencia_fim, evento_pai_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	for _, f := range filhos {
		if _, err := tx.Exec(ctx, q, filialID, f.Titulo, f.Descricao, f.Inicio, f.Fim,
			f.DiaInteiro, f.TipoEventoID, f.Compartilhamento, f.InteressadoID,
			f.RecorrenciaFreq, f.RecorrenciaFim, raizID); err != nil {
			return fmt.Errorf("inserir filho: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *eventoRepo) Excluir(ctx context.Context, filialID, id int64) error {
	defer observeDB(ctx, "eventos.excluir")()
	tag, err := r.pool.Exec(ctx, `DELETE FROM eventos WHERE filial_id=$1 AND id=$2`, filialID, id)
	if err != nil {
		return fmt.Errorf("excluir evento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *eventoRepo) ExcluirAPartir(ctx context.Context, filialID, raizID int64, de time.Time) error {
	defer observeDB(ctx, "eventos.excluir_a_partir")()
	const q = `DELETE FROM eventos
		WHERE filial_id=$1 AND (id=$2 OR evento_pai_id=$2) AND inicio >= $3`
	if _, err := r.pool.Exec(ctx, q, filialID, raizID, de); err != nil {
		return fmt.Errorf("excluir série a partir: %w", err)
	}
	return nil
}

func (r *eventoRepo) ExcluirSerie(ctx context.Context, filialID, raizID int64) error {
	defer observeDB(ctx, "eventos.excluir_serie")()
	const q = `DELETE FROM eventos WHERE filial_id=$1 AND (id=$2 OR evento_pai_id=$2)`
	tag, err := r.pool.Exec(ctx, q, filialID, raizID)
	if err != nil {
		return fmt.Errorf("excluir série: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

func (r *eventoRepo) PromoverNovaRaiz(ctx context.Context, filialID, antigaRaizID, novaRaizID int64) error {
	defer observeDB(ctx, "eventos.promover_raiz")()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("promover raiz: %w", err)
	}
	defer tx.Rollback(ctx)

	// The new root inherits the series before its siblings are re-parented,
	// keeping the invariant that a root has no parent.
	const promover = `UPDATE eventos SET evento_pai_id=NULL, atualizado_em=NOW()
		WHERE filial_id=$1 AND id=$2`
	tag, err := tx.Exec(ctx, promover, filialID, novaRaizID)
	if err != nil {
		return fmt.Errorf("promover raiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}

	const reparentar = `UPDATE eventos SET evento_pai_id=$3, atualizado_em=NOW()
		WHERE filial_id=$1 AND evento_pai_id=$2 AND id <> $3`
	if _, err := tx.Exec(ctx, reparentar, filialID, antigaRaizID, novaRaizID); err != nil {
		return fmt.Errorf("reparentar filhos: %w", err)
	}
	return tx.Commit(ctx)
}
