package store

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agendaparoquial/server/internal/migrations"
)

// PgxPool is the slice of pgxpool.Pool the migration runner needs. Tests
// substitute a mock without touching the rest of the store package.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ApplyMigrations leaves the schema at the latest embedded migration. A
// database that already has tables but no schema_migrations table is treated
// as carrying the initial schema, so only the record is written for it and
// newer migrations run normally.
func ApplyMigrations(ctx context.Context, pool PgxPool) error {
	nomes, err := nomesDeMigracao()
	if err != nil {
		return err
	}
	if len(nomes) == 0 {
		return nil
	}

	temControle, err := tabelaDeControleExiste(ctx, pool)
	if err != nil {
		return err
	}

	if !temControle {
		vazio, err := bancoVazio(ctx, pool)
		if err != nil {
			return err
		}

		if err := criarTabelaDeControle(ctx, pool); err != nil {
			return err
		}

		if !vazio {
			// Schema predates the control table: recording the first
			// migration keeps its CREATE statements from replaying.
			if err := registrarMigracao(ctx, pool, nomes[0]); err != nil {
				return err
			}
		}
	}

	for _, nome := range nomes {
		aplicada, err := migracaoAplicada(ctx, pool, nome)
		if err != nil {
			return err
		}
		if aplicada {
			continue
		}
		if err := aplicarMigracao(ctx, pool, nome); err != nil {
			return err
		}
	}

	return nil
}

func nomesDeMigracao() ([]string, error) {
	entradas, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("listar migrações: %w", err)
	}

	var nomes []string
	for _, e := range entradas {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		nomes = append(nomes, e.Name())
	}
	sort.Strings(nomes)
	return nomes, nil
}

func tabelaDeControleExiste(ctx context.Context, pool PgxPool) (bool, error) {
	const q = `SELECT EXISTS (
        SELECT 1 FROM information_schema.tables
        WHERE table_schema='public' AND table_name='schema_migrations'
)`
	var existe bool
	if err := pool.QueryRow(ctx, q).Scan(&existe); err != nil {
		return false, fmt.Errorf("verificar tabela de controle: %w", err)
	}
	return existe, nil
}

func bancoVazio(ctx context.Context, pool PgxPool) (bool, error) {
	const q = `SELECT COUNT(*) FROM information_schema.tables
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')`
	var total int
	if err := pool.QueryRow(ctx, q).Scan(&total); err != nil {
		return false, fmt.Errorf("contar tabelas: %w", err)
	}
	return total == 0, nil
}

func criarTabelaDeControle(ctx context.Context, pool PgxPool) error {
	const q = `CREATE TABLE IF NOT EXISTS schema_migrations (
        version TEXT PRIMARY KEY,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("criar schema_migrations: %w", err)
	}
	return nil
}

func migracaoAplicada(ctx context.Context, pool PgxPool, nome string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version=$1)`
	var existe bool
	if err := pool.QueryRow(ctx, q, nome).Scan(&existe); err != nil {
		return false, fmt.Errorf("verificar migração %s: %w", nome, err)
	}
	return existe, nil
}

func aplicarMigracao(ctx context.Context, pool PgxPool, nome string) error {
	conteudo, err := migrations.Files.ReadFile(nome)
	if err != nil {
		return fmt.Errorf("ler migração %s: %w", nome, err)
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("iniciar migração %s: %w", nome, err)
	}
	if _, err := tx.Exec(ctx, string(conteudo)); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("aplicar migração %s: %w", nome, err)
	}
	if _, err := tx.Exec(ctx, sqlRegistrarMigracao, nome); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("registrar migração %s: %w", nome, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar migração %s: %w", nome, err)
	}
	return nil
}

const sqlRegistrarMigracao = `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`

func registrarMigracao(ctx context.Context, pool PgxPool, nome string) error {
	if _, err := pool.Exec(ctx, sqlRegistrarMigracao, nome); err != nil {
		return fmt.Errorf("registrar migração %s: %w", nome, err)
	}
	return nil
}
