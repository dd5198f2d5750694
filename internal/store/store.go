package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store aggregates repositories backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool

	Eventos      EventoRepository
	Salas        SalaRepository
	TiposEvento  TipoEventoRepository
	TiposDeSala  TipoDeSalaRepository
	Interessados InteressadoRepository
	Reservas     ReservaRepository
	Inscricoes   InscricaoRepository
}

// New wires concrete repository implementations with a shared connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:         pool,
		Eventos:      &eventoRepo{pool: pool},
		Salas:        &salaRepo{pool: pool},
		TiposEvento:  &tipoEventoRepo{pool: pool},
		TiposDeSala:  &tipoDeSalaRepo{pool: pool},
		Interessados: &interessadoRepo{pool: pool},
		Reservas:     &reservaRepo{pool: pool},
		Inscricoes:   &inscricaoRepo{pool: pool},
	}
}

// HealthCheck verifies that the underlying database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	defer observeDB(ctx, "db.healthcheck")()
	return s.pool.Ping(ctx)
}
