package base

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository es el repositorio base con los métodos comunes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository crea un repositorio base.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool devuelve el pool de conexiones.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// QueryRow ejecuta una consulta que devuelve una sola fila.
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

// Query ejecuta una consulta que devuelve varias filas.
func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

// ExecAffected ejecuta un comando y devuelve las filas afectadas.
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IsNotFound indica si el error es "fila no encontrada".
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
