package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.CarruselRepository = (*CarruselRepo)(nil)

// CarruselRepo implementación del puerto CarruselRepository sobre PostgreSQL.
type CarruselRepo struct {
	q Querier
}

// NewCarruselRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarruselRepository(q Querier) *CarruselRepo {
	return &CarruselRepo{q: q}
}

// GetByLocal obtiene la configuración del carrusel del local, o nil si nunca
// se configuró.
func (r *CarruselRepo) GetByLocal(localID int64) (*entity.ConfiguracionCarrusel, error) {
	query := `
		SELECT id, local_id, modo, categorias_seleccionadas, updated_at
		FROM carrusel_config WHERE local_id = $1`
	var c entity.ConfiguracionCarrusel
	err := r.q.QueryRow(context.Background(), query, localID).Scan(
		&c.ID, &c.LocalID, &c.Modo, &c.CategoriasSeleccionadas, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carrusel config: %w", err)
	}
	return &c, nil
}

// Upsert crea o reemplaza la configuración del carrusel del local (una fila
// por local).
func (r *CarruselRepo) Upsert(config *entity.ConfiguracionCarrusel) error {
	query := `
		INSERT INTO carrusel_config (local_id, modo, categorias_seleccionadas, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (local_id) DO UPDATE
		SET modo = EXCLUDED.modo,
		    categorias_seleccionadas = EXCLUDED.categorias_seleccionadas,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		config.LocalID, config.Modo, config.CategoriasSeleccionadas, config.UpdatedAt,
	).Scan(&config.ID)
	if err != nil {
		return fmt.Errorf("upsert carrusel config: %w", err)
	}
	return nil
}
