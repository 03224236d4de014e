package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ catalogo.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCategorias inicia una transacción, ejecuta fn con un repo de categorías
// atado a la tx y hace Commit o Rollback (usado por el reordenamiento).
func (r *TxRunner) RunCategorias(ctx context.Context, fn func(repo repository.CategoriaRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalogo igual que RunCategorias pero entrega también el repo de
// productos sobre la misma tx (usado por la cascada del delete de categoría).
func (r *TxRunner) RunCatalogo(ctx context.Context, fn func(categorias repository.CategoriaRepository, productos repository.ProductoRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoriaRepository(tx), NewProductoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
