package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.DispositivoRepository = (*DispositivoRepo)(nil)

// DispositivoRepo implementación del puerto DispositivoRepository sobre PostgreSQL.
type DispositivoRepo struct {
	q Querier
}

// NewDispositivoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDispositivoRepository(q Querier) *DispositivoRepo {
	return &DispositivoRepo{q: q}
}

// GetActiveByDeviceID obtiene un dispositivo activo por su device_id.
func (r *DispositivoRepo) GetActiveByDeviceID(deviceID string) (*entity.Dispositivo, error) {
	query := `
		SELECT id, local_id, device_id, secret_key, nombre, tipo, activo, created_at, ultimo_acceso
		FROM dispositivos WHERE device_id = $1 AND activo = true`
	var d entity.Dispositivo
	err := r.q.QueryRow(context.Background(), query, deviceID).Scan(
		&d.ID, &d.LocalID, &d.DeviceID, &d.SecretKey, &d.Nombre, &d.Tipo,
		&d.Activo, &d.CreatedAt, &d.UltimoAcceso,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispositivo: %w", err)
	}
	return &d, nil
}

// TouchUltimoAcceso registra el último acceso del dispositivo.
func (r *DispositivoRepo) TouchUltimoAcceso(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE dispositivos SET ultimo_acceso = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch dispositivo: %w", err)
	}
	return nil
}
