package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// DispositivoRepository define el puerto de persistencia para Dispositivo.
type DispositivoRepository interface {
	GetActiveByDeviceID(deviceID string) (*entity.Dispositivo, error)
	// TouchUltimoAcceso registra el último acceso. Best-effort: el caller
	// ignora el error sin fallar la autenticación.
	TouchUltimoAcceso(id int64) error
}
