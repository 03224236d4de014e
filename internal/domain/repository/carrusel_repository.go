package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// CarruselRepository define el puerto de persistencia para ConfiguracionCarrusel.
type CarruselRepository interface {
	GetByLocal(localID int64) (*entity.ConfiguracionCarrusel, error)
	Upsert(config *entity.ConfiguracionCarrusel) error
}
