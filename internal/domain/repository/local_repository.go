package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// LocalRepository define el puerto de persistencia para Local (solo lectura:
// los locales se aprovisionan fuera de este backend).
type LocalRepository interface {
	GetActiveByID(id int64) (*entity.Local, error)
	ListActive() ([]*entity.Local, error)
}
