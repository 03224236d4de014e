package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jhoicas/kiosko-api/internal/application/dto"
)

// MenuCache cachea el listado de productos del menú por local, con TTL.
// Envuelve hashicorp/golang-lru/v2/expirable, que serializa los accesos por
// clave internamente: operaciones sobre locales distintos no se bloquean a
// nivel de la API y las del mismo local son last-writer-wins.
//
// El cache no es autoritativo: ante un miss el caller re-deriva el listado
// desde la base y llama Set. Entre el commit de una mutación y su Invalidate
// puede haber una ventana de datos viejos; los kiosks la toleran.
type MenuCache struct {
	lru *expirable.LRU[int64, []dto.ProductoResponse]
}

// NewMenuCache crea el cache con capacidad máxima de locales y TTL por entrada.
func NewMenuCache(maxLocales int, ttl time.Duration) *MenuCache {
	return &MenuCache{
		lru: expirable.NewLRU[int64, []dto.ProductoResponse](maxLocales, nil, ttl),
	}
}

// Get devuelve el listado cacheado del local, o (nil, false) en miss.
func (c *MenuCache) Get(localID int64) ([]dto.ProductoResponse, bool) {
	return c.lru.Get(localID)
}

// Set (re)puebla la entrada del local.
func (c *MenuCache) Set(localID int64, productos []dto.ProductoResponse) {
	c.lru.Add(localID, productos)
}

// Invalidate descarta la entrada de un local (llamar tras cada mutación del
// catálogo de ese local).
func (c *MenuCache) Invalidate(localID int64) {
	c.lru.Remove(localID)
}

// InvalidateAll descarta todas las entradas (mutaciones de alcance ambiguo o
// global).
func (c *MenuCache) InvalidateAll() {
	c.lru.Purge()
}
