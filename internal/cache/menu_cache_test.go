package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosko-api/internal/application/dto"
)

func productosDe(nombres ...string) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, 0, len(nombres))
	for i, n := range nombres {
		out = append(out, dto.ProductoResponse{ID: int64(i + 1), Nombre: n})
	}
	return out
}

func TestMenuCache_GetSet(t *testing.T) {
	c := NewMenuCache(100, 5*time.Minute)

	_, ok := c.Get(1)
	require.False(t, ok, "se esperaba miss para un local nuevo")

	c.Set(1, productosDe("Muzzarella", "Fugazzeta"))
	got, ok := c.Get(1)
	require.True(t, ok, "se esperaba hit después de Set")
	require.Len(t, got, 2)
	assert.Equal(t, "Muzzarella", got[0].Nombre)
}

func TestMenuCache_InvalidateSoloAfectaEseLocal(t *testing.T) {
	c := NewMenuCache(100, 5*time.Minute)
	c.Set(1, productosDe("Muzzarella"))
	c.Set(2, productosDe("Napolitana"))

	c.Invalidate(1)

	_, ok := c.Get(1)
	assert.False(t, ok, "el local invalidado debe dar miss")
	_, ok = c.Get(2)
	assert.True(t, ok, "los demás locales no deben verse afectados")
}

func TestMenuCache_InvalidateAll(t *testing.T) {
	c := NewMenuCache(100, 5*time.Minute)
	c.Set(1, productosDe("Muzzarella"))
	c.Set(2, productosDe("Napolitana"))

	c.InvalidateAll()

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestMenuCache_UltimaEscrituraGana(t *testing.T) {
	c := NewMenuCache(100, 5*time.Minute)
	c.Set(1, productosDe("Vieja"))
	c.Set(1, productosDe("Nueva"))

	got, ok := c.Get(1)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Nueva", got[0].Nombre)
}
