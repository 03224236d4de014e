package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	pkgjwt "github.com/jhoicas/kiosko-api/pkg/jwt"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

const (
	wsTestSecret = "ws-test-secret"
	wsTestIssuer = "kiosko-test"
)

func newTestWSHandler() *WSHandler {
	authUC := auth.NewAuthUseCase(nil, nil, auth.JWTConfig{
		Secret:    wsTestSecret,
		DeviceTTL: time.Hour,
		AdminTTL:  time.Hour,
		Issuer:    wsTestIssuer,
	}, auth.DemoConfig{DeviceID: "public", LocalID: 1}, logger.Nop())
	return NewWSHandler(authUC, realtime.NewRegistry(logger.Nop()), logger.Nop())
}

func wsDeviceToken(t *testing.T, localID int64, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.GenerateDevice(wsTestSecret, "dev-ws", localID, "kiosk", false, wsTestIssuer, ttl)
	require.NoError(t, err)
	return tok
}

func TestWSAutenticar_SinToken(t *testing.T) {
	h := newTestWSHandler()
	id, motivo := h.autenticar("")
	assert.Nil(t, id)
	assert.Equal(t, "Token no proporcionado", motivo)
}

func TestWSAutenticar_TokenExpirado(t *testing.T) {
	h := newTestWSHandler()
	id, motivo := h.autenticar(wsDeviceToken(t, 7, -time.Minute))
	assert.Nil(t, id)
	assert.Equal(t, "Token expirado", motivo,
		"la expiración se distingue de un token malformado")
}

func TestWSAutenticar_TokenIlegible(t *testing.T) {
	h := newTestWSHandler()
	id, motivo := h.autenticar("ni.siquiera.jwt")
	assert.Nil(t, id)
	assert.Equal(t, "Token inválido", motivo)
}

func TestWSAutenticar_TokenValidoCargaIdentidad(t *testing.T) {
	h := newTestWSHandler()
	id, motivo := h.autenticar(wsDeviceToken(t, 7, time.Hour))
	require.NotNil(t, id)
	assert.Empty(t, motivo)
	assert.Equal(t, int64(7), id.LocalID)
}

func TestLocalDeConexion(t *testing.T) {
	dispositivo := &auth.Identity{Kind: auth.KindDevice, LocalID: 7}
	superAdmin := &auth.Identity{Kind: auth.KindAdmin, Rol: entity.RolSuperAdmin, LocalID: 3}

	// Un dispositivo queda atado al local de su token, ignore o no la query.
	assert.Equal(t, int64(7), localDeConexion(dispositivo, ""))
	assert.Equal(t, int64(7), localDeConexion(dispositivo, "9"))

	// super_admin sin query es monitor (local 0); con query se ata a ese local.
	assert.Equal(t, int64(0), localDeConexion(superAdmin, ""))
	assert.Equal(t, int64(5), localDeConexion(superAdmin, "5"))
	assert.Equal(t, int64(0), localDeConexion(superAdmin, "no-numérico"))
}

func TestUpgradeRequired_SinUpgradeRetorna426(t *testing.T) {
	h := newTestWSHandler()
	app := fiber.New()
	app.Use("/ws", h.UpgradeRequired)
	app.Get("/ws/local", func(c *fiber.Ctx) error { return c.SendString("no debería llegar") })

	req := httptest.NewRequest(http.MethodGet, "/ws/local", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
