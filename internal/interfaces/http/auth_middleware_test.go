package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	apphttp "github.com/jhoicas/kiosko-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/kiosko-api/pkg/jwt"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "kiosko-test"
)

// newTestAuthUC construye un AuthUseCase solo para verificar tokens: los repos
// no se tocan en Verify.
func newTestAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(nil, nil, auth.JWTConfig{
		Secret:    testJWTSecret,
		DeviceTTL: time.Hour,
		AdminTTL:  time.Hour,
		Issuer:    testIssuer,
	}, auth.DemoConfig{DeviceID: "public", LocalID: 1}, logger.Nop())
}

// buildTestApp aplicación Fiber mínima: una ruta protegida por token y otra
// que además exige identidad de administrador.
func buildTestApp() *fiber.App {
	authUC := newTestAuthUC()
	app := fiber.New()
	app.Get("/protegida", apphttp.AuthMiddleware(authUC), func(c *fiber.Ctx) error {
		id := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{"local_id": id.LocalID, "es_admin": id.EsAdmin()})
	})
	app.Get("/solo-admin", apphttp.AuthMiddleware(authUC), apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func deviceToken(t *testing.T, deviceID string, localID int64, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.GenerateDevice(testJWTSecret, deviceID, localID, "kiosk", false, testIssuer, ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func adminToken(t *testing.T, userID, localID int64, rol string) string {
	t.Helper()
	tok, err := pkgjwt.GenerateAdmin(testJWTSecret, userID, localID, rol, "tester", testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware_TokenDeDispositivoCargaIdentidad(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protegida", deviceToken(t, "dev-A", 7, time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(7), body["local_id"], "el local de la identidad debe ser el del token")
	assert.Equal(t, false, body["es_admin"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protegida", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401ConCodigo(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protegida", deviceToken(t, "dev-A", 7, -time.Minute))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TOKEN_EXPIRED",
		"expiración se distingue de un token malformado")
}

func TestAuthMiddleware_TokenIlegible_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/protegida", "Bearer ni.siquiera.jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/solo-admin", adminToken(t, 3, 2, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_DispositivoComunBloqueado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/solo-admin", deviceToken(t, "dev-A", 7, time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El dispositivo demo administra su local de demostración como si fuera admin.
func TestRequireAdmin_DispositivoDemoAccede(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.GenerateDevice(testJWTSecret, "public", 1, "demo", true, testIssuer, time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, app, "/solo-admin", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
