package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/kiosko-api/pkg/jwt"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

const testSecret = "secreto-de-test"

// fakeDispositivoRepo repo en memoria para tests.
type fakeDispositivoRepo struct {
	dispositivos map[string]*entity.Dispositivo
	touched      []int64
}

func (f *fakeDispositivoRepo) GetActiveByDeviceID(deviceID string) (*entity.Dispositivo, error) {
	d, ok := f.dispositivos[deviceID]
	if !ok || !d.Activo {
		return nil, nil
	}
	return d, nil
}

func (f *fakeDispositivoRepo) TouchUltimoAcceso(id int64) error {
	f.touched = append(f.touched, id)
	return nil
}

// fakeUsuarioRepo repo en memoria para tests.
type fakeUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
	touched  []int64
}

func (f *fakeUsuarioRepo) GetActiveByNombre(nombre string) (*entity.Usuario, error) {
	u, ok := f.usuarios[nombre]
	if !ok || !u.Activo {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUsuarioRepo) TouchUltimoAcceso(id int64) error {
	f.touched = append(f.touched, id)
	return nil
}

func newTestUseCase() (*AuthUseCase, *fakeDispositivoRepo, *fakeUsuarioRepo) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pizza123"), bcrypt.MinCost)
	dispositivos := &fakeDispositivoRepo{dispositivos: map[string]*entity.Dispositivo{
		"dev-A": {ID: 1, LocalID: 7, DeviceID: "dev-A", SecretKey: "s1", Tipo: entity.TipoKiosk, Activo: true},
		"dev-B": {ID: 2, LocalID: 9, DeviceID: "dev-B", SecretKey: "s2", Tipo: entity.TipoTablet, Activo: false},
	}}
	usuarios := &fakeUsuarioRepo{usuarios: map[string]*entity.Usuario{
		"carla": {ID: 3, LocalID: 2, Nombre: "carla", PasswordHash: string(hash), Rol: entity.RolAdmin, Activo: true},
		"root":  {ID: 4, LocalID: 1, Nombre: "root", PasswordHash: string(hash), Rol: entity.RolSuperAdmin, Activo: true},
	}}
	uc := NewAuthUseCase(usuarios, dispositivos, JWTConfig{
		Secret:    testSecret,
		DeviceTTL: time.Hour,
		AdminTTL:  time.Hour,
		Issuer:    "kiosko-test",
	}, DemoConfig{DeviceID: "public", LocalID: 1}, logger.Nop())
	return uc, dispositivos, usuarios
}

func TestAuthenticateDevice_RoundtripConVerify(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	out, err := uc.AuthenticateDevice("dev-A", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.LocalID)
	assert.Equal(t, []int64{1}, repo.touched, "debe registrar último acceso")

	id, err := uc.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, KindDevice, id.Kind)
	assert.Equal(t, int64(7), id.LocalID, "el local del token debe ser el del dispositivo")
	assert.Equal(t, "dev-A", id.DeviceID)
	assert.False(t, id.EsDemo)
}

// Secreto incorrecto y dispositivo desconocido devuelven el mismo error para
// no permitir enumerar device_ids.
func TestAuthenticateDevice_FalloGenericoSinEnumeracion(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, errSecreto := uc.AuthenticateDevice("dev-A", "wrong")
	_, errDesconocido := uc.AuthenticateDevice("dev-unknown", "anything")
	_, errInactivo := uc.AuthenticateDevice("dev-B", "s2")

	assert.ErrorIs(t, errSecreto, domain.ErrNotFound)
	assert.ErrorIs(t, errDesconocido, domain.ErrNotFound)
	assert.ErrorIs(t, errInactivo, domain.ErrNotFound)
	assert.Equal(t, errSecreto.Error(), errDesconocido.Error())
}

func TestAuthenticateDevice_DemoSiempreAutentica(t *testing.T) {
	uc, _, _ := newTestUseCase()

	out, err := uc.AuthenticateDevice("public", "cualquier-cosa")
	require.NoError(t, err)
	assert.True(t, out.EsDemo)
	assert.Equal(t, int64(1), out.LocalID, "demo siempre apunta al local de demostración")

	id, err := uc.Verify(out.Token)
	require.NoError(t, err)
	assert.True(t, id.EsDemo)
	assert.True(t, id.EsAdmin(), "demo se trata como admin de su local")
}

func TestAuthenticateAdmin_RoundtripConVerify(t *testing.T) {
	uc, _, repo := newTestUseCase()

	out, err := uc.AuthenticateAdmin("carla", "pizza123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.LocalID)
	assert.Equal(t, entity.RolAdmin, out.Rol)
	assert.Equal(t, []int64{3}, repo.touched)

	id, err := uc.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, KindAdmin, id.Kind)
	assert.Equal(t, int64(3), id.UserID)
	assert.Equal(t, int64(2), id.LocalID)
	assert.True(t, id.EsAdmin())
	assert.False(t, id.EsSuperAdmin())
}

func TestAuthenticateAdmin_MismoErrorParaDesconocidoYContrasenaMala(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, errContrasena := uc.AuthenticateAdmin("carla", "incorrecta")
	_, errDesconocido := uc.AuthenticateAdmin("nadie", "lo-que-sea")

	assert.ErrorIs(t, errContrasena, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errDesconocido, domain.ErrInvalidCredentials)
	assert.Equal(t, errContrasena.Error(), errDesconocido.Error())
}

func TestVerify_TokenExpirado(t *testing.T) {
	uc, _, _ := newTestUseCase()
	token, err := pkgjwt.GenerateDevice(testSecret, "dev-A", 7, "kiosk", false, "kiosko-test", -time.Minute)
	require.NoError(t, err)

	_, err = uc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerify_TokenIlegible(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Verify("ni.siquiera.jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// Firmado con otro secret: también inválido.
	token, genErr := pkgjwt.GenerateDevice("otro-secret", "dev-A", 7, "kiosk", false, "kiosko-test", time.Hour)
	require.NoError(t, genErr)
	_, err = uc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

// Un token firmado válido cuyos claims no satisfacen ni la forma dispositivo
// ni la forma admin se rechaza: las formas son disjuntas y obligatorias.
func TestVerify_ClaimsSinFormaReconocida(t *testing.T) {
	uc, _, _ := newTestUseCase()
	// user_id == 0 no satisface la forma admin; sin device_id tampoco la de dispositivo.
	token, err := pkgjwt.GenerateAdmin(testSecret, 0, 5, "admin", "fantasma", "kiosko-test", time.Hour)
	require.NoError(t, err)

	_, err = uc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedClaims)
}

func TestAuthorizeLocal(t *testing.T) {
	uc, _, _ := newTestUseCase()

	admin := &Identity{Kind: KindAdmin, LocalID: 2, UserID: 3, Rol: entity.RolAdmin}
	assert.NoError(t, uc.AuthorizeLocal(admin, 2))
	assert.ErrorIs(t, uc.AuthorizeLocal(admin, 5), domain.ErrTenantMismatch)

	super := &Identity{Kind: KindAdmin, LocalID: 1, UserID: 4, Rol: entity.RolSuperAdmin}
	assert.NoError(t, uc.AuthorizeLocal(super, 1))
	assert.NoError(t, uc.AuthorizeLocal(super, 99), "super_admin cruza locales")

	dispositivo := &Identity{Kind: KindDevice, LocalID: 7, DeviceID: "dev-A"}
	assert.NoError(t, uc.AuthorizeLocal(dispositivo, 7))
	assert.ErrorIs(t, uc.AuthorizeLocal(dispositivo, 8), domain.ErrTenantMismatch)
}
