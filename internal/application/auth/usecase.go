package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kiosko-api/internal/application/dto"
	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/kiosko-api/pkg/jwt"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret    string
	DeviceTTL time.Duration
	AdminTTL  time.Duration
	Issuer    string
}

// DemoConfig modo demo/portfolio: el device_id reservado autentica siempre
// contra el local de demostración sin tocar la base.
type DemoConfig struct {
	DeviceID string
	LocalID  int64
}

// Kind clase de identidad decodificada de un token.
type Kind int

const (
	KindDevice Kind = iota + 1
	KindAdmin
)

// Identity identidad verificada de un token, decodificada una sola vez.
// Unión etiquetada: los campos de dispositivo valen solo con KindDevice y los
// de admin solo con KindAdmin; LocalID y EsDemo son comunes.
type Identity struct {
	Kind    Kind
	LocalID int64
	EsDemo  bool
	// Forma dispositivo
	DeviceID string
	Tipo     string
	// Forma admin
	UserID int64
	Rol    string
	Nombre string
}

// EsAdmin indica si la identidad puede operar el panel de administración.
// El modo demo se trata como admin de su local de demostración.
func (i *Identity) EsAdmin() bool {
	return i.Kind == KindAdmin || i.EsDemo
}

// EsSuperAdmin indica si la identidad cruza locales (única excepción al
// aislamiento por tenant).
func (i *Identity) EsSuperAdmin() bool {
	return i.Kind == KindAdmin && i.Rol == entity.RolSuperAdmin
}

// AuthUseCase autenticación de dispositivos y admins, verificación de tokens
// y autorización por local. Es la única puerta por la que pasa toda operación
// protegida.
type AuthUseCase struct {
	usuarioRepo     repository.UsuarioRepository
	dispositivoRepo repository.DispositivoRepository
	jwtCfg          JWTConfig
	demo            DemoConfig
	log             *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	usuarioRepo repository.UsuarioRepository,
	dispositivoRepo repository.DispositivoRepository,
	jwtCfg JWTConfig,
	demo DemoConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo:     usuarioRepo,
		dispositivoRepo: dispositivoRepo,
		jwtCfg:          jwtCfg,
		demo:            demo,
		log:             log,
	}
}

// AuthenticateDevice autentica un kiosk/tablet por device_id + secreto y emite
// un token con forma dispositivo. Cualquier fallo (device_id desconocido,
// dispositivo inactivo o secreto incorrecto) devuelve el mismo ErrNotFound
// para no revelar qué identificadores existen.
func (uc *AuthUseCase) AuthenticateDevice(deviceID, secretKey string) (*dto.DeviceAuthResponse, error) {
	// Dispositivo demo: no toca la base y siempre autentica contra el local fijo.
	if deviceID == uc.demo.DeviceID {
		token, err := pkgjwt.GenerateDevice(uc.jwtCfg.Secret, deviceID, uc.demo.LocalID, "demo", true, uc.jwtCfg.Issuer, uc.jwtCfg.DeviceTTL)
		if err != nil {
			return nil, err
		}
		return &dto.DeviceAuthResponse{Token: token, DeviceID: deviceID, LocalID: uc.demo.LocalID, EsDemo: true}, nil
	}

	dispositivo, err := uc.dispositivoRepo.GetActiveByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if dispositivo == nil {
		return nil, domain.ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(dispositivo.SecretKey), []byte(secretKey)) != 1 {
		return nil, domain.ErrNotFound
	}

	// Último acceso: best-effort, un fallo acá no invalida la autenticación.
	if err := uc.dispositivoRepo.TouchUltimoAcceso(dispositivo.ID); err != nil {
		uc.log.Warn().Err(err).Str("device_id", deviceID).Msg("no se pudo registrar el último acceso")
	}

	token, err := pkgjwt.GenerateDevice(uc.jwtCfg.Secret, deviceID, dispositivo.LocalID, dispositivo.Tipo, false, uc.jwtCfg.Issuer, uc.jwtCfg.DeviceTTL)
	if err != nil {
		return nil, err
	}
	return &dto.DeviceAuthResponse{Token: token, DeviceID: deviceID, LocalID: dispositivo.LocalID}, nil
}

// AuthenticateAdmin autentica un usuario por nombre + contraseña y emite un
// token con forma admin. Usuario desconocido, inactivo o contraseña incorrecta
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) AuthenticateAdmin(usuario, contrasena string) (*dto.AdminLoginResponse, error) {
	user, err := uc.usuarioRepo.GetActiveByNombre(usuario)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(contrasena)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.usuarioRepo.TouchUltimoAcceso(user.ID); err != nil {
		uc.log.Warn().Err(err).Str("usuario", usuario).Msg("no se pudo registrar el último acceso")
	}

	token, err := pkgjwt.GenerateAdmin(uc.jwtCfg.Secret, user.ID, user.LocalID, user.Rol, user.Nombre, uc.jwtCfg.Issuer, uc.jwtCfg.AdminTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{Token: token, Usuario: user.Nombre, LocalID: user.LocalID, Rol: user.Rol}, nil
}

// Verify parsea el token y lo clasifica en una de las dos formas de identidad.
// Un claim set que no satisface ninguna forma se rechaza con
// ErrUnrecognizedClaims.
func (uc *AuthUseCase) Verify(token string) (*Identity, error) {
	claims, err := pkgjwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, pkgjwt.ErrExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	switch {
	case claims.IsDevice():
		return &Identity{
			Kind:     KindDevice,
			LocalID:  claims.LocalID,
			EsDemo:   claims.EsDemo || claims.DeviceID == uc.demo.DeviceID,
			DeviceID: claims.DeviceID,
			Tipo:     claims.Tipo,
		}, nil
	case claims.IsAdmin():
		return &Identity{
			Kind:    KindAdmin,
			LocalID: claims.LocalID,
			UserID:  claims.UserID,
			Rol:     claims.Rol,
			Nombre:  claims.Nombre,
		}, nil
	default:
		return nil, domain.ErrUnrecognizedClaims
	}
}

// AuthorizeLocal verifica que la identidad pueda operar sobre el local pedido.
// super_admin cruza locales; todo el resto queda confinado al local de su token.
func (uc *AuthUseCase) AuthorizeLocal(id *Identity, localID int64) error {
	if id.LocalID == localID {
		return nil
	}
	if id.EsSuperAdmin() {
		return nil
	}
	return domain.ErrTenantMismatch
}
