package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de parseo de tokens. El caso de uso de auth los traduce a errores de dominio.
var (
	ErrExpired   = errors.New("jwt: token expirado")
	ErrMalformed = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más las dos formas de identidad de la
// aplicación: dispositivo (kiosk/tablet) y admin (personal del local). Un token
// válido satisface exactamente una de las dos formas; LocalID es común a ambas.
type Claims struct {
	jwt.RegisteredClaims
	// Forma dispositivo
	DeviceID string `json:"device_id,omitempty"`
	Tipo     string `json:"tipo,omitempty"` // "kiosk" | "admin_pc" | "tablet" | "demo"
	EsDemo   bool   `json:"is_demo,omitempty"`
	// Forma admin
	UserID int64  `json:"user_id,omitempty"`
	Rol    string `json:"rol,omitempty"` // "empleado" | "admin" | "super_admin"
	Nombre string `json:"nombre,omitempty"`
	// Común: local (tenant) al que pertenece la identidad
	LocalID int64 `json:"local_id"`
}

// IsDevice indica si los claims satisfacen la forma dispositivo.
func (c *Claims) IsDevice() bool {
	return c.DeviceID != "" && c.LocalID != 0
}

// IsAdmin indica si los claims satisfacen la forma admin.
func (c *Claims) IsAdmin() bool {
	return c.UserID != 0 && c.LocalID != 0
}

// GenerateDevice genera un token JWT firmado con la forma dispositivo.
func GenerateDevice(secret, deviceID string, localID int64, tipo string, esDemo bool, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		DeviceID: deviceID,
		Tipo:     tipo,
		EsDemo:   esDemo,
		LocalID:  localID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAdmin genera un token JWT firmado con la forma admin.
func GenerateAdmin(secret string, userID, localID int64, rol, nombre, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   nombre,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Rol:     rol,
		Nombre:  nombre,
		LocalID: localID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims decodificados.
// Retorna ErrExpired si el token venció y ErrMalformed para cualquier otro fallo
// (firma incorrecta, estructura ilegible, método de firma inesperado).
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
