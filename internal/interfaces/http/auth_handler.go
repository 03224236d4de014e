package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/dto"
)

// AuthHandler maneja autenticación de dispositivos y admins, y verificación
// de tokens.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// DeviceAuth godoc
// @Summary      Autenticar dispositivo (kiosk/tablet)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeviceAuthRequest  true  "device_id, secret_key"
// @Success      200   {object}  dto.DeviceAuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/device [post]
func (h *AuthHandler) DeviceAuth(c *fiber.Ctx) error {
	var in dto.DeviceAuthRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "device_id y secret_key son requeridos"})
	}
	out, err := h.uc.AuthenticateDevice(in.DeviceID, in.SecretKey)
	if err != nil {
		// Cualquier fallo de credenciales responde igual: no se revela si el
		// device_id existe.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "dispositivo no autorizado"})
	}
	return c.JSON(out)
}

// AdminLogin godoc
// @Summary      Iniciar sesión de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "usuario, contrasena"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contrasena son requeridos"})
	}
	out, err := h.uc.AuthenticateAdmin(in.Usuario, in.Contrasena)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar el token del request
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyDeviceResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id.Kind == auth.KindAdmin {
		return c.JSON(dto.VerifyAdminResponse{
			Status:  "ok",
			UserID:  id.UserID,
			LocalID: id.LocalID,
			Rol:     id.Rol,
		})
	}
	return c.JSON(dto.VerifyDeviceResponse{
		Status:   "ok",
		DeviceID: id.DeviceID,
		LocalID:  id.LocalID,
		EsDemo:   id.EsDemo,
	})
}

// VerificarAdmin godoc
// @Summary      Verificar acceso de administrador
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyAdminResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/verificar [get]
func (h *AuthHandler) VerificarAdmin(c *fiber.Ctx) error {
	id := GetIdentity(c)
	rol := id.Rol
	if rol == "" {
		// Dispositivo demo: administra su local sin usuario real.
		rol = "demo"
	}
	return c.JSON(dto.VerifyAdminResponse{
		Status:  "ok",
		UserID:  id.UserID,
		LocalID: id.LocalID,
		Rol:     rol,
		EsDemo:  id.EsDemo,
	})
}
