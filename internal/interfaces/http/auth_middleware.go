package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/dto"
	"github.com/jhoicas/kiosko-api/internal/domain"
)

// Local key para la identidad verificada en Fiber.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token y guarda la identidad verificada
// (dispositivo o admin) en c.Locals.
func AuthMiddleware(authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		id, err := authUC.Verify(token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// RequireAdmin exige una identidad con permisos de panel: admin real o el
// dispositivo demo (que administra su local de demostración).
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil || !id.EsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere un token de administrador"})
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) *auth.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

// resolveLocalID decide sobre qué local opera el request: si viene local_id en
// query se autoriza contra la identidad (solo super_admin cruza locales); si
// no, se usa el local del token.
func resolveLocalID(c *fiber.Ctx, authUC *auth.AuthUseCase) (int64, error) {
	id := GetIdentity(c)
	pedido := int64(c.QueryInt("local_id", 0))
	if pedido == 0 {
		return id.LocalID, nil
	}
	if err := authUC.AuthorizeLocal(id, pedido); err != nil {
		return 0, err
	}
	return pedido, nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
