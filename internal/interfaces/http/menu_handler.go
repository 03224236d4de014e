package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/menu"
)

// MenuHandler lecturas del menú que consumen los kiosks (y el panel).
type MenuHandler struct {
	uc     *menu.MenuUseCase
	authUC *auth.AuthUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *menu.MenuUseCase, authUC *auth.AuthUseCase) *MenuHandler {
	return &MenuHandler{uc: uc, authUC: authUC}
}

// Productos godoc
// @Summary      Productos del menú del local
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/menu/productos [get]
func (h *MenuHandler) Productos(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.GetProductos(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Categorias godoc
// @Summary      Categorías del menú del local
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoriaResponse
// @Router       /api/menu/categorias [get]
func (h *MenuHandler) Categorias(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.GetCategorias(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Completo godoc
// @Summary      Menú completo para el bootstrap del kiosk
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        local_id  query  int  false  "0 o ausente: todos los locales (solo super_admin)"
// @Success      200  {object}  dto.MenuCompletoResponse
// @Router       /api/menu/completo [get]
func (h *MenuHandler) Completo(c *fiber.Ctx) error {
	id := GetIdentity(c)
	pedido := int64(c.QueryInt("local_id", 0))
	if pedido == 0 && id.EsSuperAdmin() {
		// Vista global de monitoreo.
		out, err := h.uc.GetMenuCompleto(0)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(out)
	}
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.GetMenuCompleto(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// LocalesList godoc
// @Summary      Listar locales activos
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocalResponse
// @Router       /api/admin/locales [get]
func (h *MenuHandler) LocalesList(c *fiber.Ctx) error {
	out, err := h.uc.GetLocales()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Local godoc
// @Summary      Datos del local del token
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LocalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/local [get]
func (h *MenuHandler) Local(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.GetLocal(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
