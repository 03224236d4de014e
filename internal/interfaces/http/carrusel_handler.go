package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/dto"
	"github.com/jhoicas/kiosko-api/internal/application/menu"
)

// CarruselHandler maneja la configuración del carrusel del kiosk.
type CarruselHandler struct {
	uc     *menu.MenuUseCase
	authUC *auth.AuthUseCase
}

// NewCarruselHandler construye el handler.
func NewCarruselHandler(uc *menu.MenuUseCase, authUC *auth.AuthUseCase) *CarruselHandler {
	return &CarruselHandler{uc: uc, authUC: authUC}
}

// Get godoc
// @Summary      Configuración vigente del carrusel
// @Tags         carrusel
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CarruselConfigResponse
// @Router       /api/carrusel/config [get]
func (h *CarruselHandler) Get(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.GetCarruselConfig(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar la configuración del carrusel
// @Tags         carrusel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CarruselConfigRequest  true  "mode, selectedCategories"
// @Success      200   {object}  dto.CarruselConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carrusel/config [put]
func (h *CarruselHandler) Update(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	var in dto.CarruselConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.UpdateCarruselConfig(localID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
