package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
	"github.com/jhoicas/kiosko-api/internal/application/dto"
)

// CategoriaHandler maneja el CRUD y reordenamiento de categorías del panel.
type CategoriaHandler struct {
	uc     *catalogo.CategoriaUseCase
	authUC *auth.AuthUseCase
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *catalogo.CategoriaUseCase, authUC *auth.AuthUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc, authUC: authUC}
}

// List godoc
// @Summary      Listar categorías del local
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoriaResponse
// @Router       /api/admin/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.List(localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoriaRequest  true  "nombre, descripcion"
// @Success      201   {object}  dto.CategoriaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	var in dto.CreateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(localID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoriaRequest  true  "nombre, descripcion"
// @Success      200   {object}  dto.CategoriaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/categorias/{id} [put]
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	categoriaID, err := c.ParamsInt("id")
	if err != nil || categoriaID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	var in dto.UpdateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(int64(categoriaID), localID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría y sus productos
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.EliminarCategoriaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/categorias/{id} [delete]
func (h *CategoriaHandler) Delete(c *fiber.Ctx) error {
	categoriaID, err := c.ParamsInt("id")
	if err != nil || categoriaID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.Delete(c.Context(), int64(categoriaID), localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Reordenar godoc
// @Summary      Reordenar las categorías del local
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReordenarCategoriasRequest  true  "orden completo de ids"
// @Success      200   {object}  dto.ReordenarCategoriasResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/categorias/reordenar [put]
func (h *CategoriaHandler) Reordenar(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	var in dto.ReordenarCategoriasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Reordenar(c.Context(), localID, in.Orden)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
