package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
	"github.com/jhoicas/kiosko-api/internal/application/dto"
)

// ProductoHandler maneja el CRUD de productos del panel de administración.
// Los requests de creación/edición llegan por multipart: campos del producto
// más una imagen opcional.
type ProductoHandler struct {
	uc     *catalogo.ProductoUseCase
	authUC *auth.AuthUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *catalogo.ProductoUseCase, authUC *auth.AuthUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc, authUC: authUC}
}

// List godoc
// @Summary      Listar productos del local
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        local_id  query  int  false  "Solo super_admin puede pedir otro local"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/admin/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
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
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        nombre        formData  string  true   "Nombre"
// @Param        precio        formData  string  true   "Precio (decimal)"
// @Param        categoria_id  formData  int     true   "Categoría del mismo local"
// @Param        imagen        formData  file    false  "Imagen del producto"
// @Success      201  {object}  dto.ProductoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}

	var in dto.CreateProductoRequest
	in.Nombre = c.FormValue("nombre")
	in.Descripcion = c.FormValue("descripcion")

	precio, err := decimal.NewFromString(c.FormValue("precio"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio inválido"})
	}
	in.Precio = precio

	categoriaID, err := strconv.ParseInt(c.FormValue("categoria_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoria_id inválido"})
	}
	in.CategoriaID = categoriaID

	if v := c.FormValue("disponible"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "disponible inválido"})
		}
		in.Disponible = &b
	}
	if v := c.FormValue("destacado"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "destacado inválido"})
		}
		in.Destacado = &b
	}

	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	imagen, err := parseImagen(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "no se pudo leer la imagen"})
	}

	out, err := h.uc.Create(c.Context(), localID, in, imagen)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      int   true   "ID del producto"
// @Param        imagen  formData  file  false  "Imagen nueva (reemplaza la anterior)"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	productoID, err := c.ParamsInt("id")
	if err != nil || productoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}

	var in dto.UpdateProductoRequest
	if v, ok := formValue(c, "nombre"); ok {
		in.Nombre = &v
	}
	if v, ok := formValue(c, "descripcion"); ok {
		in.Descripcion = &v
	}
	if v, ok := formValue(c, "precio"); ok {
		precio, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio inválido"})
		}
		in.Precio = &precio
	}
	if v, ok := formValue(c, "categoria_id"); ok {
		categoriaID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoria_id inválido"})
		}
		in.CategoriaID = &categoriaID
	}
	if v, ok := formValue(c, "disponible"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "disponible inválido"})
		}
		in.Disponible = &b
	}
	if v, ok := formValue(c, "destacado"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "destacado inválido"})
		}
		in.Destacado = &b
	}

	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	imagen, err := parseImagen(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "no se pudo leer la imagen"})
	}

	out, err := h.uc.Update(c.Context(), int64(productoID), localID, in, imagen)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.EliminarProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	productoID, err := c.ParamsInt("id")
	if err != nil || productoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	localID, err := resolveLocalID(c, h.authUC)
	if err != nil {
		return mapError(c, err)
	}
	out, err := h.uc.Delete(c.Context(), int64(productoID), localID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// parseImagen lee el archivo "imagen" del multipart si viene; sin archivo
// devuelve nil sin error.
func parseImagen(c *fiber.Ctx) (*dto.ImagenUpload, error) {
	fh, err := c.FormFile("imagen")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.ImagenUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formValue distingue campo ausente de campo vacío en un multipart.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return "", false
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
