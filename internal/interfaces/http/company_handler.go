package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/application/usecase"
	"github.com/conversahub/billing-api/internal/domain"
)

// CompanyHandler lecturas de la empresa del token (pantalla de renovación).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Me godoc
// @Summary      Empresa del token con plan y vencimiento
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetWithPlan(c.Context(), GetCompanyID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListInvoices godoc
// @Summary      Facturas de la empresa del token (pendientes primero)
// @Tags         companies
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.InvoiceResponse
// @Router       /api/companies/me/invoices [get]
func (h *CompanyHandler) ListInvoices(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListInvoices(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
