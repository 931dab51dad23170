package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	appsub "github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/internal/domain"
	"github.com/conversahub/billing-api/pkg/logger"
)

// SubscriptionHandler endpoints de renovación: creación del cobro Pix,
// verificación por polling, webhook del gateway y descarga del recibo.
type SubscriptionHandler struct {
	createUC  *appsub.CreatePixUseCase
	confirmUC *appsub.ConfirmPaymentUseCase
	receiptUC *appsub.ReceiptUseCase
	log       *logger.Logger
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(
	createUC *appsub.CreatePixUseCase,
	confirmUC *appsub.ConfirmPaymentUseCase,
	receiptUC *appsub.ReceiptUseCase,
	log *logger.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{createUC: createUC, confirmUC: confirmUC, receiptUC: receiptUC, log: log}
}

// Create godoc
// @Summary      Crear cobro Pix para una factura pendiente
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubscriptionRequest  true  "invoiceId"
// @Success      200   {object}  dto.PixPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subscription [post]
func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreatePixPayment(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Verificar estado de un pago (polling del front)
// @Tags         subscription
// @Produce      json
// @Param        paymentId  path  string  true  "ID del pago en el gateway"
// @Success      200  {object}  dto.PaymentStatusResponse
// @Router       /api/subscription/check/{paymentId} [get]
func (h *SubscriptionHandler) Check(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")
	if paymentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "paymentId es requerido"})
	}
	out, err := h.confirmUC.CheckPaymentStatus(c.Context(), paymentID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Callback del gateway de pagos
// @Description  Siempre responde 200 {ok:true}: un error haría reintentar al gateway en tormenta. Sin :type el evento se ackea sin procesar.
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        type  path  string  false  "Tipo de gateway"
// @Success      200  {object}  dto.WebhookAck
// @Router       /api/subscription/webhook/{type} [post]
func (h *SubscriptionHandler) Webhook(c *fiber.Ctx) error {
	gatewayType := c.Params("type")
	if gatewayType == "" {
		// Sin :type no hay a quién atribuir el evento: se ackea sin procesar.
		h.log.Warn().Msg("webhook: ruta sin :type, ack sin procesar")
		return c.JSON(dto.WebhookAck{OK: true})
	}

	var event dto.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		h.log.Warn().Err(err).Msg("webhook: cuerpo no parseable, ack igual")
		return c.JSON(dto.WebhookAck{OK: true})
	}

	if err := h.confirmUC.HandleWebhookEvent(c.Context(), gatewayType, event); err != nil {
		// El error queda en el log; el gateway recibe el ack de todos modos.
		h.log.Error().Err(err).Str("type", gatewayType).Msg("webhook: procesamiento falló")
	}
	return c.JSON(dto.WebhookAck{OK: true})
}

// Receipt godoc
// @Summary      Descargar el recibo PDF de una factura paga
// @Tags         subscription
// @Produce      application/pdf
// @Param        invoiceId  path  int  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscription/receipt/{invoiceId} [get]
func (h *SubscriptionHandler) Receipt(c *fiber.Ctx) error {
	invoiceID, err := strconv.ParseInt(c.Params("invoiceId"), 10, 64)
	if err != nil || invoiceID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "invoiceId debe ser numérico"})
	}
	pdf, filename, err := h.receiptUC.DownloadReceiptPDF(c.Context(), GetCompanyID(c), invoiceID)
	if err != nil {
		return h.mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// mapError traduce errores de dominio a status HTTP.
func (h *SubscriptionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la factura no pertenece a esta empresa"})
	}
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		return c.Status(gwErr.StatusCode).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: gwErr.Message})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error no mapeado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
