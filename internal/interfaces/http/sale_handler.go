package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/application/dto"
	"github.com/tu-usuario/grocery-pos/internal/application/reports"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
)

// SaleHandler maneja el checkout y el historial de ventas.
type SaleHandler struct {
	engine   *checkout.Engine
	reports  *reports.ReportsUseCase
	shopName string
}

// NewSaleHandler construye el handler.
func NewSaleHandler(engine *checkout.Engine, reportsUC *reports.ReportsUseCase, shopName string) *SaleHandler {
	return &SaleHandler{engine: engine, reports: reportsUC, shopName: shopName}
}

func sessionFrom(c *fiber.Ctx) checkout.Session {
	return checkout.Session{UserID: GetUserID(c), Role: GetRole(c)}
}

// Checkout godoc
// @Summary      Completar una venta (cash o credit)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "items, payment_method, tendered/customer_id"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
	}

	lines := make([]checkout.LineRequest, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, checkout.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	cart, err := h.engine.BuildCart(lines)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_PRODUCT", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser al menos 1"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	session := sessionFrom(c)
	var change dto.CheckoutResponse
	if in.PaymentMethod == entity.PaymentCash {
		ch := cart.ComputeChange(in.Tendered, h.engine.TaxRate())
		change.Change = &ch
	}

	sale, err := h.engine.CompleteSale(c.Context(), checkout.CheckoutInput{
		Cart:           cart,
		PaymentMethod:  in.PaymentMethod,
		Tendered:       in.Tendered,
		CustomerID:     in.CustomerID,
		AllowOverLimit: in.AllowOverLimit,
		Session:        session,
	})
	if err != nil {
		return h.checkoutError(c, err)
	}

	resp, err := h.reports.GetSale(sale.ID, session)
	if err != nil || resp == nil {
		// La venta quedó escrita; responder con lo que el motor retornó.
		resp = &dto.SaleResponse{
			ID:            sale.ID,
			Timestamp:     sale.Timestamp,
			Subtotal:      sale.Subtotal,
			Tax:           sale.Tax,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			CustomerID:    sale.CustomerID,
			UserID:        sale.UserID,
		}
		for _, it := range sale.Items {
			resp.Items = append(resp.Items, dto.SaleItemResponse{
				ProductID: it.ProductID,
				Name:      it.Name,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
			})
		}
	}
	change.Sale = *resp
	return c.Status(fiber.StatusCreated).JSON(change)
}

// checkoutError mapea los errores del motor a respuestas HTTP. Los errores
// tipados llevan sus valores ofensores en Details para que el cliente pueda
// mostrarlos sin parsear el mensaje.
func (h *SaleHandler) checkoutError(c *fiber.Ctx, err error) error {
	var tenderErr *domain.InsufficientTenderError
	if errors.As(err, &tenderErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_TENDER", Message: tenderErr.Error(), Details: tenderErr,
		})
	}
	var limitErr *domain.CreditLimitExceededError
	if errors.As(err, &limitErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CREDIT_LIMIT_EXCEEDED", Message: limitErr.Error(), Details: limitErr,
		})
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: stockErr.Error(), Details: stockErr.Shortages,
		})
	}
	var commitErr *domain.CommitError
	if errors.As(err, &commitErr) {
		// Commit parcial: la venta quedó escrita pero alguna mutación falló.
		// 500 con el detalle de etapas para reconciliación manual.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "PARTIAL_COMMIT", Message: commitErr.Error(), Details: commitErr,
		})
	}
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "STORAGE", Message: storageErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
	case errors.Is(err, domain.ErrNoCustomerSelected):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_CUSTOMER", Message: "venta a crédito requiere customer_id"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_CUSTOMER", Message: "el cliente no existe"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payment_method debe ser cash o credit"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// List godoc
// @Summary      Historial de ventas; ?period=today|week|month|custom, ?format=csv exporta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        period          query  string  false  "all|today|week|month|custom"
// @Param        from            query  string  false  "RFC3339, solo custom"
// @Param        to              query  string  false  "RFC3339, solo custom"
// @Param        payment_method  query  string  false  "cash|credit"
// @Param        user_id         query  string  false  "filtrar por vendedor (solo owner)"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	q := reports.HistoryQuery{
		Period:        c.Query("period"),
		PaymentMethod: c.Query("payment_method"),
		UserID:        c.Query("user_id"),
	}
	if q.Period == reports.PeriodCustom {
		if v := c.Query("from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
			}
			q.From = t
		}
		if v := c.Query("to"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
			}
			q.To = t
		}
	}
	session := sessionFrom(c)

	if c.Query("format") == "csv" {
		data, err := h.reports.ExportCSV(q, session)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period inválido"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
		return c.Send(data)
	}

	out, err := h.reports.History(q, session)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.reports.GetSale(id, sessionFrom(c))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede ver sus propias ventas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo en texto plano de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      plain
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	text, err := h.reports.Receipt(id, sessionFrom(c), h.shopName)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede ver sus propias ventas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if text == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(text)
}
