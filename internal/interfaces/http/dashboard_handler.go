package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/grocery-pos/internal/application/dto"
	"github.com/tu-usuario/grocery-pos/internal/application/reports"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *reports.ReportsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.ReportsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs del negocio.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_sales, today_sales, today_count,
// total_products, total_customers, low_stock[5]).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
