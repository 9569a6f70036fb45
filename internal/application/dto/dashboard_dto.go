package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del negocio: acumulado histórico, ventas de hoy, tamaño del catálogo
// y de la cartera de clientes, más los productos con stock más bajo.
type DashboardSummaryDTO struct {
	// Ingresos acumulados de todas las ventas registradas
	TotalSales decimal.Decimal `json:"total_sales"`

	// Métricas del día actual (00:00 – 23:59)
	TodaySales decimal.Decimal `json:"today_sales"`
	TodayCount int             `json:"today_count"`

	TotalProducts  int `json:"total_products"`
	TotalCustomers int `json:"total_customers"`

	// Hasta 5 productos con stock en o bajo el umbral, los más bajos primero
	LowStock []LowStockDTO `json:"low_stock"`
}

// LowStockDTO producto con stock bajo para el widget del dashboard.
type LowStockDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
}
