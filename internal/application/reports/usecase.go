// Package reports implementa los reportes del POS: historial de ventas con
// filtros de período, exportación CSV, resumen del dashboard y recibos.
package reports

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/application/dto"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

// Períodos aceptados por el historial de ventas.
const (
	PeriodAll    = "all"
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

// HistoryQuery filtros del historial de ventas.
type HistoryQuery struct {
	Period        string
	From, To      time.Time // solo para PeriodCustom
	PaymentMethod string
	UserID        string
}

// ReportsUseCase reportes sobre ventas, catálogo y cartera.
type ReportsUseCase struct {
	sales             repository.SaleRepository
	products          repository.ProductRepository
	customers         repository.CustomerRepository
	users             repository.UserRepository
	lowStockThreshold int64
}

// NewReportsUseCase construye el caso de uso de reportes.
func NewReportsUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	lowStockThreshold int64,
) *ReportsUseCase {
	return &ReportsUseCase{
		sales:             sales,
		products:          products,
		customers:         customers,
		users:             users,
		lowStockThreshold: lowStockThreshold,
	}
}

// History lista ventas según el filtro. Los asistentes solo ven sus propias
// ventas: su UserID se fuerza en el filtro sin importar lo pedido.
func (uc *ReportsUseCase) History(q HistoryQuery, session checkout.Session) (*dto.SaleListResponse, error) {
	filter, err := uc.buildFilter(q, session)
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// ExportCSV exporta el historial filtrado como CSV, una fila por venta.
func (uc *ReportsUseCase) ExportCSV(q HistoryQuery, session checkout.Session) ([]byte, error) {
	filter, err := uc.buildFilter(q, session)
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.List(filter)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Transaction ID", "Salesperson", "Payment Method", "Subtotal", "Tax", "Total"}); err != nil {
		return nil, err
	}
	for _, s := range list {
		name, ok := names[s.UserID]
		if !ok {
			name = uc.salespersonName(s.UserID)
			names[s.UserID] = name
		}
		row := []string{
			s.Timestamp.Format(time.RFC3339),
			s.ID,
			name,
			s.PaymentMethod,
			s.Subtotal.StringFixed(2),
			s.Tax.StringFixed(2),
			s.Total.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dashboard calcula el resumen de KPIs del negocio.
func (uc *ReportsUseCase) Dashboard() (*dto.DashboardSummaryDTO, error) {
	sales, err := uc.sales.List(repository.SaleFilter{})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := &dto.DashboardSummaryDTO{
		TotalSales: decimal.Zero,
		TodaySales: decimal.Zero,
	}
	for _, s := range sales {
		summary.TotalSales = summary.TotalSales.Add(s.Total)
		if !s.Timestamp.Before(dayStart) {
			summary.TodaySales = summary.TodaySales.Add(s.Total)
			summary.TodayCount++
		}
	}

	products, err := uc.products.List(0, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalProducts = len(products)

	customers, err := uc.customers.List(0, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalCustomers = len(customers)

	low, err := uc.products.ListLowStock(uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	if len(low) > 5 {
		low = low[:5]
	}
	for _, p := range low {
		summary.LowStock = append(summary.LowStock, dto.LowStockDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
		})
	}
	return summary, nil
}

// GetSale obtiene una venta por ID. Asistentes solo ven las propias.
func (uc *ReportsUseCase) GetSale(id string, session checkout.Session) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	if session.Role != entity.RoleOwner && sale.UserID != session.UserID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

func (uc *ReportsUseCase) buildFilter(q HistoryQuery, session checkout.Session) (repository.SaleFilter, error) {
	filter := repository.SaleFilter{
		PaymentMethod: q.PaymentMethod,
		UserID:        q.UserID,
	}
	if session.Role != entity.RoleOwner {
		filter.UserID = session.UserID
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch q.Period {
	case PeriodAll, "":
	case PeriodToday:
		filter.From = dayStart
	case PeriodWeek:
		filter.From = dayStart.AddDate(0, 0, -6)
	case PeriodMonth:
		filter.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodCustom:
		filter.From = q.From
		filter.To = q.To
	default:
		return repository.SaleFilter{}, domain.ErrInvalidInput
	}
	return filter, nil
}

func (uc *ReportsUseCase) salespersonName(userID string) string {
	user, err := uc.users.GetByID(userID)
	if err != nil || user == nil {
		return userID
	}
	if user.FullName != "" {
		return user.FullName
	}
	return user.Username
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		Timestamp:     s.Timestamp,
		Items:         items,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
	}
}
