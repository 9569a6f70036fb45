package reports

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/application/checkout"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const receiptWidth = 40

// Receipt genera el recibo de texto plano de una venta, con los montos
// formateados con separador de miles ($1,234.56). Asistentes solo pueden
// emitir recibos de sus propias ventas (misma regla que GetSale).
func (uc *ReportsUseCase) Receipt(id string, session checkout.Session, shopName string) (string, error) {
	saleResp, err := uc.GetSale(id, session)
	if err != nil {
		return "", err
	}
	if saleResp == nil {
		return "", nil
	}
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return "", err
	}
	return renderReceipt(sale, uc.salespersonName(sale.UserID), shopName), nil
}

func renderReceipt(s *entity.Sale, salesperson, shopName string) string {
	p := message.NewPrinter(language.English)
	divider := strings.Repeat("-", receiptWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", center(shopName))
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "Venta:    %s\n", s.ID)
	fmt.Fprintf(&b, "Fecha:    %s\n", s.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Atendió:  %s\n", salesperson)
	fmt.Fprintf(&b, "%s\n", divider)
	for _, it := range s.Items {
		amount := p.Sprintf("$%.2f", it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).InexactFloat64())
		left := fmt.Sprintf("%dx %s", it.Quantity, it.Name)
		fmt.Fprintf(&b, "%s\n", padLine(left, amount))
	}
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "%s\n", padLine("Subtotal", p.Sprintf("$%.2f", s.Subtotal.InexactFloat64())))
	fmt.Fprintf(&b, "%s\n", padLine("Impuesto", p.Sprintf("$%.2f", s.Tax.InexactFloat64())))
	fmt.Fprintf(&b, "%s\n", padLine("TOTAL", p.Sprintf("$%.2f", s.Total.InexactFloat64())))
	fmt.Fprintf(&b, "%s\n", divider)
	if s.PaymentMethod == entity.PaymentCredit {
		fmt.Fprintf(&b, "Pago: cuenta corriente\n")
	} else {
		fmt.Fprintf(&b, "Pago: efectivo\n")
	}
	fmt.Fprintf(&b, "%s\n", center("¡Gracias por su compra!"))
	return b.String()
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// padLine alinea texto a la izquierda y monto a la derecha dentro del ancho.
func padLine(left, right string) string {
	gap := receiptWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
