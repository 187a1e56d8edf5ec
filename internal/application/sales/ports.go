package sales

import (
	"context"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// que necesita el flujo de ventas (lotes + movimientos + productos + ventas).
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// TicketPDFGenerator genera el comprobante PDF de una venta.
type TicketPDFGenerator interface {
	GenerateSaleTicket(ctx context.Context, sale *entity.Sale, items []TicketLine, business BusinessInfo) ([]byte, error)
}

// TicketLine línea del comprobante ya resuelta (nombre de producto incluido).
type TicketLine struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// BusinessInfo datos de la botica para el encabezado del ticket.
type BusinessInfo struct {
	Name    string
	RUC     string
	Address string
	Phone   string
}

// ReceiptLinkBuilder arma el enlace de WhatsApp para enviar el comprobante.
type ReceiptLinkBuilder interface {
	BuildReceiptLink(phone, text string) (string, error)
}
