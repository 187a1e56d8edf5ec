package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante de una venta: PDF descargable y enlace
// de WhatsApp con el resumen en texto para enviarlo al cliente.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	pdfGen      TicketPDFGenerator
	linkBuilder ReceiptLinkBuilder
	business    BusinessInfo
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, pdfGen TicketPDFGenerator, linkBuilder ReceiptLinkBuilder, business BusinessInfo) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		pdfGen:      pdfGen,
		linkBuilder: linkBuilder,
		business:    business,
	}
}

// GeneratePDF arma el ticket PDF de la venta.
func (uc *ReceiptUseCase) GeneratePDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, lines, err := uc.loadTicket(saleID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSaleTicket(ctx, sale, lines, uc.business)
}

// WhatsAppLink devuelve el enlace wa.me con el resumen del ticket. Si no se
// pasa teléfono se usa el registrado en la venta.
func (uc *ReceiptUseCase) WhatsAppLink(saleID, phone string) (*dto.WhatsAppLinkResponse, error) {
	sale, lines, err := uc.loadTicket(saleID)
	if err != nil {
		return nil, err
	}
	if phone == "" {
		phone = sale.CustomerPhone
	}
	if phone == "" {
		return nil, domain.ErrInvalidInput
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nTicket %s\n\n", uc.business.Name, sale.Number)
	for _, l := range lines {
		fmt.Fprintf(&b, "%dx %s  S/ %s\n", l.Quantity, l.ProductName, l.Subtotal)
	}
	fmt.Fprintf(&b, "\nTotal: S/ %s\n¡Gracias por su compra!", sale.Total.StringFixed(2))

	link, err := uc.linkBuilder.BuildReceiptLink(phone, b.String())
	if err != nil {
		return nil, err
	}
	return &dto.WhatsAppLinkResponse{SaleID: saleID, Phone: phone, Link: link}, nil
}

// loadTicket carga la venta y resuelve los nombres de producto de cada línea.
func (uc *ReceiptUseCase) loadTicket(saleID string) (*entity.Sale, []TicketLine, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, nil, err
	}
	lines := make([]TicketLine, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, TicketLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
		})
	}
	return sale, lines, nil
}
