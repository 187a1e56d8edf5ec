package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaviva/botica-api/internal/application/dto"
	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/application/sales"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

var lima = time.FixedZone("America/Lima", -5*3600)
var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, lima)

const testSeller = "vendedor-1"

func fixedClock() clock.Clock { return clock.NewFixed(testNow) }

func seedProduct(s *fakeStore, id string, minStock int, price float64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromFloat(price),
		MinStock: minStock,
		State:    entity.StateOutOfStock,
	}
	s.products[id] = p
	return p
}

func seedLot(s *fakeStore, id, productID string, qty int, expiresInDays int, cost float64) *entity.Lot {
	exp := testNow.AddDate(0, 0, expiresInDays)
	l := &entity.Lot{
		ID:         id,
		ProductID:  productID,
		Code:       "L-" + id,
		Quantity:   qty,
		UnitCost:   decimal.NewFromFloat(cost),
		UnitPrice:  decimal.NewFromFloat(cost * 2),
		ExpiresAt:  &exp,
		ReceivedAt: testNow.AddDate(0, 0, -30),
		Status:     entity.LotStatusActive,
	}
	s.lots[id] = l
	return l
}

func newCreateUC(s *fakeStore) *sales.CreateSaleUseCase {
	allocate := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)
	return sales.NewCreateSaleUseCase(&fakeTxRunner{s: s}, &fakeProductRepo{s: s}, allocate, fixedClock())
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_SurteDesdeVariosLotesEnOrdenFIFO(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, 3.50)
	seedLot(s, "a", "p1", 5, 10, 2)
	seedLot(s, "b", "p1", 7, 45, 3)

	resp, err := newCreateUC(s).Create(context.Background(), testSeller, dto.CreateSaleRequest{
		CustomerName:  "María Quispe",
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 8}},
	})
	require.NoError(t, err)

	assert.Equal(t, "B-000001", resp.Number)
	assert.Equal(t, entity.SaleStatusIssued, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(28.00)), "total = 8 * 3.50, got %s", resp.Total)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	require.Len(t, item.Lots, 2, "la línea registra el desglose por lote")
	assert.Equal(t, "a", item.Lots[0].LotID)
	assert.Equal(t, 5, item.Lots[0].Quantity)
	assert.Equal(t, "b", item.Lots[1].LotID)
	assert.Equal(t, 3, item.Lots[1].Quantity)

	// Lotes descontados: el que vence primero quedó vacío.
	assert.Equal(t, 0, s.lots["a"].Quantity)
	assert.Equal(t, entity.LotStatusDepleted, s.lots["a"].Status)
	assert.Equal(t, 4, s.lots["b"].Quantity)

	// Venta y desglose persistidos.
	require.NotNil(t, s.sales[resp.ID])
	require.Len(t, s.items[resp.ID], 1)
	require.Len(t, s.itemLots[item.ID], 2)
	assert.True(t, s.itemLots[item.ID][0].UnitCost.Equal(decimal.NewFromInt(2)),
		"el desglose guarda el costo del lote de origen")

	// Movimientos de salida con la venta como referencia.
	require.Len(t, s.movs, 2)
	for _, m := range s.movs {
		assert.Equal(t, entity.ReasonSale, m.Reason)
		assert.Equal(t, resp.ID, m.Reference)
		assert.Equal(t, testSeller, m.CreatedBy)
	}

	// Estado del producto recalculado: quedan 4 <= minStock 5.
	assert.Equal(t, 4, s.products["p1"].Stock)
	assert.Equal(t, entity.StateLowStock, s.products["p1"].State)
}

func TestCreateSale_VariasLineas_SumaTotales(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, 3.50)
	seedProduct(s, "p2", 2, 12.00)
	seedLot(s, "a", "p1", 10, 60, 2)
	seedLot(s, "b", "p2", 10, 60, 6)

	resp, err := newCreateUC(s).Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCard,
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(43.00)), "2*3.50 + 3*12.00, got %s", resp.Total)
	require.Len(t, resp.Items, 2)
}

// Si una línea no alcanza stock, la venta entera se revierte: no hay ventas
// parcialmente surtidas.
func TestCreateSale_StockInsuficiente_RevierteVentaCompleta(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, 3.50)
	seedProduct(s, "p2", 2, 12.00)
	seedLot(s, "a", "p1", 10, 60, 2)
	seedLot(s, "b", "p2", 1, 60, 6)

	_, err := newCreateUC(s).Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: 4}, // esta línea sí alcanzaba
			{ProductID: "p2", Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, s.lots["a"].Quantity, "la primera línea también se revierte")
	assert.Equal(t, 1, s.lots["b"].Quantity)
	assert.Empty(t, s.movs)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.items)
}

func TestCreateSale_Validaciones(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, 3.50)
	seedLot(s, "a", "p1", 10, 60, 2)
	uc := newCreateUC(s)

	_, err := uc.Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = uc.Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: "cheque",
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago desconocido")

	_, err = uc.Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	s := newFakeStore()
	_, err := newCreateUC(s).Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "fantasma", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las FKs de sale_items y sale_item_lots exigen que la cabecera exista antes
// de insertar las líneas; los fakes imponen el mismo orden que la base real.
func TestCreateSale_InsertaCabeceraAntesQueLasLineas(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, 3.50)
	seedLot(s, "a", "p1", 10, 60, 2)

	resp, err := newCreateUC(s).Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)

	sale := s.sales[resp.ID]
	require.NotNil(t, sale)
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(10.50)),
		"la cabecera se persiste ya con el total, got %s", sale.Total)
	require.Len(t, s.items[resp.ID], 1)
	require.Len(t, s.itemLots[resp.Items[0].ID], 1)
}

func TestCreateSale_CorrelativoAvanza(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2, 3.50)
	seedLot(s, "a", "p1", 10, 60, 2)
	uc := newCreateUC(s)

	first, err := uc.Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testSeller, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "B-000001", first.Number)
	assert.Equal(t, "B-000002", second.Number)
}
