package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/application/purchases"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

var lima = time.FixedZone("America/Lima", -5*3600)
var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, lima)

const testBuyer = "almacenero-1"

func fixedClock() clock.Clock { return clock.NewFixed(testNow) }

func seedProduct(s *fakeStore, id string, minStock int) *entity.Product {
	p := &entity.Product{
		ID:       id,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		MinStock: minStock,
		State:    entity.StateOutOfStock,
	}
	s.products[id] = p
	return p
}

func seedSupplier(s *fakeStore, id string) *entity.Supplier {
	sup := &entity.Supplier{ID: id, Name: "Droguería " + id, RUC: "20100000001"}
	s.suppliers[id] = sup
	return sup
}

func newCreateUC(s *fakeStore) *purchases.CreatePurchaseUseCase {
	return purchases.NewCreatePurchaseUseCase(
		&fakeTxRunner{s: s}, &fakeSupplierRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_CreaLotesYMovimientosPorLinea(t *testing.T) {
	s := newFakeStore()
	seedSupplier(s, "prov-1")
	seedProduct(s, "p1", 5)
	seedProduct(s, "p2", 5)

	exp := testNow.AddDate(0, 0, 180)
	resp, err := newCreateUC(s).Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID:    "prov-1",
		InvoiceNumber: "F001-000123",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", LotCode: "L-901", Quantity: 10, UnitCost: decimal.NewFromFloat(2.00), UnitPrice: decimal.NewFromFloat(3.50), ExpiresAt: &exp},
			{ProductID: "p2", LotCode: "L-902", Quantity: 4, UnitCost: decimal.NewFromFloat(6.00), UnitPrice: decimal.NewFromFloat(12.00)},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(44.00)), "10*2.00 + 4*6.00, got %s", resp.Total)
	require.Len(t, resp.Items, 2)

	// Cada línea generó su lote, ligado al documento y al proveedor.
	require.Len(t, s.lots, 2)
	lot := s.lots[resp.Items[0].LotID]
	require.NotNil(t, lot)
	assert.Equal(t, "p1", lot.ProductID)
	assert.Equal(t, 10, lot.Quantity)
	assert.Equal(t, entity.LotStatusActive, lot.Status)
	require.NotNil(t, lot.PurchaseID)
	assert.Equal(t, resp.ID, *lot.PurchaseID)
	require.NotNil(t, lot.SupplierID)
	assert.Equal(t, "prov-1", *lot.SupplierID)

	// Movimientos de entrada con el documento como referencia.
	require.Len(t, s.movs, 2)
	for _, m := range s.movs {
		assert.Equal(t, entity.MovementIn, m.Direction)
		assert.Equal(t, entity.ReasonPurchase, m.Reason)
		assert.Equal(t, resp.ID, m.Reference)
		assert.Equal(t, testBuyer, m.CreatedBy)
		assert.Equal(t, 0, m.QuantityBefore)
		assert.Equal(t, m.Quantity, m.QuantityAfter)
	}

	// Estado denormalizado recalculado tras el ingreso.
	assert.Equal(t, 10, s.products["p1"].Stock)
	assert.Equal(t, entity.StateNormal, s.products["p1"].State)
	assert.Equal(t, 4, s.products["p2"].Stock)
	assert.Equal(t, entity.StateLowStock, s.products["p2"].State)
}

// La FK de purchase_items exige que la cabecera exista antes de insertar las
// líneas; los fakes imponen el mismo orden que la base real.
func TestCreatePurchase_InsertaCabeceraAntesQueLasLineas(t *testing.T) {
	s := newFakeStore()
	seedSupplier(s, "prov-1")
	seedProduct(s, "p1", 2)

	resp, err := newCreateUC(s).Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 6, UnitCost: decimal.NewFromFloat(1.50), UnitPrice: decimal.NewFromFloat(3.00)},
		},
	})
	require.NoError(t, err)

	purchase := s.purchases[resp.ID]
	require.NotNil(t, purchase)
	assert.True(t, purchase.Total.Equal(decimal.NewFromFloat(9.00)),
		"la cabecera se persiste ya con el total, got %s", purchase.Total)
	require.Len(t, s.items[resp.ID], 1)
	assert.True(t, s.items[resp.ID][0].Subtotal.Equal(decimal.NewFromFloat(9.00)))
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 2)

	_, err := newCreateUC(s).Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID: "fantasma",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.purchases)
	assert.Empty(t, s.lots)
}

func TestCreatePurchase_ProductoInexistente(t *testing.T) {
	s := newFakeStore()
	seedSupplier(s, "prov-1")

	_, err := newCreateUC(s).Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "fantasma", Quantity: 1, UnitCost: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.purchases)
	assert.Empty(t, s.movs)
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	s := newFakeStore()
	seedSupplier(s, "prov-1")
	seedProduct(s, "p1", 2)
	uc := newCreateUC(s)

	_, err := uc.Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{SupplierID: "prov-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "compra sin líneas")

	_, err = uc.Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 0, UnitCost: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.Create(context.Background(), testBuyer, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.CreatePurchaseItemRequest{
			{ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}
