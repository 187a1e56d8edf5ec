package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

var lima = time.FixedZone("America/Lima", -5*3600)
var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, lima)

const testUser = "user-1"

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

func seedLot(s *fakeStore, id, productID string, qty int, expiresInDays *int, cost float64) *entity.Lot {
	l := &entity.Lot{
		ID:         id,
		ProductID:  productID,
		Code:       "L-" + id,
		Quantity:   qty,
		UnitCost:   decimal.NewFromFloat(cost),
		UnitPrice:  decimal.NewFromFloat(cost * 2),
		ReceivedAt: testNow.AddDate(0, 0, -30),
		Status:     entity.LotStatusActive,
	}
	if expiresInDays != nil {
		exp := testNow.AddDate(0, 0, *expiresInDays)
		l.ExpiresAt = &exp
	}
	s.lots[id] = l
	return l
}

func days(d int) *int { return &d }

// commitInTx ejecuta CommitInTx dentro del runner fake, como lo haría una venta.
func commitInTx(t *testing.T, s *fakeStore, uc *appinventory.AllocateUseCase, productID string, qty int, reference string) ([]appinventory.CommittedAllocation, error) {
	t.Helper()
	var committed []appinventory.CommittedAllocation
	err := (&fakeTxRunner{s: s}).Run(context.Background(), func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		committed, err = uc.CommitInTx(context.Background(), lotRepo, movRepo, productRepo,
			productID, qty, testUser, reference, entity.ReasonSale)
		return err
	})
	return committed, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulate
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_PrevisualizaSinMutarNada(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, 10)
	seedLot(s, "a", "p1", 5, days(10), 2)
	seedLot(s, "b", "p1", 7, days(45), 2)

	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	resp, err := uc.Simulate(context.Background(), "p1", 8)
	require.NoError(t, err)

	assert.Equal(t, 8, resp.Requested)
	assert.Equal(t, 12, resp.Available)
	require.Len(t, resp.Plan, 2)
	assert.Equal(t, "a", resp.Plan[0].LotID)
	assert.Equal(t, 5, resp.Plan[0].Quantity)
	assert.Equal(t, 3, resp.Plan[1].Quantity)

	// Nada cambió: es solo lectura.
	assert.Equal(t, 5, s.lots["a"].Quantity)
	assert.Equal(t, 7, s.lots["b"].Quantity)
	assert.Empty(t, s.movs)
}

func TestSimulate_ProductoInexistente(t *testing.T) {
	s := newFakeStore()
	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	_, err := uc.Simulate(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CommitInTx
// ──────────────────────────────────────────────────────────────────────────────

// Lotes de 5, 7 y 10: pedir 12 vacía los dos primeros (quedan agotados) y no
// toca el tercero. Cada toma genera su movimiento de salida y el producto
// termina con el stock recalculado.
func TestCommitInTx_DescuentaFIFOYRegistraMovimientos(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, 10)
	seedLot(s, "a", "p1", 5, days(10), 2)
	seedLot(s, "b", "p1", 7, days(45), 3)
	seedLot(s, "c", "p1", 10, days(90), 4)

	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	committed, err := commitInTx(t, s, uc, "p1", 12, "venta-1")
	require.NoError(t, err)
	require.Len(t, committed, 2)

	assert.Equal(t, "a", committed[0].LotID)
	assert.Equal(t, 5, committed[0].Quantity)
	assert.True(t, committed[0].UnitCost.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "b", committed[1].LotID)
	assert.Equal(t, 7, committed[1].Quantity)

	assert.Equal(t, 0, s.lots["a"].Quantity)
	assert.Equal(t, entity.LotStatusDepleted, s.lots["a"].Status)
	assert.Equal(t, 0, s.lots["b"].Quantity)
	assert.Equal(t, entity.LotStatusDepleted, s.lots["b"].Status)
	assert.Equal(t, 10, s.lots["c"].Quantity)
	assert.Equal(t, entity.LotStatusActive, s.lots["c"].Status)

	require.Len(t, s.movs, 2)
	for _, m := range s.movs {
		assert.Equal(t, entity.MovementOut, m.Direction)
		assert.Equal(t, entity.ReasonSale, m.Reason)
		assert.Equal(t, "venta-1", m.Reference)
		assert.Equal(t, testUser, m.CreatedBy)
	}
	assert.Equal(t, 5, s.movs[0].QuantityBefore)
	assert.Equal(t, 0, s.movs[0].QuantityAfter)

	// Estado denormalizado recalculado dentro de la misma "transacción".
	p := s.products["p1"]
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, entity.StateNormal, p.State)
	require.NotNil(t, p.NearestExpiry)
	assert.Equal(t, *s.lots["c"].ExpiresAt, *p.NearestExpiry,
		"los lotes agotados ya no definen el vencimiento más próximo")
}

func TestCommitInTx_StockInsuficiente_SinEfectoAlguno(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, 10)
	seedLot(s, "a", "p1", 5, days(10), 2)
	seedLot(s, "b", "p1", 7, days(45), 3)

	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	_, err := commitInTx(t, s, uc, "p1", 13, "venta-2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: nada quedó a medias.
	assert.Equal(t, 5, s.lots["a"].Quantity)
	assert.Equal(t, 7, s.lots["b"].Quantity)
	assert.Empty(t, s.movs)
}

// El stock denormalizado del producto no es fuente de verdad: aunque diga 100,
// la asignación planifica sobre los lotes reales.
func TestCommitInTx_IgnoraStockDenormalizado(t *testing.T) {
	s := newFakeStore()
	p := seedProduct(s, "p1", 5, 10)
	p.Stock = 100
	seedLot(s, "a", "p1", 3, days(10), 2)

	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	_, err := commitInTx(t, s, uc, "p1", 4, "venta-3")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCommitInTx_CantidadNoPositiva(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", 5, 10)
	uc := appinventory.NewAllocateUseCase(&fakeLotRepo{s: s}, &fakeProductRepo{s: s}, fixedClock(), 30)

	_, err := commitInTx(t, s, uc, "p1", 0, "venta-4")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
