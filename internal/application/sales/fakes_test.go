package sales_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	dominv "github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el flujo de ventas: lotes + movimientos + productos +
// ventas, con rollback simulado por snapshot en el TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	lots     map[string]*entity.Lot
	products map[string]*entity.Product
	movs     []*entity.Movement
	sales    map[string]*entity.Sale
	items    map[string][]*entity.SaleItem    // saleID -> líneas
	itemLots map[string][]*entity.SaleItemLot // saleItemID -> desglose
	nextNum  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lots:     make(map[string]*entity.Lot),
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		items:    make(map[string][]*entity.SaleItem),
		itemLots: make(map[string][]*entity.SaleItemLot),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, l := range s.lots {
		c := *l
		snap.lots[id] = &c
	}
	for id, p := range s.products {
		c := *p
		snap.products[id] = &c
	}
	snap.movs = append([]*entity.Movement(nil), s.movs...)
	for id, sale := range s.sales {
		c := *sale
		snap.sales[id] = &c
	}
	for saleID, items := range s.items {
		for _, it := range items {
			c := *it
			snap.items[saleID] = append(snap.items[saleID], &c)
		}
	}
	for itemID, ils := range s.itemLots {
		for _, il := range ils {
			c := *il
			snap.itemLots[itemID] = append(snap.itemLots[itemID], &c)
		}
	}
	snap.nextNum = s.nextNum
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.lots = snap.lots
	s.products = snap.products
	s.movs = snap.movs
	s.sales = snap.sales
	s.items = snap.items
	s.itemLots = snap.itemLots
	s.nextNum = snap.nextNum
}

// ── LotRepository ─────────────────────────────────────────────────────────────

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	c := *lot
	r.s.lots[lot.ID] = &c
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *fakeLotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }

func (r *fakeLotRepo) Update(lot *entity.Lot) error {
	c := *lot
	r.s.lots[lot.ID] = &c
	return nil
}

func (r *fakeLotRepo) ListByProduct(productID string, status string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID != productID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	return dominv.SortCandidates(out), nil
}

func (r *fakeLotRepo) ListActiveByProductForUpdate(productID string) ([]*entity.Lot, error) {
	return r.ListByProduct(productID, entity.LotStatusActive)
}

func (r *fakeLotRepo) ListExpiredActive(before time.Time) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.Status == entity.LotStatusActive && l.ExpiresAt != nil && l.Quantity > 0 && l.ExpiresAt.Before(before) {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) UpdateStockState(productID string, stock int, state string, nearestExpiry *time.Time) error {
	p, ok := r.s.products[productID]
	if !ok {
		return nil
	}
	p.Stock = stock
	p.State = state
	p.NearestExpiry = nearestExpiry
	return nil
}

func (r *fakeProductRepo) List(state string, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if state != "" && p.State != state {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeProductRepo) ListIDsWithActiveLots() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, l := range r.s.lots {
		if l.Status == entity.LotStatusActive && !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.s.movs = append(r.s.movs, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movs {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movs {
		if m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByLot(lotID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movs {
		if m.LotID != nil && *m.LotID == lotID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	c := *sale
	r.s.sales[sale.ID] = &c
	return nil
}

// CreateItem exige, como la FK real de sale_items, que la cabecera exista.
func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	if _, ok := r.s.sales[item.SaleID]; !ok {
		return fmt.Errorf("violación de clave foránea: venta %s inexistente", item.SaleID)
	}
	c := *item
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], &c)
	return nil
}

// CreateItemLot exige que la línea referenciada ya esté insertada.
func (r *fakeSaleRepo) CreateItemLot(il *entity.SaleItemLot) error {
	found := false
	for _, items := range r.s.items {
		for _, it := range items {
			if it.ID == il.SaleItemID {
				found = true
			}
		}
	}
	if !found {
		return fmt.Errorf("violación de clave foránea: línea %s inexistente", il.SaleItemID)
	}
	c := *il
	r.s.itemLots[il.SaleItemID] = append(r.s.itemLots[il.SaleItemID], &c)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	c := *sale
	return &c, nil
}

func (r *fakeSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }

func (r *fakeSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.items[saleID] {
		c := *it
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeSaleRepo) ListItemLots(saleItemID string) ([]*entity.SaleItemLot, error) {
	var out []*entity.SaleItemLot
	for _, il := range r.s.itemLots[saleItemID] {
		c := *il
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(saleID string, status string) error {
	if sale, ok := r.s.sales[saleID]; ok {
		sale.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) UpdateItemReturned(itemID string, returned int) error {
	for _, items := range r.s.items {
		for _, it := range items {
			if it.ID == itemID {
				it.Returned = returned
				return nil
			}
		}
	}
	return nil
}

func (r *fakeSaleRepo) UpdateItemLotReturned(itemLotID string, returned int) error {
	for _, ils := range r.s.itemLots {
		for _, il := range ils {
			if il.ID == itemLotID {
				il.Returned = returned
				return nil
			}
		}
	}
	return nil
}

func (r *fakeSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if from != nil && sale.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && sale.CreatedAt.After(*to) {
			continue
		}
		c := *sale
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeSaleRepo) NextNumber() (string, error) {
	r.s.nextNum++
	return fmt.Sprintf("B-%06d", r.s.nextNum), nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&fakeLotRepo{s: r.s}, &fakeMovementRepo{s: r.s}, &fakeProductRepo{s: r.s}, &fakeSaleRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}
