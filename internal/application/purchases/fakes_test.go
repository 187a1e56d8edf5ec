package purchases_test

import (
	"context"
	"fmt"
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	dominv "github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el flujo de compras: lotes + movimientos + productos +
// compras, con rollback simulado por snapshot en el TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	lots      map[string]*entity.Lot
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	movs      []*entity.Movement
	purchases map[string]*entity.Purchase
	items     map[string][]*entity.PurchaseItem // purchaseID -> líneas
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lots:      make(map[string]*entity.Lot),
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		purchases: make(map[string]*entity.Purchase),
		items:     make(map[string][]*entity.PurchaseItem),
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
	for id, sup := range s.suppliers {
		c := *sup
		snap.suppliers[id] = &c
	}
	snap.movs = append([]*entity.Movement(nil), s.movs...)
	for id, p := range s.purchases {
		c := *p
		snap.purchases[id] = &c
	}
	for purchaseID, items := range s.items {
		for _, it := range items {
			c := *it
			snap.items[purchaseID] = append(snap.items[purchaseID], &c)
		}
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.lots = snap.lots
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.movs = snap.movs
	s.purchases = snap.purchases
	s.items = snap.items
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

// ── SupplierRepository ────────────────────────────────────────────────────────

type fakeSupplierRepo struct{ s *fakeStore }

func (r *fakeSupplierRepo) Create(sup *entity.Supplier) error {
	c := *sup
	r.s.suppliers[sup.ID] = &c
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *sup
	return &c, nil
}

func (r *fakeSupplierRepo) Update(sup *entity.Supplier) error {
	c := *sup
	r.s.suppliers[sup.ID] = &c
	return nil
}

func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		c := *sup
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	delete(r.s.suppliers, id)
	return nil
}

// ── PurchaseRepository ────────────────────────────────────────────────────────

type fakePurchaseRepo struct{ s *fakeStore }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	c := *p
	r.s.purchases[p.ID] = &c
	return nil
}

// CreateItem exige, como la FK real de purchase_items, que la cabecera exista.
func (r *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	if _, ok := r.s.purchases[item.PurchaseID]; !ok {
		return fmt.Errorf("violación de clave foránea: compra %s inexistente", item.PurchaseID)
	}
	c := *item
	r.s.items[item.PurchaseID] = append(r.s.items[item.PurchaseID], &c)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakePurchaseRepo) ListItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range r.s.items[purchaseID] {
		c := *it
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakePurchaseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if from != nil && p.ReceivedAt.Before(*from) {
			continue
		}
		if to != nil && p.ReceivedAt.After(*to) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) RunPurchase(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&fakeLotRepo{s: r.s}, &fakeMovementRepo{s: r.s}, &fakeProductRepo{s: r.s}, &fakePurchaseRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}
