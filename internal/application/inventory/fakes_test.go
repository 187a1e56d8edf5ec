package inventory_test

import (
	"context"
	"strings"
	"time"

	"github.com/farmaviva/botica-api/internal/domain/entity"
	dominv "github.com/farmaviva/botica-api/internal/domain/inventory"
	"github.com/farmaviva/botica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los repos de postgres, con semántica
// de transacción simulada por snapshot/restore en el TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	lots     map[string]*entity.Lot
	products map[string]*entity.Product
	movs     []*entity.Movement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lots:     make(map[string]*entity.Lot),
		products: make(map[string]*entity.Product),
	}
}

func copyLot(l *entity.Lot) *entity.Lot {
	c := *l
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, l := range s.lots {
		snap.lots[id] = copyLot(l)
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	snap.movs = append([]*entity.Movement(nil), s.movs...)
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.lots = snap.lots
	s.products = snap.products
	s.movs = snap.movs
}

// ── LotRepository ─────────────────────────────────────────────────────────────

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	r.s.lots[lot.ID] = copyLot(lot)
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	return copyLot(l), nil
}

func (r *fakeLotRepo) GetByIDForUpdate(id string) (*entity.Lot, error) {
	return r.GetByID(id)
}

func (r *fakeLotRepo) Update(lot *entity.Lot) error {
	r.s.lots[lot.ID] = copyLot(lot)
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
		out = append(out, copyLot(l))
	}
	return dominv.SortCandidates(out), nil
}

func (r *fakeLotRepo) ListActiveByProductForUpdate(productID string) ([]*entity.Lot, error) {
	return r.ListByProduct(productID, entity.LotStatusActive)
}

func (r *fakeLotRepo) ListExpiredActive(before time.Time) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.Status != entity.LotStatusActive || l.ExpiresAt == nil || l.Quantity <= 0 {
			continue
		}
		if l.ExpiresAt.Before(before) {
			out = append(out, copyLot(l))
		}
	}
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = copyProduct(p)
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
		out = append(out, copyProduct(p))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
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
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		c := *m
		out = append(out, &c)
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

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner simula la atomicidad: si fn falla, el estado vuelve al snapshot
// previo, igual que un ROLLBACK.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&fakeLotRepo{s: r.s}, &fakeMovementRepo{s: r.s}, &fakeProductRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}
