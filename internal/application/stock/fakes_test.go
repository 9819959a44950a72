package stock_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
	"github.com/jhoicas/licoreria-api/internal/domain/repository"
)

// Dobles en memoria para los puertos de persistencia. El memTxRunner imita el
// rollback real: toma un snapshot del estado antes de ejecutar el closure y lo
// restaura si devuelve error, para que los tests de fallo a mitad de una
// transición multi-renglón verifiquen estado intacto igual que con una tx pgx.

func levelKey(tenantID, shopID, productID, variantID string) string {
	return strings.Join([]string{tenantID, shopID, productID, variantID}, "|")
}

type memLevelRepo struct {
	levels   map[string]*entity.StockLevel
	products map[string]*entity.Product
}

var _ repository.StockLevelRepository = (*memLevelRepo)(nil)

func newMemLevelRepo() *memLevelRepo {
	return &memLevelRepo{
		levels:   map[string]*entity.StockLevel{},
		products: map[string]*entity.Product{},
	}
}

func copyLevel(l *entity.StockLevel) *entity.StockLevel {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func (r *memLevelRepo) Get(_ context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error) {
	return copyLevel(r.levels[levelKey(tenantID, shopID, productID, variantID)]), nil
}

func (r *memLevelRepo) GetForUpdate(ctx context.Context, tenantID, shopID, productID, variantID string) (*entity.StockLevel, error) {
	return r.Get(ctx, tenantID, shopID, productID, variantID)
}

func (r *memLevelRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	r.levels[levelKey(level.TenantID, level.ShopID, level.ProductID, level.VariantID)] = copyLevel(level)
	return nil
}

func (r *memLevelRepo) ListByShop(_ context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if l.TenantID == tenantID && l.ShopID == shopID {
			out = append(out, copyLevel(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return paginate(out, limit, offset), nil
}

func (r *memLevelRepo) ListBelowMinimum(_ context.Context, tenantID, shopID string) ([]repository.LowStockItem, error) {
	var out []repository.LowStockItem
	for _, l := range r.levels {
		if l.TenantID != tenantID || l.ShopID != shopID {
			continue
		}
		if l.CurrentQuantity >= l.MinimumThreshold {
			continue
		}
		item := repository.LowStockItem{
			ProductID:        l.ProductID,
			VariantID:        l.VariantID,
			CurrentQuantity:  l.CurrentQuantity,
			MinimumThreshold: l.MinimumThreshold,
		}
		if p, ok := r.products[l.ProductID]; ok {
			item.SKU = p.SKU
			item.ProductName = p.Name
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].MinimumThreshold - out[i].CurrentQuantity
		dj := out[j].MinimumThreshold - out[j].CurrentQuantity
		return di > dj
	})
	return out, nil
}

func (r *memLevelRepo) Deactivate(_ context.Context, tenantID, shopID, productID, variantID string) error {
	if l, ok := r.levels[levelKey(tenantID, shopID, productID, variantID)]; ok {
		l.Status = entity.StatusDeactivated
	}
	return nil
}

type memTxnRepo struct {
	txns []*entity.StockTransaction
}

var _ repository.StockTransactionRepository = (*memTxnRepo)(nil)

func (r *memTxnRepo) Create(_ context.Context, txn *entity.StockTransaction) error {
	c := *txn
	r.txns = append(r.txns, &c)
	return nil
}

func (r *memTxnRepo) GetByID(_ context.Context, tenantID, id string) (*entity.StockTransaction, error) {
	for _, t := range r.txns {
		if t.TenantID == tenantID && t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memTxnRepo) ListByShop(_ context.Context, tenantID, shopID string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.txns {
		if t.TenantID != tenantID || t.ShopID != shopID {
			continue
		}
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *memTxnRepo) ListByProduct(_ context.Context, tenantID, shopID, productID, variantID string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.txns {
		if t.TenantID == tenantID && t.ShopID == shopID && t.ProductID == productID && t.VariantID == variantID {
			c := *t
			out = append(out, &c)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memTxnRepo) SumSigned(_ context.Context, tenantID, shopID, productID, variantID string) (int64, error) {
	var sum int64
	for _, t := range r.txns {
		if t.TenantID != tenantID || t.ShopID != shopID || t.ProductID != productID || t.VariantID != variantID {
			continue
		}
		if t.Kind == entity.KindAdjustment {
			continue
		}
		sum += t.Signed()
	}
	return sum, nil
}

type memTransferRepo struct {
	transfers map[string]*entity.StockTransfer
}

var _ repository.StockTransferRepository = (*memTransferRepo)(nil)

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{transfers: map[string]*entity.StockTransfer{}}
}

func copyTransfer(t *entity.StockTransfer) *entity.StockTransfer {
	if t == nil {
		return nil
	}
	c := *t
	c.Items = nil
	for _, item := range t.Items {
		ci := *item
		c.Items = append(c.Items, &ci)
	}
	return &c
}

func (r *memTransferRepo) Create(_ context.Context, transfer *entity.StockTransfer) error {
	r.transfers[transfer.ID] = copyTransfer(transfer)
	return nil
}

func (r *memTransferRepo) GetByID(_ context.Context, tenantID, id string) (*entity.StockTransfer, error) {
	t, ok := r.transfers[id]
	if !ok || t.TenantID != tenantID {
		return nil, nil
	}
	return copyTransfer(t), nil
}

func (r *memTransferRepo) UpdateStatus(_ context.Context, transfer *entity.StockTransfer) error {
	if stored, ok := r.transfers[transfer.ID]; ok {
		stored.Status = transfer.Status
		stored.UpdatedAt = transfer.UpdatedAt
	}
	return nil
}

func (r *memTransferRepo) UpdateItem(_ context.Context, item *entity.StockTransferItem) error {
	stored, ok := r.transfers[item.TransferID]
	if !ok {
		return nil
	}
	for _, si := range stored.Items {
		if si.ID == item.ID {
			si.ReceivedQuantity = item.ReceivedQuantity
			si.Received = item.Received
		}
	}
	return nil
}

func (r *memTransferRepo) ListByShop(_ context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, t := range r.transfers {
		if t.TenantID == tenantID && (t.SourceShopID == shopID || t.DestinationShopID == shopID) {
			out = append(out, copyTransfer(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

type memAdjustmentRepo struct {
	adjustments map[string]*entity.StockAdjustment
}

var _ repository.StockAdjustmentRepository = (*memAdjustmentRepo)(nil)

func newMemAdjustmentRepo() *memAdjustmentRepo {
	return &memAdjustmentRepo{adjustments: map[string]*entity.StockAdjustment{}}
}

func (r *memAdjustmentRepo) Create(_ context.Context, adjustment *entity.StockAdjustment) error {
	c := *adjustment
	c.Items = nil
	for _, item := range adjustment.Items {
		ci := *item
		c.Items = append(c.Items, &ci)
	}
	r.adjustments[adjustment.ID] = &c
	return nil
}

func (r *memAdjustmentRepo) GetByID(_ context.Context, tenantID, id string) (*entity.StockAdjustment, error) {
	a, ok := r.adjustments[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	return a, nil
}

func (r *memAdjustmentRepo) ListByShop(_ context.Context, tenantID, shopID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.adjustments {
		if a.TenantID == tenantID && a.ShopID == shopID {
			out = append(out, a)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memAdjustmentRepo) SumDifferences(_ context.Context, tenantID, shopID, productID, variantID string) (int64, error) {
	var sum int64
	for _, a := range r.adjustments {
		if a.TenantID != tenantID || a.ShopID != shopID {
			continue
		}
		for _, item := range a.Items {
			if item.ProductID == productID && item.VariantID == variantID {
				sum += item.Difference
			}
		}
	}
	return sum, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
	variants map[string]*entity.ProductVariant
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: map[string]*entity.Product{},
		variants: map[string]*entity.ProductVariant{},
	}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *memProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.Status = entity.StatusDeactivated
	}
	return nil
}

func (r *memProductRepo) CreateVariant(v *entity.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *memProductRepo) GetVariantByID(id string) (*entity.ProductVariant, error) {
	return r.variants[id], nil
}

func (r *memProductRepo) ListVariants(productID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

type memShopRepo struct {
	shops map[string]*entity.Shop
}

var _ repository.ShopRepository = (*memShopRepo)(nil)

func newMemShopRepo() *memShopRepo {
	return &memShopRepo{shops: map[string]*entity.Shop{}}
}

func (r *memShopRepo) Create(s *entity.Shop) error {
	r.shops[s.ID] = s
	return nil
}

func (r *memShopRepo) GetByID(id string) (*entity.Shop, error) {
	return r.shops[id], nil
}

func (r *memShopRepo) Update(s *entity.Shop) error {
	r.shops[s.ID] = s
	return nil
}

func (r *memShopRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Shop, error) {
	var out []*entity.Shop
	for _, s := range r.shops {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memShopRepo) Deactivate(id string) error {
	if s, ok := r.shops[id]; ok {
		s.Status = entity.StatusDeactivated
	}
	return nil
}

// memTxRunner entrega siempre los mismos repositorios en memoria, con
// semántica de rollback: snapshot antes del closure, restauración si falla.
type memTxRunner struct {
	levels      *memLevelRepo
	txns        *memTxnRepo
	transfers   *memTransferRepo
	adjustments *memAdjustmentRepo
	products    *memProductRepo
}

var _ stock.TxRunner = (*memTxRunner)(nil)

// memSnapshot copia profunda del estado mutable de los repositorios.
type memSnapshot struct {
	levels      map[string]*entity.StockLevel
	txns        []*entity.StockTransaction
	transfers   map[string]*entity.StockTransfer
	adjustments map[string]*entity.StockAdjustment
	costs       map[string]decimal.Decimal
}

func (r *memTxRunner) snapshot() memSnapshot {
	snap := memSnapshot{
		levels:      map[string]*entity.StockLevel{},
		txns:        append([]*entity.StockTransaction(nil), r.txns.txns...),
		transfers:   map[string]*entity.StockTransfer{},
		adjustments: map[string]*entity.StockAdjustment{},
		costs:       map[string]decimal.Decimal{},
	}
	for k, l := range r.levels.levels {
		snap.levels[k] = copyLevel(l)
	}
	for k, t := range r.transfers.transfers {
		snap.transfers[k] = copyTransfer(t)
	}
	for k, a := range r.adjustments.adjustments {
		snap.adjustments[k] = a
	}
	for id, p := range r.products.products {
		snap.costs[id] = p.Cost
	}
	return snap
}

func (r *memTxRunner) restore(snap memSnapshot) {
	r.levels.levels = snap.levels
	r.txns.txns = snap.txns
	r.transfers.transfers = snap.transfers
	r.adjustments.adjustments = snap.adjustments
	for id, cost := range snap.costs {
		if p, ok := r.products.products[id]; ok {
			p.Cost = cost
		}
	}
}

func (r *memTxRunner) inTx(fn func() error) error {
	snap := r.snapshot()
	if err := fn(); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(func() error { return fn(r.levels, r.txns, r.products) })
}

func (r *memTxRunner) RunTransfer(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return r.inTx(func() error { return fn(r.levels, r.txns, r.transfers) })
}

func (r *memTxRunner) RunAdjustment(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	txnRepo repository.StockTransactionRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	return r.inTx(func() error { return fn(r.levels, r.txns, r.adjustments) })
}

// capturePublisher acumula los eventos publicados para inspección.
type capturePublisher struct {
	events []capturedEvent
}

type capturedEvent struct {
	Topic   string
	Key     string
	Payload any
}

var _ stock.EventPublisher = (*capturePublisher)(nil)

func (p *capturePublisher) Publish(_ context.Context, topic, key string, payload any) error {
	p.events = append(p.events, capturedEvent{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) topicCount(topic string) int {
	n := 0
	for _, e := range p.events {
		if e.Topic == topic {
			n++
		}
	}
	return n
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

// testEnv arma un juego completo de casos de uso sobre los dobles en memoria.
type testEnv struct {
	levels      *memLevelRepo
	txns        *memTxnRepo
	transfers   *memTransferRepo
	adjustments *memAdjustmentRepo
	products    *memProductRepo
	shops       *memShopRepo
	publisher   *capturePublisher

	ledger     *stock.LedgerUseCase
	level      *stock.LevelUseCase
	transfer   *stock.TransferUseCase
	adjustment *stock.AdjustmentUseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		levels:      newMemLevelRepo(),
		txns:        &memTxnRepo{},
		transfers:   newMemTransferRepo(),
		adjustments: newMemAdjustmentRepo(),
		products:    newMemProductRepo(),
		shops:       newMemShopRepo(),
		publisher:   &capturePublisher{},
	}
	env.levels.products = env.products.products
	runner := &memTxRunner{
		levels:      env.levels,
		txns:        env.txns,
		transfers:   env.transfers,
		adjustments: env.adjustments,
		products:    env.products,
	}
	env.ledger = stock.NewLedgerUseCase(runner, env.products, env.shops, env.publisher)
	env.level = stock.NewLevelUseCase(runner, env.levels, env.txns, env.adjustments)
	env.transfer = stock.NewTransferUseCase(
		runner, env.transfers, env.levels, env.shops, env.products,
		env.ledger, env.publisher, nil,
	)
	env.adjustment = stock.NewAdjustmentUseCase(
		runner, env.adjustments, env.shops, env.products, env.publisher,
	)
	return env
}

func (env *testEnv) seedShop(id, tenantID string) {
	_ = env.shops.Create(&entity.Shop{ID: id, TenantID: tenantID, Name: "Tienda " + id, Status: entity.StatusActive})
}

func (env *testEnv) seedProduct(id, tenantID, sku, name string) {
	_ = env.products.Create(&entity.Product{
		ID: id, TenantID: tenantID, SKU: sku, Name: name,
		Category: entity.CategoryRon, Status: entity.StatusActive,
	})
}

func (env *testEnv) seedLevel(tenantID, shopID, productID, variantID string, qty, minThreshold int64) {
	level := entity.NewStockLevel(tenantID, shopID, productID, variantID, time.Now())
	level.MinimumThreshold = minThreshold
	level.SetQuantity(qty, time.Now())
	_ = env.levels.Upsert(context.Background(), level)
}
