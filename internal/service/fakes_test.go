package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/events"
	"github.com/spec-kit/product-store/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.NewString()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	getCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = uuid.NewString()
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, product := range f.products {
		if product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProductRepo) ListWithFilter(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Product
	for _, product := range f.products {
		if filter.Status != nil && product.Status != *filter.Status {
			continue
		}
		result = append(result, *product)
	}
	return result, nil
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: make(map[string]*domain.Inventory)}
}

func (f *fakeInventoryRepo) Create(ctx context.Context, inventory *domain.Inventory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inventory.ID = uuid.NewString()
	clone := *inventory
	f.records[inventory.ID] = &clone
	return nil
}

func (f *fakeInventoryRepo) Update(ctx context.Context, inventory *domain.Inventory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[inventory.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *inventory
	f.records[inventory.ID] = &clone
	return nil
}

func (f *fakeInventoryRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.records, id)
	return nil
}

func (f *fakeInventoryRepo) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inventory, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *inventory
	return &clone, nil
}

func (f *fakeInventoryRepo) GetByProductID(ctx context.Context, productID string) (*domain.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inventory := range f.records {
		if inventory.ProductID == productID {
			clone := *inventory
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInventoryRepo) List(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Inventory
	for _, inventory := range f.records {
		result = append(result, *inventory)
	}
	return result, nil
}

// recordingDispatcher captures published events synchronously.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) PublishAndWait(ctx context.Context, event events.Event) {
	d.Publish(ctx, event)
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

// fakeCache is an in-memory ProductCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Product
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Product)}
}

func (c *fakeCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.hits++
	clone := *product
	return &clone, true
}

func (c *fakeCache) Set(ctx context.Context, product *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *product
	c.entries[product.ID] = &clone
}

func (c *fakeCache) Invalidate(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}
