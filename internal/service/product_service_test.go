package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/product-store/internal/domain"
	"github.com/spec-kit/product-store/internal/events"
	apperrors "github.com/spec-kit/product-store/pkg/util/errorutil"
)

func newProductFixture() (*ProductService, *fakeProductRepo, *fakeCache, *recordingDispatcher) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	dispatcher := &recordingDispatcher{}
	svc := NewProductService(ProductDependencies{
		ProductRepo: repo,
		Cache:       cache,
		Dispatcher:  dispatcher,
	})
	return svc, repo, cache, dispatcher
}

func TestCreateProductDefaultsUnpublished(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	product, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{
		Name:       "widget",
		Price:      9.99,
		Categories: []string{"tools"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusUnpublished, product.Status)
	assert.Equal(t, "u1", product.CreatedBy)
	assert.NotEmpty(t, product.ID)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	_, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{Name: "widget", Price: 1})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), "u2", ProductCreateInput{Name: "widget", Price: 2})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestGetProductServesFromCache(t *testing.T) {
	svc, repo, cache, _ := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{Name: "widget", Price: 1})
	require.NoError(t, err)

	// First read misses the cache and populates it.
	_, err = svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	callsAfterMiss := repo.getCalls

	_, err = svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, callsAfterMiss, repo.getCalls, "second read must not hit the repository")
	assert.Equal(t, 1, cache.hits)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	svc, _, cache, _ := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{Name: "widget", Price: 1})
	require.NoError(t, err)
	_, err = svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)

	newName := "gadget"
	_, err = svc.UpdateProduct(context.Background(), created.ID, ProductUpdateInput{Name: &newName})
	require.NoError(t, err)

	_, cached := cache.Get(context.Background(), created.ID)
	assert.False(t, cached)
}

func TestPublishProductFlipsStatus(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{Name: "widget", Price: 1})
	require.NoError(t, err)

	published, err := svc.PublishProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusPublished, published.Status)
}

func TestDeleteProductPublishesEvent(t *testing.T) {
	svc, repo, _, dispatcher := newProductFixture()

	created, err := svc.CreateProduct(context.Background(), "u1", ProductCreateInput{Name: "widget", Price: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	_, err = repo.GetByID(context.Background(), created.ID)
	require.Error(t, err)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventProductDeleted, published[0].Type)
	assert.NotEmpty(t, published[0].ID)
	assert.False(t, published[0].EmittedAt.IsZero())

	payload, ok := published[0].Payload.(events.ProductDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, created.ID, payload.ProductID)
}

func TestDeleteMissingProductPublishesNothing(t *testing.T) {
	svc, _, _, dispatcher := newProductFixture()

	err := svc.DeleteProduct(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Empty(t, dispatcher.published())
}
