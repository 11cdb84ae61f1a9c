package service

import (
	"context"
	"testing"
	"topup_store/internal/domain/catalog/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetProductByID(id string) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogRepository) ListProducts(category string, onlyAvailable bool) ([]model.Product, error) {
	args := m.Called(category, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteProduct(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCategories() ([]model.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogRepository) CreateCategory(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateCategory(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCategory(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads through to repository without redis", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, nil)

		p := &model.Product{Name: "PUBG 60 UC", Price: 120, IsAvailable: true}
		p.ID = "p1"
		mockRepo.On("GetProductByID", "p1").Return(p, nil)

		product, err := svc.GetProduct(ctx, "p1")

		assert.NoError(t, err)
		assert.Equal(t, "PUBG 60 UC", product.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetProduct(ctx, "missing")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Storefront list only shows available products", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", "MOBA", true).Return([]model.Product{{Name: "a"}}, nil)

		products, err := svc.ListProducts(ctx, "MOBA")

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Admin list includes unavailable products", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", "", false).Return([]model.Product{{Name: "a"}, {Name: "b"}}, nil)

		products, err := svc.ListAllProducts(ctx)

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		mockRepo.AssertExpectations(t)
	})
}
