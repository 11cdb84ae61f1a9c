package repository

import (
	"topup_store/internal/domain/catalog/model"

	"gorm.io/gorm"
)

// CatalogRepository 接口定义
type CatalogRepository interface {
	GetProductByID(id string) (*model.Product, error)
	ListProducts(category string, onlyAvailable bool) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id string) error

	ListCategories() ([]model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id string) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// GetProductByID 根据ID获取商品
func (r *catalogRepository) GetProductByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts 商品列表，category 为空时返回全部
func (r *catalogRepository) ListProducts(category string, onlyAvailable bool) ([]model.Product, error) {
	q := r.db.Model(&model.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var products []model.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *catalogRepository) CreateProduct(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *catalogRepository) UpdateProduct(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *catalogRepository) DeleteProduct(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Product{}).Error
}

// ListCategories 分类列表，按展示顺序排序
func (r *catalogRepository) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("sort_order ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepository) UpdateCategory(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *catalogRepository) DeleteCategory(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Category{}).Error
}
