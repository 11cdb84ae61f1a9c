package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"topup_store/internal/domain/catalog/model"
	"topup_store/internal/domain/catalog/repository"
	"topup_store/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 缓存键常量
const (
	productCacheKeyPrefix = "product:"
	productCacheTTL       = time.Minute * 10
)

// CatalogService 商品目录服务接口
// GetProduct 同时被 checkout 消费：下单时以它返回的实时价格为准
type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type catalogService struct {
	repo repository.CatalogRepository
	rdb  *redis.Client
}

// NewCatalogService 创建目录服务
func NewCatalogService(repo repository.CatalogRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rdb: rdb}
}

func (s *catalogService) productCacheKey(id string) string {
	return fmt.Sprintf("%s%s", productCacheKeyPrefix, id)
}

// GetProduct 获取单个商品，优先读缓存
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	key := s.productCacheKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var product model.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(product); err == nil {
			// 缓存写失败不影响主流程，记日志即可
			if err := s.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil && logger.Log != nil {
				logger.Log.Warn("product cache set failed", zap.String("id", id), zap.Error(err))
			}
		}
	}

	return product, nil
}

// invalidateProduct 商品变更后清缓存
func (s *catalogService) invalidateProduct(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, s.productCacheKey(id)).Err(); err != nil && logger.Log != nil {
		logger.Log.Warn("product cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

// ListProducts 店面商品列表，只返回可售商品
func (s *catalogService) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	return s.repo.ListProducts(category, true)
}

// ListAllProducts 管理后台商品列表，包含下架商品
func (s *catalogService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts("", false)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.repo.CreateProduct(product)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := s.repo.UpdateProduct(product); err != nil {
		return err
	}
	s.invalidateProduct(ctx, product.ID)
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(id); err != nil {
		return err
	}
	s.invalidateProduct(ctx, id)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories()
}

func (s *catalogService) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.repo.CreateCategory(category)
}

func (s *catalogService) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.repo.UpdateCategory(category)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(id)
}
