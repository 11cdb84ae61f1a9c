package repository

import (
	"context"
	"topup_store/internal/domain/order/model"

	"gorm.io/gorm"
)

// OrderRepository 接口定义
type OrderRepository interface {
	// CreateWithItem 在同一个事务里写入订单和订单行
	// 订单行失败时整体回滚，读接口永远看不到没有订单行的订单
	CreateWithItem(ctx context.Context, order *model.Order, item *model.OrderItem) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	// UpdateStatus 单条 UPDATE 同时写主状态和两个派生子状态，返回影响行数
	UpdateStatus(ctx context.Context, id, orderStatus, paymentStatus, deliveryStatus string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItem(ctx context.Context, order *model.Order, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		item.OrderID = order.ID
		return tx.Create(item).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, orderStatus, paymentStatus, deliveryStatus string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"order_status":    orderStatus,
		"payment_status":  paymentStatus,
		"delivery_status": deliveryStatus,
	})
	return result.RowsAffected, result.Error
}
