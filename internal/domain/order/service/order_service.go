package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"
	catalogModel "topup_store/internal/domain/catalog/model"
	"topup_store/internal/domain/order/model"
	"topup_store/internal/domain/order/repository"
	"topup_store/internal/pkg/uploader"
	"topup_store/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation")       // 400
	ErrNotFound   = errors.New("not found")        // 404
	ErrUpload     = errors.New("upload failed")    // 502
	ErrConflict   = errors.New("conflict")         // 409
	ErrUpstream   = errors.New("upstream failure") // 503
)

// ProductCatalog checkout 消费的目录服务子集
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalogModel.Product, error)
}

// ProofStore 支付凭证存储，由 OSS uploader 实现
type ProofStore interface {
	UploadImage(dir string, file *multipart.FileHeader) (string, error)
}

// CheckoutInput 下单输入，价格永远不从这里来
type CheckoutInput struct {
	ProductID     string
	Quantity      int // 0 表示未传，默认 1
	PlayerUID     string
	CustomerPhone string
	Remarks       string
	Proof         *multipart.FileHeader
}

// OrderService 订单服务接口
type OrderService interface {
	Checkout(ctx context.Context, userID string, input CheckoutInput) (*model.Order, error)
	SetStatus(ctx context.Context, orderID, newStatus string) (*model.Order, error)
	ListOrders(ctx context.Context, userID string, isAdmin bool) ([]model.Order, error)
}

type orderService struct {
	repo    repository.OrderRepository
	catalog ProductCatalog
	proofs  ProofStore
}

// NewOrderService 创建订单服务，协作者全部由构造函数注入
func NewOrderService(repo repository.OrderRepository, catalog ProductCatalog, proofs ProofStore) OrderService {
	return &orderService{repo: repo, catalog: catalog, proofs: proofs}
}

// Checkout 下单事务
// 校验顺序固定：商品 -> 数量 -> 手机号 -> 凭证；任何校验失败都发生在写入之前。
// 凭证先上传，订单和订单行再在一个数据库事务里落库；
// 上传成功但落库失败时会留下一个孤儿对象，这是接受的窗口。
func (s *orderService) Checkout(ctx context.Context, userID string, input CheckoutInput) (*model.Order, error) {
	// 1. 商品必须存在且在售，单价以此刻目录价为准，防止客户端改价
	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: catalog: %v", ErrUpstream, err)
	}
	if !product.IsAvailable {
		return nil, fmt.Errorf("%w: product not available", ErrNotFound)
	}

	// 2. 数量，未传默认 1
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}

	// 3. 联系电话
	phone := strings.TrimSpace(input.CustomerPhone)
	if phone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrValidation)
	}

	// 4. 支付凭证必须是非空图片
	if input.Proof == nil || input.Proof.Size == 0 {
		return nil, fmt.Errorf("%w: payment screenshot is required", ErrValidation)
	}
	if !strings.HasPrefix(input.Proof.Header.Get("Content-Type"), "image/") {
		return nil, fmt.Errorf("%w: payment screenshot must be an image", ErrValidation)
	}

	subtotal := product.Price * float64(qty)

	// 5. 上传凭证，失败则整单失败，不写任何行
	proofURL, err := s.proofs.UploadImage("payment-proofs/"+userID, input.Proof)
	if err != nil {
		if errors.Is(err, uploader.ErrNotImage) {
			return nil, fmt.Errorf("%w: payment screenshot must be an image", ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	order := &model.Order{
		OrderNumber:          generateOrderNumber(),
		UserID:               userID,
		TotalAmount:          subtotal,
		OrderStatus:          model.OrderStatusPending,
		PaymentMethod:        model.PaymentMethodQR,
		PaymentStatus:        model.PaymentStatusPending,
		DeliveryStatus:       model.DeliveryStatusPending,
		CustomerPhone:        phone,
		PlayerUID:            strings.TrimSpace(input.PlayerUID),
		Remarks:              strings.TrimSpace(input.Remarks),
		PaymentScreenshotURL: proofURL,
	}
	item := &model.OrderItem{
		ProductID: product.ID,
		Quantity:  qty,
		Price:     product.Price,
	}

	// 6. 订单 + 订单行同一事务落库；订单号撞车就换个号重试一次
	if err := s.repo.CreateWithItem(ctx, order, item); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: persist order: %v", ErrUpstream, err)
		}

		if logger.Log != nil {
			logger.Log.Warn("order number collision, retrying",
				zap.String("order_number", order.OrderNumber))
		}
		order.OrderNumber = generateOrderNumber()
		if err := s.repo.CreateWithItem(ctx, order, item); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: order number collision", ErrConflict)
			}
			return nil, fmt.Errorf("%w: persist order: %v", ErrUpstream, err)
		}
	}

	order.Items = []model.OrderItem{*item}
	return order, nil
}

// SetStatus 管理员推进订单状态
// 三个状态字段是 newStatus 的全函数，一条 UPDATE 写齐，允许 pending 直接到 completed
func (s *orderService) SetStatus(ctx context.Context, orderID, newStatus string) (*model.Order, error) {
	derived, ok := model.StatusTable[newStatus]
	if !ok {
		return nil, fmt.Errorf("%w: invalid order status %q", ErrValidation, newStatus)
	}

	rows, err := s.repo.UpdateStatus(ctx, orderID, newStatus, derived.Payment, derived.Delivery)
	if err != nil {
		return nil, fmt.Errorf("%w: update status: %v", ErrUpstream, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	return s.repo.GetByID(ctx, orderID)
}

// ListOrders 订单可见性：管理员看全部，用户只看自己的
// 过滤条件只来自已认证身份，与任何查询参数无关
func (s *orderService) ListOrders(ctx context.Context, userID string, isAdmin bool) ([]model.Order, error) {
	if isAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, userID)
}

// generateOrderNumber 订单号：NS- 前缀 + 毫秒时间戳 + uuid 后缀
// 时间戳保证可读可排序，uuid 后缀保证并发下不撞车
func generateOrderNumber() string {
	return fmt.Sprintf("NS-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
