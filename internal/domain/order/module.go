package order

import (
	"topup_store/internal/domain/catalog"
	"topup_store/internal/domain/order/handler"
	"topup_store/internal/domain/order/repository"
	"topup_store/internal/domain/order/service"
	"topup_store/internal/pkg/middleware"
	"topup_store/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 依赖 catalog 模块，必须在它之后初始化
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入：目录服务和对象存储都以接口传入
	repo := repository.NewOrderRepository(ctx.DB)
	svc := service.NewOrderService(repo, catalog.Instance.Service(), ctx.Uploader)
	h := handler.NewOrderHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	// 下单和查单都要求登录
	auth := r.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/checkout", h.Checkout)
		auth.GET("/orders", h.ListOrders)
	}

	// 状态推进仅限管理员
	admin := r.Group("/orders")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}
