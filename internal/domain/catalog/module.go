package catalog

import (
	"topup_store/internal/domain/catalog/handler"
	"topup_store/internal/domain/catalog/repository"
	"topup_store/internal/domain/catalog/service"
	"topup_store/internal/pkg/middleware"
	"topup_store/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CatalogModule 商品目录模块
type CatalogModule struct {
	service service.CatalogService
}

// 模块实例在包级别持有，order 模块通过 Service() 拿到目录服务
var Instance = &CatalogModule{}

func init() {
	registry.Register(Instance)
}

func (m *CatalogModule) Name() string {
	return "catalog"
}

func (m *CatalogModule) Priority() int {
	// 在 user 之后、order 之前初始化，checkout 依赖目录服务
	return 10
}

// Service 返回目录服务实例，仅在 InitModules 之后可用
func (m *CatalogModule) Service() service.CatalogService {
	return m.service
}

func (m *CatalogModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewCatalogRepository(ctx.DB)
	m.service = service.NewCatalogService(repo, ctx.Redis)
	h := handler.NewCatalogHandler(m.service, ctx.Uploader)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CatalogHandler) {
	// 公开路由
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)

	// 管理后台
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/products", h.AdminListProducts)
		admin.POST("/products", h.CreateProduct)
		admin.PATCH("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		admin.POST("/categories", h.CreateCategory)
		admin.PATCH("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		admin.POST("/upload", h.UploadImage)
	}
}
