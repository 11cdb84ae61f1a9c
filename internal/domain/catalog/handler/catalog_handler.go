package handler

import (
	"errors"
	"net/http"
	"topup_store/internal/domain/catalog/model"
	"topup_store/internal/domain/catalog/service"
	"topup_store/internal/pkg/uploader"
	"topup_store/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogHandler 目录处理器
type CatalogHandler struct {
	service  service.CatalogService
	uploader uploader.Uploader
}

// NewCatalogHandler 创建处理器
func NewCatalogHandler(s service.CatalogService, u uploader.Uploader) *CatalogHandler {
	return &CatalogHandler{service: s, uploader: u}
}

// ProductInput 商品创建输入
type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	CategoryID    *string  `json:"category_id"`
	Price         *float64 `json:"price" binding:"required"`
	Currency      string   `json:"currency"`
	ImageURL      string   `json:"image_url"`
	StockQuantity int      `json:"stock_quantity"`
	IsAvailable   *bool    `json:"is_available"`
}

// ProductUpdateInput 商品更新输入，指针字段区分 "未传" 和 "零值"
type ProductUpdateInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	CategoryID    *string  `json:"category_id"`
	Price         *float64 `json:"price"`
	Currency      *string  `json:"currency"`
	ImageURL      *string  `json:"image_url"`
	StockQuantity *int     `json:"stock_quantity"`
	IsAvailable   *bool    `json:"is_available"`
}

// CategoryInput 分类输入
type CategoryInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

// ListProducts 店面商品列表
// @Summary 商品列表
// @Tags Catalog
// @Param category query string false "Category"
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch products")
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags Catalog
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch product")
		return
	}
	response.Success(c, product)
}

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Catalog
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch categories")
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// AdminListProducts 管理后台商品列表（含下架）
// @Summary 商品列表（管理）
// @Tags Admin
// @Router /admin/products [get]
func (h *CatalogHandler) AdminListProducts(c *gin.Context) {
	products, err := h.service.ListAllProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch products")
		return
	}
	response.Success(c, gin.H{"products": products})
}

// CreateProduct 创建商品
// @Summary 创建商品
// @Tags Admin
// @Router /admin/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		CategoryID:    input.CategoryID,
		Price:         *input.Price,
		Currency:      input.Currency,
		ImageURL:      input.ImageURL,
		StockQuantity: input.StockQuantity,
		IsAvailable:   true,
	}
	if input.Category == "" {
		product.Category = "General"
	}
	if input.Currency == "" {
		product.Currency = "NPR"
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := h.service.CreateProduct(c.Request.Context(), product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to create product")
		return
	}
	response.Created(c, product)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Tags Admin
// @Router /admin/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var input ProductUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch product")
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Currency != nil {
		product.Currency = *input.Currency
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := h.service.UpdateProduct(c.Request.Context(), product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Admin
// @Router /admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to delete product")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Admin
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	category := &model.Category{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
	}
	if err := h.service.CreateCategory(c.Request.Context(), category); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to create category")
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags Admin
// @Router /admin/categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	category := &model.Category{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
	}
	category.ID = c.Param("id")

	if err := h.service.UpdateCategory(c.Request.Context(), category); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to update category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Tags Admin
// @Router /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to delete category")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UploadImage 管理后台图片上传 (商品图/分类图)
// @Summary 上传图片
// @Tags Admin
// @Accept multipart/form-data
// @Param file formData file true "Image"
// @Param folder formData string false "products | categories"
// @Router /admin/upload [post]
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Missing file upload")
		return
	}

	folder := c.PostForm("folder")
	if folder != "products" && folder != "categories" {
		folder = "misc"
	}

	url, err := h.uploader.UploadImage(folder, file)
	if err != nil {
		if errors.Is(err, uploader.ErrNotImage) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Only image files are allowed")
			return
		}
		response.Error(c, http.StatusBadGateway, response.ErrUploadFailed, "Upload failed")
		return
	}

	response.Created(c, gin.H{"public_url": url})
}
