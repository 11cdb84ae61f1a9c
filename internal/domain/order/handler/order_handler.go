package handler

import (
	"errors"
	"net/http"
	"strconv"
	"topup_store/internal/domain/order/service"
	"topup_store/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler 创建处理器
func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// UpdateStatusInput 状态更新输入
type UpdateStatusInput struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

// Checkout 下单
// @Summary 下单 (multipart)
// @Tags Order
// @Accept multipart/form-data
// @Produce json
// @Param productId formData string true "Product ID"
// @Param quantity formData int false "Quantity (default 1)"
// @Param playerUid formData string false "Player UID"
// @Param customerPhone formData string true "Customer Phone"
// @Param remarks formData string false "Remarks"
// @Param proofUpload formData file true "Payment Screenshot"
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	input := service.CheckoutInput{
		ProductID:     c.PostForm("productId"),
		PlayerUID:     c.PostForm("playerUid"),
		CustomerPhone: c.PostForm("customerPhone"),
		Remarks:       c.PostForm("remarks"),
	}

	if qtyStr := c.PostForm("quantity"); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "quantity must be a positive integer")
			return
		}
		input.Quantity = qty
	}

	// 凭证缺失交给 service 统一判定，保持校验顺序一致
	if file, err := c.FormFile("proofUpload"); err == nil {
		input.Proof = file
	}

	order, err := h.service.Checkout(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, gin.H{"order_id": order.ID, "order_number": order.OrderNumber})
}

// UpdateStatus 管理员推进订单状态
// @Summary 更新订单状态
// @Tags Admin
// @Param id path string true "Order ID"
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), input.NewStatus)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, gin.H{"order": order})
}

// ListOrders 订单列表：管理员看全部，用户只看自己的
// @Summary 订单列表
// @Tags Order
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.GetString("userID"), c.GetBool("isAdmin"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, gin.H{"orders": orders})
}

// respondError 统一把 service 错误映射为稳定的业务码
// 上游故障不把协作者的原始错误文本透给客户端
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.ErrNotFound, err.Error())
	case errors.Is(err, service.ErrUpload):
		response.Error(c, http.StatusBadGateway, response.ErrUploadFailed, "Failed to store payment screenshot, please try again")
	case errors.Is(err, service.ErrConflict):
		response.Error(c, http.StatusConflict, response.ErrConflict, "Order could not be created, please try again")
	case errors.Is(err, service.ErrUpstream):
		response.Error(c, http.StatusServiceUnavailable, response.ErrUpstream, "Service temporarily unavailable, please try again")
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal error")
	}
}
