package model

import (
	baseModel "topup_store/pkg/model"
)

// 订单主状态，由管理员驱动：pending -> approved -> completed
const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusCompleted = "completed"
)

// 派生子状态
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"

	DeliveryStatusPending   = "pending"
	DeliveryStatusCompleted = "completed"
)

// PaymentMethodQR 扫码转账 + 人工审核，当前唯一支付方式
const PaymentMethodQR = "qr"

// DerivedStatus 主状态对应的支付/发货子状态
type DerivedStatus struct {
	Payment  string
	Delivery string
}

// StatusTable 子状态只由主状态推导，永远不单独设置
// 设置 completed 不要求先经过 approved，一步写齐三个字段
var StatusTable = map[string]DerivedStatus{
	OrderStatusPending:   {PaymentStatusPending, DeliveryStatusPending},
	OrderStatusApproved:  {PaymentStatusApproved, DeliveryStatusPending},
	OrderStatusCompleted: {PaymentStatusApproved, DeliveryStatusCompleted},
}

// ValidStatus 校验状态标签
func ValidStatus(status string) bool {
	_, ok := StatusTable[status]
	return ok
}

// Order 订单模型
type Order struct {
	baseModel.BaseModel
	OrderNumber          string      `gorm:"unique;not null" json:"order_number"`
	UserID               string      `gorm:"type:uuid;index;not null" json:"user_id"`
	TotalAmount          float64     `gorm:"not null" json:"total_amount"`
	OrderStatus          string      `gorm:"not null;default:'pending'" json:"order_status"`
	PaymentMethod        string      `gorm:"default:'qr'" json:"payment_method"`
	PaymentStatus        string      `gorm:"not null;default:'pending'" json:"payment_status"`
	DeliveryStatus       string      `gorm:"not null;default:'pending'" json:"delivery_status"`
	CustomerPhone        string      `gorm:"not null" json:"customer_phone"`
	PlayerUID            string      `json:"player_uid"`
	Remarks              string      `json:"remarks"`
	PaymentScreenshotURL string      `gorm:"not null" json:"payment_screenshot_url"`
	Items                []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem 订单行，每个订单固定一行
type OrderItem struct {
	baseModel.BaseModel
	OrderID   string  `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID string  `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // 下单时刻的单价快照，目录改价不回溯
}
