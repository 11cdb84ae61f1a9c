package model

import (
	baseModel "topup_store/pkg/model"
)

// Product 商品模型（游戏点卡、会员充值等虚拟商品）
type Product struct {
	baseModel.BaseModel
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	Category      string  `gorm:"default:'General'" json:"category"`
	CategoryID    *string `gorm:"type:uuid" json:"category_id"`
	Price         float64 `gorm:"not null" json:"price"`
	Currency      string  `gorm:"default:'NPR'" json:"currency"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `gorm:"default:0" json:"stock_quantity"`
	IsAvailable   bool    `gorm:"default:true" json:"is_available"`
}

// Category 商品分类
type Category struct {
	baseModel.BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"` // 店面展示顺序
}
