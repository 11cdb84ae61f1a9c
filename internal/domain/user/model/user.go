package model

import (
	baseModel "topup_store/pkg/model"
)

// User 用户模型
// is_admin 对应原 profiles 表的管理员标记
type User struct {
	baseModel.BaseModel
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"` // 密码不返回给前端
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	IsAdmin   bool   `gorm:"default:false" json:"is_admin"`
}
