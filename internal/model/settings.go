package model

import (
	"github.com/shopspring/decimal"
)

// ShopSettings 每个店铺一条的自动折扣配置
// 首次访问时按默认值创建（AutoDiscount 关闭），由设置页面修改
// AdminDiscount 为店铺级振荡偏移量，为 0 时引擎使用全局默认偏移
type ShopSettings struct {
	BaseModel
	ShopDomain    string          `gorm:"uniqueIndex;size:255;not null"`
	AutoDiscount  bool            `gorm:"default:false;comment:自动折扣开关"`
	AdminDiscount decimal.Decimal `gorm:"type:decimal(10,2);default:0;comment:店铺级振荡偏移量"`
}

func (ShopSettings) TableName() string {
	return "shop_settings"
}
