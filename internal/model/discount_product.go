package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 振荡相位常量
// 原实现用 isDiscounted 布尔值同时表达 "是否打折" 和 "处于哪个相位"，
// 这里改为显式的两态枚举，避免歧义
const (
	PhaseBase     = "base"     // 基准相位：当前价 = 原价 - 偏移（新登记的商品尚未振荡，等于原价）
	PhaseElevated = "elevated" // 抬升相位：当前价 = 原价 + 偏移
)

// DefaultOffset 默认价格偏移量（货币单位）
var DefaultOffset = decimal.RequireFromString("2.00")

// DiscountProduct 参与自动折扣的商品
// (ShopDomain, ProductID) 联合唯一：一个店铺内同一商品只能登记一次
type DiscountProduct struct {
	BaseModel
	ShopDomain string `gorm:"size:255;not null;uniqueIndex:idx_shop_product"`
	ProductID  string `gorm:"size:128;not null;uniqueIndex:idx_shop_product;comment:Shopify 商品 GID"`
	VariantID  string `gorm:"size:128;not null;comment:Shopify 变体 GID"`

	ProductTitle string `gorm:"size:255"`

	// OriginalPrice 登记时刻抓取的原价，入库后不再变化
	// 每轮目标价都从它计算，而不是从 CurrentPrice 计算，避免跨周期累计漂移
	OriginalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(10,2)"`

	// Phase 与 CurrentPrice、LastUpdated 必须在同一条 UPDATE 中一起变化
	Phase       string     `gorm:"size:20;default:'base';comment:振荡相位 base/elevated"`
	LastUpdated *time.Time `gorm:"comment:最后一次成功振荡时间"`

	// 审计字段，由 GORM 回调自动填充
	CreatedBy int64 `gorm:"default:0"`
	UpdatedBy int64 `gorm:"default:0"`
}

func (DiscountProduct) TableName() string {
	return "discount_products"
}

// NextCycle 计算下一轮的目标价与相位（纯函数）
// base -> elevated: 原价 + offset
// elevated -> base: 原价 - offset
// 始终以 OriginalPrice 为基准，结果四舍五入到两位小数
func NextCycle(original decimal.Decimal, phase string, offset decimal.Decimal) (decimal.Decimal, string) {
	if phase == PhaseElevated {
		return original.Sub(offset).Round(2), PhaseBase
	}
	return original.Add(offset).Round(2), PhaseElevated
}
