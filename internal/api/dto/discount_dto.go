package dto

import "time"

// ==================== 请求 DTO ====================

// EnrollProductReq 商品登记请求
type EnrollProductReq struct {
	ProductID     string `json:"product_id" binding:"required"`
	VariantID     string `json:"variant_id" binding:"required"`
	ProductTitle  string `json:"product_title"`
	OriginalPrice string `json:"original_price" binding:"required"` // 十进制字符串，如 "19.99"
}

// UpdateSettingsReq 店铺折扣配置更新请求
type UpdateSettingsReq struct {
	AutoDiscount  *bool  `json:"auto_discount" binding:"required"`
	AdminDiscount string `json:"admin_discount"` // 振荡偏移量，留空保持当前值
}

// ==================== 响应 DTO ====================

// DiscountProductResp 登记商品响应
type DiscountProductResp struct {
	ID            int64      `json:"id"`
	ShopDomain    string     `json:"shop_domain"`
	ProductID     string     `json:"product_id"`
	VariantID     string     `json:"variant_id"`
	ProductTitle  string     `json:"product_title"`
	OriginalPrice string     `json:"original_price"`
	CurrentPrice  string     `json:"current_price"`
	Phase         string     `json:"phase"`
	LastUpdated   *time.Time `json:"last_updated"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DiscountProductListResp 登记商品列表响应
type DiscountProductListResp struct {
	Total int64                 `json:"total"`
	Items []DiscountProductResp `json:"items"`
}

// SettingsResp 店铺折扣配置响应
type SettingsResp struct {
	ShopDomain    string `json:"shop_domain"`
	AutoDiscount  bool   `json:"auto_discount"`
	AdminDiscount string `json:"admin_discount"`
}

// ==================== 扫描结果 ====================

// 单条商品的扫描处理结果
const (
	SweepItemUpdated      = "updated"      // 目录写入 + 状态落库均成功
	SweepItemRejected     = "rejected"     // 目录侧业务校验拒绝 (userErrors)
	SweepItemFailed       = "failed"       // 传输失败或超时
	SweepItemConflicted   = "conflicted"   // 相位守卫未命中，状态已被并发运行更新
	SweepItemInconsistent = "inconsistent" // 目录已写入但状态落库失败
)

// 店铺被跳过的原因
const (
	SkipNoCredential = "no_credential" // 无有效凭证
	SkipNoProducts   = "no_products"   // 无登记商品
	SkipLocked       = "locked"        // 上一轮仍在执行
)

// SweepItemOutcome 单条商品的扫描结果
type SweepItemOutcome struct {
	ShopDomain string `json:"shop_domain"`
	ProductID  string `json:"product_id"`
	Status     string `json:"status"`
	NewPrice   string `json:"new_price,omitempty"`
	Phase      string `json:"phase,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SweepSkippedShop 被跳过的店铺及原因
type SweepSkippedShop struct {
	ShopDomain string `json:"shop_domain"`
	Reason     string `json:"reason"`
}

// SweepResult 一轮扫描的汇总结果
type SweepResult struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	ShopsEligible  int `json:"shops_eligible"`
	ShopsProcessed int `json:"shops_processed"`
	ShopsSkipped   int `json:"shops_skipped"`
	ShopsLocked    int `json:"shops_locked"`

	ItemsUpdated      int `json:"items_updated"`
	ItemsRejected     int `json:"items_rejected"`
	ItemsFailed       int `json:"items_failed"`
	ItemsConflicted   int `json:"items_conflicted"`
	ItemsInconsistent int `json:"items_inconsistent"`

	SkippedShops []SweepSkippedShop `json:"skipped_shops,omitempty"`
	Items        []SweepItemOutcome `json:"items,omitempty"`
}
