package dto

import "time"

// ==================== 店铺 DTO ====================

// ShopResp 店铺响应
type ShopResp struct {
	ID          int64     `json:"id"`
	ShopDomain  string    `json:"shop_domain"`
	ShopName    string    `json:"shop_name"`
	TokenStatus string    `json:"token_status"`
	ApiVersion  string    `json:"api_version"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShopListResp 店铺列表响应
type ShopListResp struct {
	Total int64      `json:"total"`
	Items []ShopResp `json:"items"`
}
