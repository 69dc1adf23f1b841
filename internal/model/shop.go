package model

// Token 状态常量
const (
	TokenStatusValid   = "valid"        // 有效
	TokenStatusInvalid = "auth_invalid" // 需重新授权
)

// Shop 店铺状态常量
const (
	ShopStatusPending  = 0 // 待授权
	ShopStatusActive   = 1 // 正常
	ShopStatusDisabled = 2 // 已停用
)

// DefaultApiVersion 默认的 Shopify Admin API 版本
const DefaultApiVersion = "2024-10"

// Shop 已接入的 Shopify 店铺
// 一个店铺对应一条记录，ShopDomain (xxx.myshopify.com) 是租户维度的唯一键
type Shop struct {
	BaseModel
	// 1. 核心身份
	ShopDomain string `gorm:"uniqueIndex;size:255;not null;comment:店铺域名"`
	ShopName   string `gorm:"size:100"`

	// 2. API Token
	// Shopify 离线 Token 不会过期，但可能被商家卸载应用后吊销
	// AccessToken 为空表示店铺尚未完成 OAuth 授权，定时任务会直接跳过
	AccessToken string `gorm:"size:255"`
	TokenStatus string `gorm:"index;size:20;default:'auth_invalid'"`

	// 3. Admin API 版本 (GraphQL endpoint 路径的一部分)
	ApiVersion string `gorm:"size:20;default:'2024-10'"`

	// 4. 状态
	Status int `gorm:"default:0;comment:状态 0-待授权 1-正常 2-已停用"`
}

func (Shop) TableName() string {
	return "shops"
}

// HasCredential 店铺是否具备可用的 API 凭证
func (s *Shop) HasCredential() bool {
	return s.AccessToken != "" && s.TokenStatus != TokenStatusInvalid
}
