package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
	"shopify_discount_v1_202608/pkg/shopify"
	"shopify_discount_v1_202608/pkg/utils"
)

// ==================== 授权配置 ====================

// AuthConfig Shopify 应用凭证
type AuthConfig struct {
	ApiKey      string // Shopify App client_id
	ApiSecret   string // Shopify App client_secret
	CallbackURL string // 必须与 Shopify 后台填写的完全一致
	Scopes      string
}

// DefaultScopes 价格写入所需的最小权限
const DefaultScopes = "read_products,write_products"

// ==================== 授权服务 ====================

// AuthService 处理 Shopify OAuth 安装流程
type AuthService struct {
	shopRepo repository.ShopRepository
	config   AuthConfig
	http     *resty.Client

	// tokenURLOverride 测试用，覆盖换 Token 的地址
	tokenURLOverride string
}

// NewAuthService 工厂方法
func NewAuthService(shopRepo repository.ShopRepository, config AuthConfig) *AuthService {
	if config.Scopes == "" {
		config.Scopes = DefaultScopes
	}
	return &AuthService{
		shopRepo: shopRepo,
		config:   config,
		http:     resty.New(),
	}
}

// SetTokenURL 覆盖换 Token 地址（测试用）
func (s *AuthService) SetTokenURL(tokenURL string) {
	s.tokenURLOverride = tokenURL
}

// GenerateLoginURL 生成授权链接
func (s *AuthService) GenerateLoginURL(ctx context.Context, shopDomain string) (string, error) {
	if !strings.HasSuffix(shopDomain, ".myshopify.com") {
		return "", errors.New("店铺域名格式错误，必须为 *.myshopify.com")
	}

	state, err := utils.GenerateRandomString(16)
	if err != nil {
		return "", err
	}

	// 缓存 state -> shop_domain，回调时校验
	utils.SetCache(state, shopDomain)

	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shopDomain, s.config.ApiKey, s.config.Scopes,
		url.QueryEscape(s.config.CallbackURL), state,
	)
	return authURL, nil
}

// HandleCallback 处理 Shopify 回调 -> 换 Token -> 落库
func (s *AuthService) HandleCallback(ctx context.Context, shopDomain, code, state string, query url.Values) (*model.Shop, error) {
	// 1. 校验 State
	cachedDomain, exists := utils.GetCache(state)
	if !exists {
		return nil, fmt.Errorf("授权超时或 State 无效，请重新发起")
	}
	if cachedDomain != shopDomain {
		return nil, fmt.Errorf("回调店铺与授权请求不一致")
	}
	utils.DeleteCache(state) // 用完即焚

	// 2. 校验 HMAC 签名
	if !s.verifyCallbackHmac(query) {
		return nil, fmt.Errorf("回调签名校验失败")
	}

	// 3. 授权码换 Token
	tokenURL := s.tokenURLOverride
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://%s/admin/oauth/access_token", shopDomain)
	}

	var tokenResp shopify.AccessTokenResp
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"client_id":     s.config.ApiKey,
			"client_secret": s.config.ApiSecret,
			"code":          code,
		}).
		SetResult(&tokenResp).
		Post(tokenURL)
	if err != nil {
		return nil, fmt.Errorf("换取 Token 请求失败: %w", err)
	}
	if resp.StatusCode() != 200 || tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("换取 Token 失败, 状态码 %d: %s", resp.StatusCode(), resp.String())
	}

	// 4. 落库：已存在则更新 Token，不存在则新建
	shop, err := s.shopRepo.GetByDomain(ctx, shopDomain)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		shop = &model.Shop{
			ShopDomain:  shopDomain,
			ShopName:    strings.TrimSuffix(shopDomain, ".myshopify.com"),
			AccessToken: tokenResp.AccessToken,
			TokenStatus: model.TokenStatusValid,
			ApiVersion:  model.DefaultApiVersion,
			Status:      model.ShopStatusActive,
		}
		if err := s.shopRepo.Create(ctx, shop); err != nil {
			return nil, err
		}
		log.Printf("[Auth] 新店铺 [%s] 安装完成", shopDomain)
		return shop, nil
	}

	if err := s.shopRepo.UpdateToken(ctx, shop.ID, tokenResp.AccessToken); err != nil {
		return nil, err
	}
	log.Printf("[Auth] 店铺 [%s] 重新授权完成", shopDomain)
	return s.shopRepo.GetByDomain(ctx, shopDomain)
}

// verifyCallbackHmac 按 Shopify 规则校验回调签名：
// 去掉 hmac 参数后按 key 字典序拼接 k=v，用 App Secret 做 HMAC-SHA256
func (s *AuthService) verifyCallbackHmac(query url.Values) bool {
	signature := query.Get("hmac")
	if signature == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, query.Get(k)))
	}
	message := strings.Join(pairs, "&")

	return utils.VerifyHmacSHA256(message, signature, s.config.ApiSecret)
}

// MarkTokenInvalid 目录侧返回授权错误时标记凭证失效，后续扫描跳过该店铺
func (s *AuthService) MarkTokenInvalid(ctx context.Context, shop *model.Shop) error {
	log.Printf("[Auth] 店铺 [%s] 凭证失效，已标记", shop.ShopDomain)
	return s.shopRepo.UpdateTokenStatus(ctx, shop.ID, model.TokenStatusInvalid)
}
