package shopify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// productVariantsBulkUpdate 一次提交一个商品下的若干变体价格
const bulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}`

// ==================== 客户端 ====================

// Client 单店铺 Admin GraphQL 客户端
type Client struct {
	http        *resty.Client
	shopDomain  string
	accessToken string
	apiVersion  string
	baseURL     string
}

// 按店铺域名复用底层 HTTP 客户端，避免每次扫描重建连接池
var httpClientCache sync.Map // shopDomain -> *resty.Client

func cachedHTTPClient(shopDomain string) *resty.Client {
	if cached, ok := httpClientCache.Load(shopDomain); ok {
		return cached.(*resty.Client)
	}

	client := resty.New().
		SetTimeout(20 * time.Second).
		SetHeader("User-Agent", "Shopify-Discount-App/1.0").
		SetHeader("Content-Type", "application/json")

	actual, _ := httpClientCache.LoadOrStore(shopDomain, client)
	return actual.(*resty.Client)
}

// NewClient 创建店铺客户端，底层连接按域名复用
func NewClient(shopDomain, accessToken, apiVersion string) *Client {
	return &Client{
		http:        cachedHTTPClient(shopDomain),
		shopDomain:  shopDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, apiVersion),
	}
}

// SetBaseURL 覆盖请求地址（测试用）
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// UpdateVariantPrice 调用 productVariantsBulkUpdate 修改单个变体价格
// 返回的 userErrors 表示目录侧拒绝（非传输错误），由调用方决定如何记录；
// 网络失败、非 200、顶层 GraphQL 错误均作为 error 返回
func (c *Client) UpdateVariantPrice(ctx context.Context, productID, variantID, price string) ([]UserError, error) {
	reqBody := GraphQLRequest{
		Query: bulkUpdateMutation,
		Variables: map[string]interface{}{
			"productId": productID,
			"variants":  []VariantPriceInput{{ID: variantID, Price: price}},
		},
	}

	var respBody bulkUpdateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", c.accessToken).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("请求 Shopify 失败: %w", err)
	}

	if resp.StatusCode() == 429 {
		return nil, fmt.Errorf("Shopify 限流 (429), shop=%s", c.shopDomain)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("Shopify 返回异常状态码 %d: %s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL 顶层错误: %s", respBody.Errors[0].Message)
	}

	return respBody.Data.ProductVariantsBulkUpdate.UserErrors, nil
}
