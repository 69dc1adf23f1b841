package shopify

// ==================== GraphQL 请求 ====================

// GraphQLRequest Admin GraphQL 请求体
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// VariantPriceInput productVariantsBulkUpdate 的变体输入
type VariantPriceInput struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

// ==================== GraphQL 响应 ====================

// UserError Shopify 业务层校验错误
// 出现 UserError 表示请求被目录侧拒绝，重试同样会失败
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// GraphQLError 顶层协议错误（查询语法、权限等）
type GraphQLError struct {
	Message string `json:"message"`
}

type bulkUpdateResponse struct {
	Data struct {
		ProductVariantsBulkUpdate struct {
			ProductVariants []struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"productVariants"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// ==================== OAuth ====================

// AccessTokenResp 授权码换取 Token 的响应
type AccessTokenResp struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}
