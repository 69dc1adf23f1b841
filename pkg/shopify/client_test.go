package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ==================== 测试辅助 ====================

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-shop.myshopify.com", "shpat_test_token", "2024-10")
	client.SetBaseURL(server.URL)
	return client, server
}

// ==================== 客户端测试 ====================

func TestClient_UpdateVariantPrice_Success(t *testing.T) {
	var gotToken string
	var gotReq GraphQLRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"productVariantsBulkUpdate":{"productVariants":[{"id":"gid://shopify/ProductVariant/1","price":"21.99"}],"userErrors":[]}}}`))
	})

	userErrors, err := client.UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "21.99")
	if err != nil {
		t.Fatalf("UpdateVariantPrice 失败: %v", err)
	}
	if len(userErrors) != 0 {
		t.Errorf("userErrors = %v, want empty", userErrors)
	}
	if gotToken != "shpat_test_token" {
		t.Errorf("token 头 = %s, want shpat_test_token", gotToken)
	}
	if gotReq.Variables["productId"] != "gid://shopify/Product/100" {
		t.Errorf("productId = %v", gotReq.Variables["productId"])
	}
}

// userErrors 是业务拒绝，不作为传输错误返回
func TestClient_UpdateVariantPrice_UserErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"productVariantsBulkUpdate":{"productVariants":[],"userErrors":[{"field":["variants","price"],"message":"Price must be positive"}]}}}`))
	})

	userErrors, err := client.UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "-1.00")
	if err != nil {
		t.Fatalf("userErrors 不应作为 error 返回: %v", err)
	}
	if len(userErrors) != 1 {
		t.Fatalf("len(userErrors) = %d, want 1", len(userErrors))
	}
	if userErrors[0].Message != "Price must be positive" {
		t.Errorf("message = %s", userErrors[0].Message)
	}
}

func TestClient_UpdateVariantPrice_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "21.99")
	if err == nil {
		t.Error("500 响应应返回 error")
	}
}

func TestClient_UpdateVariantPrice_RateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "21.99")
	if err == nil {
		t.Error("429 响应应返回 error")
	}
}

func TestClient_UpdateVariantPrice_TopLevelGraphQLError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid API key or access token"}]}`))
	})

	_, err := client.UpdateVariantPrice(context.Background(),
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "21.99")
	if err == nil {
		t.Error("顶层 GraphQL 错误应返回 error")
	}
}

func TestClient_UpdateVariantPrice_ContextTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{"productVariantsBulkUpdate":{"productVariants":[],"userErrors":[]}}}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.UpdateVariantPrice(ctx,
		"gid://shopify/Product/100", "gid://shopify/ProductVariant/1", "21.99")
	if err == nil {
		t.Error("超时应返回 error")
	}
}
