package service

import (
	"context"
	"errors"
	"testing"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
)

// ==================== 商品登记测试 ====================

func newDiscountService(t *testing.T) (*DiscountService, repository.DiscountProductRepository) {
	db := setupSweepTestDB(t)
	repo := repository.NewDiscountProductRepository(db)
	return NewDiscountService(repo), repo
}

func TestDiscountService_Enroll(t *testing.T) {
	svc, _ := newDiscountService(t)
	ctx := context.Background()

	resp, err := svc.Enroll(ctx, "demo.myshopify.com", dto.EnrollProductReq{
		ProductID:     "gid://shopify/Product/1",
		VariantID:     "gid://shopify/ProductVariant/1",
		ProductTitle:  "Ceramic Mug",
		OriginalPrice: "19.99",
	})
	if err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}

	if resp.OriginalPrice != "19.99" {
		t.Errorf("OriginalPrice = %s, want 19.99", resp.OriginalPrice)
	}
	if resp.CurrentPrice != "19.99" {
		t.Errorf("登记时当前价应等于原价, got %s", resp.CurrentPrice)
	}
	if resp.Phase != model.PhaseBase {
		t.Errorf("Phase = %s, want %s", resp.Phase, model.PhaseBase)
	}
}

func TestDiscountService_Enroll_Duplicate(t *testing.T) {
	svc, _ := newDiscountService(t)
	ctx := context.Background()

	req := dto.EnrollProductReq{
		ProductID:     "gid://shopify/Product/1",
		VariantID:     "gid://shopify/ProductVariant/1",
		OriginalPrice: "19.99",
	}
	if _, err := svc.Enroll(ctx, "demo.myshopify.com", req); err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}

	_, err := svc.Enroll(ctx, "demo.myshopify.com", req)
	if !errors.Is(err, ErrProductAlreadyEnrolled) {
		t.Errorf("err = %v, want ErrProductAlreadyEnrolled", err)
	}
}

func TestDiscountService_Enroll_InvalidPrice(t *testing.T) {
	svc, _ := newDiscountService(t)
	ctx := context.Background()

	cases := []string{"0", "-1.00", "abc", ""}
	for _, price := range cases {
		_, err := svc.Enroll(ctx, "demo.myshopify.com", dto.EnrollProductReq{
			ProductID:     "gid://shopify/Product/1",
			VariantID:     "gid://shopify/ProductVariant/1",
			OriginalPrice: price,
		})
		if err == nil {
			t.Errorf("原价 %q 应被拒绝", price)
		}
	}
}

func TestDiscountService_Unenroll(t *testing.T) {
	svc, repo := newDiscountService(t)
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, "demo.myshopify.com", dto.EnrollProductReq{
		ProductID:     "gid://shopify/Product/1",
		VariantID:     "gid://shopify/ProductVariant/1",
		OriginalPrice: "19.99",
	}); err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}

	if err := svc.Unenroll(ctx, "demo.myshopify.com", "gid://shopify/Product/1"); err != nil {
		t.Fatalf("Unenroll 失败: %v", err)
	}

	if _, err := repo.GetByShopAndProduct(ctx, "demo.myshopify.com", "gid://shopify/Product/1"); err == nil {
		t.Error("取消登记后记录仍存在")
	}

	// 再次取消返回未登记错误
	err := svc.Unenroll(ctx, "demo.myshopify.com", "gid://shopify/Product/1")
	if !errors.Is(err, ErrProductNotEnrolled) {
		t.Errorf("err = %v, want ErrProductNotEnrolled", err)
	}
}

func TestDiscountService_ListByShop(t *testing.T) {
	svc, _ := newDiscountService(t)
	ctx := context.Background()

	for _, id := range []string{"gid://shopify/Product/1", "gid://shopify/Product/2"} {
		if _, err := svc.Enroll(ctx, "demo.myshopify.com", dto.EnrollProductReq{
			ProductID:     id,
			VariantID:     "gid://shopify/ProductVariant/1",
			OriginalPrice: "10.00",
		}); err != nil {
			t.Fatalf("Enroll 失败: %v", err)
		}
	}

	list, err := svc.ListByShop(ctx, "demo.myshopify.com")
	if err != nil {
		t.Fatalf("ListByShop 失败: %v", err)
	}
	if list.Total != 2 || len(list.Items) != 2 {
		t.Errorf("Total = %d, len(Items) = %d, want 2/2", list.Total, len(list.Items))
	}
}
