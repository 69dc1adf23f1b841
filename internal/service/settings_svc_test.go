package service

import (
	"context"
	"testing"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/repository"
)

// ==================== 店铺配置测试 ====================

func newSettingsService(t *testing.T) *SettingsService {
	db := setupSweepTestDB(t)
	return NewSettingsService(repository.NewSettingsRepository(db))
}

func TestSettingsService_Get_CreatesDefaults(t *testing.T) {
	svc := newSettingsService(t)

	resp, err := svc.Get(context.Background(), "demo.myshopify.com")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if resp.AutoDiscount {
		t.Error("自动折扣默认应为关闭")
	}
}

func TestSettingsService_Update(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	enabled := true
	resp, err := svc.Update(ctx, "demo.myshopify.com", dto.UpdateSettingsReq{
		AutoDiscount:  &enabled,
		AdminDiscount: "3.50",
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if !resp.AutoDiscount {
		t.Error("AutoDiscount 未更新")
	}
	if resp.AdminDiscount != "3.50" {
		t.Errorf("AdminDiscount = %s, want 3.50", resp.AdminDiscount)
	}
}

func TestSettingsService_Update_KeepsOffsetWhenEmpty(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	enabled := true
	if _, err := svc.Update(ctx, "demo.myshopify.com", dto.UpdateSettingsReq{
		AutoDiscount:  &enabled,
		AdminDiscount: "3.50",
	}); err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	disabled := false
	resp, err := svc.Update(ctx, "demo.myshopify.com", dto.UpdateSettingsReq{
		AutoDiscount: &disabled,
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if resp.AdminDiscount != "3.50" {
		t.Errorf("留空时偏移量应保持 3.50, got %s", resp.AdminDiscount)
	}
}

func TestSettingsService_Update_RejectsInvalidOffset(t *testing.T) {
	svc := newSettingsService(t)
	enabled := true

	for _, offset := range []string{"0", "-2.00", "abc"} {
		_, err := svc.Update(context.Background(), "demo.myshopify.com", dto.UpdateSettingsReq{
			AutoDiscount:  &enabled,
			AdminDiscount: offset,
		})
		if err == nil {
			t.Errorf("偏移量 %q 应被拒绝", offset)
		}
	}
}
