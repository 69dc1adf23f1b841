package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
)

// ==================== 店铺配置服务 ====================

// SettingsService 店铺折扣配置读写
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService 创建店铺配置服务
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get 读取店铺配置，首次访问时自动创建默认值
func (s *SettingsService) Get(ctx context.Context, shopDomain string) (*dto.SettingsResp, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	return toSettingsResp(settings), nil
}

// Update 更新店铺配置
// admin_discount 留空保持当前值；传入值必须为正数
func (s *SettingsService) Update(ctx context.Context, shopDomain string, req dto.UpdateSettingsReq) (*dto.SettingsResp, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	adminDiscount := settings.AdminDiscount
	if req.AdminDiscount != "" {
		parsed, err := decimal.NewFromString(req.AdminDiscount)
		if err != nil {
			return nil, fmt.Errorf("偏移量格式错误: %w", err)
		}
		if parsed.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("偏移量必须为正数")
		}
		adminDiscount = parsed.Round(2)
	}

	if err := s.settingsRepo.Update(ctx, shopDomain, *req.AutoDiscount, adminDiscount); err != nil {
		return nil, err
	}

	return s.Get(ctx, shopDomain)
}

func toSettingsResp(settings *model.ShopSettings) *dto.SettingsResp {
	return &dto.SettingsResp{
		ShopDomain:    settings.ShopDomain,
		AutoDiscount:  settings.AutoDiscount,
		AdminDiscount: settings.AdminDiscount.StringFixed(2),
	}
}
