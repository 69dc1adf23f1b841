package service

import (
	"context"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
)

// ==================== 店铺服务 ====================

// ShopService 已接入店铺的查询与管理
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// List 分页查询店铺
func (s *ShopService) List(ctx context.Context, filter repository.ShopFilter) (*dto.ShopListResp, error) {
	shops, total, err := s.shopRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ShopListResp{
		Total: total,
		Items: make([]dto.ShopResp, 0, len(shops)),
	}
	for i := range shops {
		resp.Items = append(resp.Items, toShopResp(&shops[i]))
	}
	return resp, nil
}

// GetByDomain 按域名查询店铺
func (s *ShopService) GetByDomain(ctx context.Context, shopDomain string) (*dto.ShopResp, error) {
	shop, err := s.shopRepo.GetByDomain(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	resp := toShopResp(shop)
	return &resp, nil
}

// Disable 停用店铺，停用后不再参与扫描
func (s *ShopService) Disable(ctx context.Context, shopDomain string) error {
	shop, err := s.shopRepo.GetByDomain(ctx, shopDomain)
	if err != nil {
		return err
	}
	return s.shopRepo.UpdateStatus(ctx, shop.ID, model.ShopStatusDisabled)
}

func toShopResp(shop *model.Shop) dto.ShopResp {
	return dto.ShopResp{
		ID:          shop.ID,
		ShopDomain:  shop.ShopDomain,
		ShopName:    shop.ShopName,
		TokenStatus: shop.TokenStatus,
		ApiVersion:  shop.ApiVersion,
		Status:      shop.Status,
		CreatedAt:   shop.CreatedAt,
	}
}
