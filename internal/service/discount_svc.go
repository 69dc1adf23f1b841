package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
)

var (
	ErrProductAlreadyEnrolled = errors.New("商品已登记自动折扣")
	ErrProductNotEnrolled     = errors.New("商品未登记自动折扣")
	ErrInvalidPrice           = errors.New("原价必须为正数")
)

// ==================== 折扣商品服务 ====================

// DiscountService 登记商品的增删查
type DiscountService struct {
	productRepo repository.DiscountProductRepository
}

// NewDiscountService 创建折扣商品服务
func NewDiscountService(productRepo repository.DiscountProductRepository) *DiscountService {
	return &DiscountService{productRepo: productRepo}
}

// Enroll 登记商品
// 登记瞬间的价格固化为原价，后续所有振荡都以它为基准
func (s *DiscountService) Enroll(ctx context.Context, shopDomain string, req dto.EnrollProductReq) (*dto.DiscountProductResp, error) {
	originalPrice, err := decimal.NewFromString(req.OriginalPrice)
	if err != nil {
		return nil, fmt.Errorf("原价格式错误: %w", err)
	}
	if originalPrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	if _, err := s.productRepo.GetByShopAndProduct(ctx, shopDomain, req.ProductID); err == nil {
		return nil, ErrProductAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &model.DiscountProduct{
		ShopDomain:    shopDomain,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		ProductTitle:  req.ProductTitle,
		OriginalPrice: originalPrice.Round(2),
		CurrentPrice:  originalPrice.Round(2),
		Phase:         model.PhaseBase,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	resp := ToDiscountProductResp(product)
	return &resp, nil
}

// Unenroll 取消登记，商品价格保持取消时刻的状态，不做回写
func (s *DiscountService) Unenroll(ctx context.Context, shopDomain, productID string) error {
	if _, err := s.productRepo.GetByShopAndProduct(ctx, shopDomain, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotEnrolled
		}
		return err
	}
	return s.productRepo.DeleteByShopAndProduct(ctx, shopDomain, productID)
}

// ListByShop 查询店铺的全部登记商品
func (s *DiscountService) ListByShop(ctx context.Context, shopDomain string) (*dto.DiscountProductListResp, error) {
	products, err := s.productRepo.ListByShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	resp := &dto.DiscountProductListResp{
		Total: int64(len(products)),
		Items: make([]dto.DiscountProductResp, 0, len(products)),
	}
	for i := range products {
		resp.Items = append(resp.Items, ToDiscountProductResp(&products[i]))
	}
	return resp, nil
}

// ToDiscountProductResp 模型转响应 DTO
func ToDiscountProductResp(p *model.DiscountProduct) dto.DiscountProductResp {
	return dto.DiscountProductResp{
		ID:            p.ID,
		ShopDomain:    p.ShopDomain,
		ProductID:     p.ProductID,
		VariantID:     p.VariantID,
		ProductTitle:  p.ProductTitle,
		OriginalPrice: p.OriginalPrice.StringFixed(2),
		CurrentPrice:  p.CurrentPrice.StringFixed(2),
		Phase:         p.Phase,
		LastUpdated:   p.LastUpdated,
		CreatedAt:     p.CreatedAt,
	}
}
