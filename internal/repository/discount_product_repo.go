package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopify_discount_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// DiscountProductRepository 折扣商品仓储接口
type DiscountProductRepository interface {
	Create(ctx context.Context, product *model.DiscountProduct) error
	GetByID(ctx context.Context, id int64) (*model.DiscountProduct, error)
	GetByShopAndProduct(ctx context.Context, shopDomain, productID string) (*model.DiscountProduct, error)
	DeleteByShopAndProduct(ctx context.Context, shopDomain, productID string) error

	// 列表查询
	ListByShop(ctx context.Context, shopDomain string) ([]model.DiscountProduct, error)
	CountByShop(ctx context.Context, shopDomain string) (int64, error)

	// UpdateCycleState 以单条带相位守卫的 UPDATE 提交一轮振荡结果
	// CurrentPrice、Phase、LastUpdated 作为一个整体原子更新；
	// expectPhase 不匹配（已被另一次运行抢先更新）时影响行数为 0，不报错
	UpdateCycleState(ctx context.Context, id int64, price decimal.Decimal, phase string, updatedAt time.Time, expectPhase string) (int64, error)

	// 事务
	WithTx(tx *gorm.DB) DiscountProductRepository
	Transaction(ctx context.Context, fn func(txRepo DiscountProductRepository) error) error
}

// ==================== 仓储实现 ====================

type discountProductRepo struct {
	db *gorm.DB
}

// NewDiscountProductRepository 创建折扣商品仓储
func NewDiscountProductRepository(db *gorm.DB) DiscountProductRepository {
	return &discountProductRepo{db: db}
}

func (r *discountProductRepo) Create(ctx context.Context, product *model.DiscountProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *discountProductRepo) GetByID(ctx context.Context, id int64) (*model.DiscountProduct, error) {
	var product model.DiscountProduct
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *discountProductRepo) GetByShopAndProduct(ctx context.Context, shopDomain, productID string) (*model.DiscountProduct, error) {
	var product model.DiscountProduct
	err := r.db.WithContext(ctx).
		Where("shop_domain = ? AND product_id = ?", shopDomain, productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *discountProductRepo) DeleteByShopAndProduct(ctx context.Context, shopDomain, productID string) error {
	return r.db.WithContext(ctx).
		Where("shop_domain = ? AND product_id = ?", shopDomain, productID).
		Delete(&model.DiscountProduct{}).Error
}

func (r *discountProductRepo) ListByShop(ctx context.Context, shopDomain string) ([]model.DiscountProduct, error) {
	var products []model.DiscountProduct
	err := r.db.WithContext(ctx).
		Where("shop_domain = ?", shopDomain).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *discountProductRepo) CountByShop(ctx context.Context, shopDomain string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DiscountProduct{}).
		Where("shop_domain = ?", shopDomain).
		Count(&count).Error
	return count, err
}

func (r *discountProductRepo) UpdateCycleState(ctx context.Context, id int64, price decimal.Decimal, phase string, updatedAt time.Time, expectPhase string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.DiscountProduct{}).
		Where("id = ? AND phase = ?", id, expectPhase).
		Updates(map[string]interface{}{
			"current_price": price,
			"phase":         phase,
			"last_updated":  updatedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *discountProductRepo) WithTx(tx *gorm.DB) DiscountProductRepository {
	return &discountProductRepo{db: tx}
}

func (r *discountProductRepo) Transaction(ctx context.Context, fn func(txRepo DiscountProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
