package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopify_discount_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SettingsRepository 店铺配置仓储接口
type SettingsRepository interface {
	// GetOrCreate 读取店铺配置，不存在时按默认值创建
	GetOrCreate(ctx context.Context, shopDomain string) (*model.ShopSettings, error)
	Update(ctx context.Context, shopDomain string, autoDiscount bool, adminDiscount decimal.Decimal) error

	// ListAutoDiscountEnabled 查询所有开启自动折扣的店铺配置（引擎扫描入口）
	ListAutoDiscountEnabled(ctx context.Context) ([]model.ShopSettings, error)
}

// ==================== 仓储实现 ====================

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository 创建店铺配置仓储
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetOrCreate(ctx context.Context, shopDomain string) (*model.ShopSettings, error) {
	var settings model.ShopSettings
	err := r.db.WithContext(ctx).Where("shop_domain = ?", shopDomain).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 首次访问：按默认值创建（自动折扣默认关闭）
	settings = model.ShopSettings{ShopDomain: shopDomain}
	if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Update(ctx context.Context, shopDomain string, autoDiscount bool, adminDiscount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&model.ShopSettings{}).
		Where("shop_domain = ?", shopDomain).
		Updates(map[string]interface{}{
			"auto_discount":  autoDiscount,
			"admin_discount": adminDiscount,
		}).Error
}

func (r *settingsRepo) ListAutoDiscountEnabled(ctx context.Context) ([]model.ShopSettings, error) {
	var list []model.ShopSettings
	err := r.db.WithContext(ctx).
		Where("auto_discount = ?", true).
		Find(&list).Error
	return list, err
}
