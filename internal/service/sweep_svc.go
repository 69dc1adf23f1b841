package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
	"shopify_discount_v1_202608/pkg/shopify"
)

// ==================== 目录客户端抽象 ====================

// CatalogClient 商品目录写入接口（生产实现为 Shopify GraphQL 客户端）
type CatalogClient interface {
	UpdateVariantPrice(ctx context.Context, productID, variantID, price string) ([]shopify.UserError, error)
}

// CatalogClientFactory 按店铺凭证构造目录客户端
type CatalogClientFactory func(shop *model.Shop) CatalogClient

// NewShopifyCatalogFactory 生产环境工厂
func NewShopifyCatalogFactory() CatalogClientFactory {
	return func(shop *model.Shop) CatalogClient {
		apiVersion := shop.ApiVersion
		if apiVersion == "" {
			apiVersion = model.DefaultApiVersion
		}
		return shopify.NewClient(shop.ShopDomain, shop.AccessToken, apiVersion)
	}
}

// ==================== 扫描配置 ====================

// SweepConfig 扫描引擎参数
type SweepConfig struct {
	Offset          decimal.Decimal // 全局默认振荡偏移量
	ShopConcurrency int             // 同时处理的店铺数上限
	ItemTimeout     time.Duration   // 单条商品的目录写入超时
	SleepTime       time.Duration   // 店铺协程启动间隔，平滑波峰
}

// DefaultSweepConfig 默认参数
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Offset:          model.DefaultOffset,
		ShopConcurrency: 10,
		ItemTimeout:     15 * time.Second,
		SleepTime:       20 * time.Millisecond,
	}
}

// ==================== 扫描引擎 ====================

// SweepService 价格振荡扫描引擎
// 每轮扫描遍历所有开启自动折扣的店铺，把登记商品的价格在
// 原价+偏移 与 原价-偏移 之间切换；店铺之间并发，店铺内部串行
type SweepService struct {
	shopRepo      repository.ShopRepository
	settingsRepo  repository.SettingsRepository
	productRepo   repository.DiscountProductRepository
	clientFactory CatalogClientFactory
	config        SweepConfig

	// 店铺级互斥：同一店铺上一轮未结束时本轮直接跳过，不排队
	shopLocks sync.Map // shopDomain -> *sync.Mutex
}

// NewSweepService 创建扫描引擎
func NewSweepService(
	shopRepo repository.ShopRepository,
	settingsRepo repository.SettingsRepository,
	productRepo repository.DiscountProductRepository,
	clientFactory CatalogClientFactory,
	config SweepConfig,
) *SweepService {
	if config.ShopConcurrency <= 0 {
		config.ShopConcurrency = 10
	}
	if config.ItemTimeout <= 0 {
		config.ItemTimeout = 15 * time.Second
	}
	if config.Offset.LessThanOrEqual(decimal.Zero) {
		config.Offset = model.DefaultOffset
	}
	return &SweepService{
		shopRepo:      shopRepo,
		settingsRepo:  settingsRepo,
		productRepo:   productRepo,
		clientFactory: clientFactory,
		config:        config,
	}
}

// RunSweep 执行一轮完整扫描
// 单个店铺或单条商品的失败只影响自身，不中断整轮扫描
func (s *SweepService) RunSweep(ctx context.Context) (*dto.SweepResult, error) {
	result := &dto.SweepResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	settingsList, err := s.settingsRepo.ListAutoDiscountEnabled(ctx)
	if err != nil {
		log.Printf("[Sweep] 查询自动折扣店铺失败: %v", err)
		return nil, err
	}
	result.ShopsEligible = len(settingsList)

	log.Printf("[Sweep] 运行 %s 开始，待处理店铺 %d 个，并发上限 %d",
		result.RunID, len(settingsList), s.config.ShopConcurrency)

	sem := make(chan struct{}, s.config.ShopConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex // 保护 result 的汇总字段

	for _, settings := range settingsList {
		select {
		case <-ctx.Done():
			log.Printf("[Sweep] 运行 %s 被取消，提前收尾", result.RunID)
			wg.Wait()
			result.FinishedAt = time.Now()
			return result, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		if s.config.SleepTime > 0 {
			time.Sleep(s.config.SleepTime)
		}

		current := settings

		go func(st model.ShopSettings) {
			defer wg.Done()
			defer func() { <-sem }()

			s.sweepShop(ctx, st, result, &mu)
		}(current)
	}

	wg.Wait()
	result.FinishedAt = time.Now()

	log.Printf("[Sweep] 运行 %s 结束: 处理 %d 跳过 %d 占用 %d | 更新 %d 拒绝 %d 失败 %d 冲突 %d 不一致 %d",
		result.RunID, result.ShopsProcessed, result.ShopsSkipped, result.ShopsLocked,
		result.ItemsUpdated, result.ItemsRejected, result.ItemsFailed,
		result.ItemsConflicted, result.ItemsInconsistent)

	return result, nil
}

// sweepShop 处理单个店铺的全部登记商品（店铺内部串行）
func (s *SweepService) sweepShop(ctx context.Context, settings model.ShopSettings, result *dto.SweepResult, mu *sync.Mutex) {
	domain := settings.ShopDomain

	lockVal, _ := s.shopLocks.LoadOrStore(domain, &sync.Mutex{})
	lock := lockVal.(*sync.Mutex)

	// 拿不到锁说明该店铺上一轮还在执行，跳过而不是排队
	if !lock.TryLock() {
		log.Printf("[Sweep] 店铺 [%s] 上一轮仍在执行，本轮跳过", domain)
		mu.Lock()
		result.ShopsLocked++
		result.SkippedShops = append(result.SkippedShops, dto.SweepSkippedShop{
			ShopDomain: domain, Reason: dto.SkipLocked,
		})
		mu.Unlock()
		return
	}
	defer lock.Unlock()

	shop, err := s.shopRepo.GetByDomain(ctx, domain)
	if err != nil || !shop.HasCredential() {
		mu.Lock()
		result.ShopsSkipped++
		result.SkippedShops = append(result.SkippedShops, dto.SweepSkippedShop{
			ShopDomain: domain, Reason: dto.SkipNoCredential,
		})
		mu.Unlock()
		return
	}

	products, err := s.productRepo.ListByShop(ctx, domain)
	if err != nil {
		log.Printf("[Sweep] 店铺 [%s] 登记商品查询失败: %v", domain, err)
		mu.Lock()
		result.ShopsSkipped++
		result.SkippedShops = append(result.SkippedShops, dto.SweepSkippedShop{
			ShopDomain: domain, Reason: dto.SkipNoProducts,
		})
		mu.Unlock()
		return
	}
	if len(products) == 0 {
		mu.Lock()
		result.ShopsSkipped++
		result.SkippedShops = append(result.SkippedShops, dto.SweepSkippedShop{
			ShopDomain: domain, Reason: dto.SkipNoProducts,
		})
		mu.Unlock()
		return
	}

	// 店铺配置的偏移量优先，未配置时使用全局默认
	offset := s.config.Offset
	if settings.AdminDiscount.GreaterThan(decimal.Zero) {
		offset = settings.AdminDiscount
	}

	client := s.clientFactory(shop)

	for _, product := range products {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := s.sweepItem(ctx, client, product, offset)

		mu.Lock()
		switch outcome.Status {
		case dto.SweepItemUpdated:
			result.ItemsUpdated++
		case dto.SweepItemRejected:
			result.ItemsRejected++
		case dto.SweepItemFailed:
			result.ItemsFailed++
		case dto.SweepItemConflicted:
			result.ItemsConflicted++
		case dto.SweepItemInconsistent:
			result.ItemsInconsistent++
		}
		result.Items = append(result.Items, outcome)
		mu.Unlock()
	}

	mu.Lock()
	result.ShopsProcessed++
	mu.Unlock()
}

// sweepItem 处理单条商品：先写目录，成功后再落库
// 价格始终以原价为基准计算，杜绝多轮累计漂移
func (s *SweepService) sweepItem(ctx context.Context, client CatalogClient, product model.DiscountProduct, offset decimal.Decimal) dto.SweepItemOutcome {
	outcome := dto.SweepItemOutcome{
		ShopDomain: product.ShopDomain,
		ProductID:  product.ProductID,
	}

	newPrice, newPhase := model.NextCycle(product.OriginalPrice, product.Phase, offset)

	itemCtx, cancel := context.WithTimeout(ctx, s.config.ItemTimeout)
	defer cancel()

	userErrors, err := client.UpdateVariantPrice(itemCtx, product.ProductID, product.VariantID, newPrice.StringFixed(2))
	if err != nil {
		log.Printf("[Sweep] 店铺 [%s] 商品 %s 目录写入失败: %v", product.ShopDomain, product.ProductID, err)
		outcome.Status = dto.SweepItemFailed
		outcome.Error = err.Error()
		return outcome
	}
	if len(userErrors) > 0 {
		// 目录侧业务拒绝：本地状态保持不变，下一轮重算同一目标价
		log.Printf("[Sweep] 店铺 [%s] 商品 %s 被目录拒绝: %s", product.ShopDomain, product.ProductID, userErrors[0].Message)
		outcome.Status = dto.SweepItemRejected
		outcome.Error = userErrors[0].Message
		return outcome
	}

	now := time.Now()
	affected, err := s.productRepo.UpdateCycleState(itemCtx, product.ID, newPrice, newPhase, now, product.Phase)
	if err != nil {
		// 目录已写入但本地落库失败，价格与状态出现分叉
		log.Printf("[CRITICAL] 店铺 [%s] 商品 %s 目录已更新为 %s 但状态落库失败: %v",
			product.ShopDomain, product.ProductID, newPrice.StringFixed(2), err)
		outcome.Status = dto.SweepItemInconsistent
		outcome.Error = err.Error()
		return outcome
	}
	if affected == 0 {
		// 相位守卫未命中：另一轮运行已抢先提交
		log.Printf("[Sweep] 店铺 [%s] 商品 %s 相位守卫未命中，放弃本条提交", product.ShopDomain, product.ProductID)
		outcome.Status = dto.SweepItemConflicted
		return outcome
	}

	outcome.Status = dto.SweepItemUpdated
	outcome.NewPrice = newPrice.StringFixed(2)
	outcome.Phase = newPhase
	return outcome
}
