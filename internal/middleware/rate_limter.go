package middleware

import (
	"fmt"
	"sync"
	"time"
)

// ==================== TriggerRateLimiter 触发限流器 ====================

// TriggerRateLimiter 手动触发限流器
// 防止用户频繁触发手动扫描导致 Shopify API 限流
type TriggerRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &TriggerRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *TriggerRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "shop:demo.myshopify.com:sweep"
// interval: 冷却间隔
func (r *TriggerRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	// 更新最后执行时间
	entry.lastTime = now
	return CheckResult{
		Allowed:    true,
		RetryAfter: 0,
	}
}

// CheckOnly 仅检查，不更新时间
func (r *TriggerRateLimiter) CheckOnly(key string, interval time.Duration) CheckResult {
	actual, ok := r.locks.Load(key)
	if !ok {
		return CheckResult{Allowed: true}
	}

	entry := actual.(*lockEntry)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	elapsed := time.Since(entry.lastTime)
	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *TriggerRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成工具 ====================

// TriggerType 触发类型
type TriggerType string

const (
	TriggerTypeSweep  TriggerType = "sweep"
	TriggerTypeEnroll TriggerType = "enroll"
)

// ShopTriggerKey 生成店铺级触发 Key
func ShopTriggerKey(shopDomain string, triggerType TriggerType) string {
	return fmt.Sprintf("shop:%s:%s", shopDomain, triggerType)
}

// GlobalTriggerKey 生成全局触发 Key
func GlobalTriggerKey(triggerType TriggerType) string {
	return fmt.Sprintf("global:%s", triggerType)
}

// ==================== 默认限流间隔 ====================

// DefaultIntervals 默认限流间隔配置
var DefaultIntervals = map[TriggerType]time.Duration{
	TriggerTypeSweep:  5 * time.Minute, // 手动扫描：整轮振荡代价高，冷却拉长
	TriggerTypeEnroll: 0,               // 登记操作不限流
}

// GetInterval 获取触发类型的默认间隔
func GetInterval(triggerType TriggerType) time.Duration {
	if interval, ok := DefaultIntervals[triggerType]; ok {
		return interval
	}
	return 5 * time.Minute
}
