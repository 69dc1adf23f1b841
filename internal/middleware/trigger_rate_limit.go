package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 触发限流中间件 ====================

// TriggerRateLimit 手动触发限流中间件
// 按店铺域名 + 触发类型维度限流，无店铺参数时退化为全局限流
//
// 使用示例:
//
//	router.POST("/api/discounts/sweep",
//	    middleware.TriggerRateLimit(middleware.TriggerTypeSweep, 0),
//	    controller.RunSweep,
//	)
//
// 参数:
//   - triggerType: 触发类型
//   - interval: 冷却间隔，0 表示使用默认值
func TriggerRateLimit(triggerType TriggerType, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(triggerType)
	}

	return func(c *gin.Context) {
		shopDomain := c.Param("shop_domain")
		if shopDomain == "" {
			shopDomain = c.Query("shop_domain")
		}

		var key string
		if shopDomain != "" {
			key = ShopTriggerKey(shopDomain, triggerType)
		} else {
			key = GlobalTriggerKey(triggerType)
		}

		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after":  retryAfter,
					"trigger_type": triggerType,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())

	if seconds < 60 {
		return fmt.Sprintf("扫描冷却中，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("扫描冷却中，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("扫描冷却中，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
