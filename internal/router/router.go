package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopify_discount_v1_202608/internal/controller"
	"shopify_discount_v1_202608/internal/middleware"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	User     *controller.UserController
	Shop     *controller.ShopController
	Settings *controller.SettingsController
	Discount *controller.DiscountController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// auth 店铺授权（无需登录，Shopify 回调直接访问）
		auth := api.Group("/auth")
		{
			// GET /api/auth/login?shop=xxx.myshopify.com
			auth.GET("/login", ctls.Auth.Login)

			// GET /api/auth/callback
			auth.GET("/callback", ctls.Auth.Callback)
		}

		// users 后台用户
		users := api.Group("/users")
		{
			// POST /api/users/login
			users.POST("/login", ctls.User.Login)

			// 创建用户需要管理员身份
			users.POST("/register",
				middleware.JWTAuth(),
				middleware.RequireRole("admin"),
				ctls.User.Register)
		}

		// 以下接口全部需要登录
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(), middleware.AuditContext())
		{
			// shops 店铺管理
			shops := authorized.Group("/shops")
			{
				shops.GET("", ctls.Shop.ListShops)
				shops.GET("/:shop_domain", ctls.Shop.GetShop)
				shops.PUT("/:shop_domain/disable", ctls.Shop.DisableShop)

				// 店铺折扣配置
				shops.GET("/:shop_domain/settings", ctls.Settings.GetSettings)
				shops.PUT("/:shop_domain/settings", ctls.Settings.UpdateSettings)

				// 登记商品
				shops.GET("/:shop_domain/discounts", ctls.Discount.ListDiscounts)
				shops.POST("/:shop_domain/discounts", ctls.Discount.Enroll)
				shops.DELETE("/:shop_domain/discounts", ctls.Discount.Unenroll)
			}

			// discounts 全局操作
			discounts := authorized.Group("/discounts")
			{
				// POST /api/discounts/sweep 手动触发一轮扫描，带冷却限流
				discounts.POST("/sweep",
					middleware.TriggerRateLimit(middleware.TriggerTypeSweep, 0),
					ctls.Discount.RunSweep)
			}
		}
	}
}
