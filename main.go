package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopify_discount_v1_202608/internal/controller"
	"shopify_discount_v1_202608/internal/middleware"
	"shopify_discount_v1_202608/internal/model"
	"shopify_discount_v1_202608/internal/repository"
	"shopify_discount_v1_202608/internal/router"
	"shopify_discount_v1_202608/internal/service"
	"shopify_discount_v1_202608/internal/task"
	"shopify_discount_v1_202608/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	sweepTask := initTasks(deps)
	defer sweepTask.Stop()

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Shop     repository.ShopRepository
	Settings repository.SettingsRepository
	Product  repository.DiscountProductRepository
	User     repository.UserRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Shop     *service.ShopService
	Settings *service.SettingsService
	Discount *service.DiscountService
	Sweep    *service.SweepService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=discount_admin password=1234 dbname=shopify_discount port=5432 sslmode=disable")

	db := database.InitDB(dsn,
		// Manager
		&model.SysUser{},
		// Shop
		&model.Shop{}, &model.ShopSettings{},
		// Discount
		&model.DiscountProduct{},
	)

	// 审计回调：Create/Update 自动填充操作人
	middleware.RegisterAuditCallbacks(db)

	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Shop:     repository.NewShopRepository(db),
		Settings: repository.NewSettingsRepository(db),
		Product:  repository.NewDiscountProductRepository(db),
		User:     repository.NewUserRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{}
	services.Auth = service.NewAuthService(repos.Shop, service.AuthConfig{
		ApiKey:      getEnv("SHOPIFY_API_KEY", ""),
		ApiSecret:   getEnv("SHOPIFY_API_SECRET", ""),
		CallbackURL: getEnv("SHOPIFY_CALLBACK_URL", "http://localhost:8080/api/auth/callback"),
	})
	services.User = service.NewUserService(repos.User)
	services.Shop = service.NewShopService(repos.Shop)
	services.Settings = service.NewSettingsService(repos.Settings)
	services.Discount = service.NewDiscountService(repos.Product)
	services.Sweep = service.NewSweepService(
		repos.Shop, repos.Settings, repos.Product,
		service.NewShopifyCatalogFactory(),
		sweepConfigFromEnv(),
	)

	// 默认管理员，首次部署后请立即改密
	ensureAdminUser(repos.User)

	return &Dependencies{
		DB:       db,
		Repos:    repos,
		Services: services,
	}
}

// sweepConfigFromEnv 从环境变量装配扫描参数
func sweepConfigFromEnv() service.SweepConfig {
	config := service.DefaultSweepConfig()

	if v := getEnv("SWEEP_OFFSET", ""); v != "" {
		if offset, err := decimal.NewFromString(v); err == nil && offset.GreaterThan(decimal.Zero) {
			config.Offset = offset
		}
	}
	if v := getEnv("SWEEP_SHOP_CONCURRENCY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.ShopConcurrency = n
		}
	}
	if v := getEnv("SWEEP_ITEM_TIMEOUT_SECONDS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.ItemTimeout = time.Duration(n) * time.Second
		}
	}

	return config
}

// ensureAdminUser 保证至少存在一个管理员账号
func ensureAdminUser(userRepo repository.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := userRepo.GetByUsername(ctx, "admin"); err == nil {
		return
	}

	password := getEnv("ADMIN_INIT_PASSWORD", "admin123456")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("警告: 生成管理员密码失败: %v", err)
		return
	}

	if err := userRepo.Create(ctx, &model.SysUser{
		Username: "admin",
		Password: string(hashed),
		Role:     "admin",
		IsActive: true,
	}); err != nil {
		log.Printf("警告: 创建默认管理员失败: %v", err)
		return
	}
	log.Println("[Init] 已创建默认管理员账号 admin")
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务，并把控制器接到任务上
func initTasks(deps *Dependencies) *task.DiscountSweepTask {
	sweepTask := task.NewDiscountSweepTask(deps.Services.Sweep)
	if spec := getEnv("SWEEP_CRON_SPEC", ""); spec != "" {
		sweepTask.SetSchedule(spec)
	}
	sweepTask.Start()

	// Controller 层（手动触发与定时任务共用同一个引擎）
	deps.Controllers = &router.Controllers{
		Auth:     controller.NewAuthController(deps.Services.Auth),
		User:     controller.NewUserController(deps.Services.User),
		Shop:     controller.NewShopController(deps.Services.Shop),
		Settings: controller.NewSettingsController(deps.Services.Settings),
		Discount: controller.NewDiscountController(deps.Services.Discount, sweepTask),
	}

	log.Println("定时任务已启动")
	return sweepTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
