package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shopify_discount_v1_202608/internal/api/dto"
)

// SweepRunner 扫描引擎入口（生产实现为 service.SweepService）
type SweepRunner interface {
	RunSweep(ctx context.Context) (*dto.SweepResult, error)
}

// DefaultSweepSpec 每天 0 点执行一轮
const DefaultSweepSpec = "0 0 0 * * *"

// ==================== 定时扫描任务 ====================

// DiscountSweepTask 定时触发价格振荡扫描
// 手动触发与定时触发走同一个引擎，店铺级互斥由引擎内部保证
type DiscountSweepTask struct {
	runner SweepRunner
	Cron   *cron.Cron

	cronSpec   string
	runTimeout time.Duration
}

// NewDiscountSweepTask 创建定时扫描任务
func NewDiscountSweepTask(runner SweepRunner) *DiscountSweepTask {
	return &DiscountSweepTask{
		runner:     runner,
		Cron:       cron.New(cron.WithSeconds()), // 支持秒级控制
		cronSpec:   DefaultSweepSpec,
		runTimeout: 30 * time.Minute,
	}
}

// SetSchedule 覆盖默认的执行计划
func (t *DiscountSweepTask) SetSchedule(spec string) {
	t.cronSpec = spec
}

// Start 启动定时任务
func (t *DiscountSweepTask) Start() {
	_, err := t.Cron.AddFunc(t.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.runTimeout)
		defer cancel()

		t.sweepJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动价格振荡定时任务: %v", err)
	}

	t.Cron.Start()
	log.Printf("[Task] 价格振荡任务已启动 (计划: %s)", t.cronSpec)
}

// Stop 停止定时任务，等待正在执行的扫描收尾
func (t *DiscountSweepTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	log.Println("[Task] 价格振荡任务已停止")
}

// RunNow 手动触发一轮扫描（管理接口用）
func (t *DiscountSweepTask) RunNow(ctx context.Context) (*dto.SweepResult, error) {
	log.Println("[Task] 收到手动触发，开始执行价格振荡扫描")
	return t.runner.RunSweep(ctx)
}

// sweepJob 定时回调
func (t *DiscountSweepTask) sweepJob(ctx context.Context) {
	result, err := t.runner.RunSweep(ctx)
	if err != nil {
		log.Printf("[Cron] 价格振荡扫描失败: %v", err)
		return
	}
	log.Printf("[Cron] 价格振荡扫描完成, 运行 %s: 更新 %d 失败 %d",
		result.RunID, result.ItemsUpdated, result.ItemsFailed)
}
