package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/service"
	"shopify_discount_v1_202608/internal/task"
)

type DiscountController struct {
	discountSvc *service.DiscountService
	sweepTask   *task.DiscountSweepTask
}

func NewDiscountController(discountSvc *service.DiscountService, sweepTask *task.DiscountSweepTask) *DiscountController {
	return &DiscountController{
		discountSvc: discountSvc,
		sweepTask:   sweepTask,
	}
}

// ListDiscounts 获取店铺登记商品列表
// @Summary 获取登记商品列表
// @Description 查询店铺参与自动折扣的全部商品及其振荡状态
// @Tags Discount (自动折扣)
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Success 200 {object} dto.DiscountProductListResp "登记商品列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/shops/{shop_domain}/discounts [get]
func (c *DiscountController) ListDiscounts(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	resp, err := c.discountSvc.ListByShop(ctx.Request.Context(), shopDomain)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Enroll 登记商品
// @Summary 登记商品参与自动折扣
// @Description 登记瞬间的价格固化为原价，后续振荡以它为基准
// @Tags Discount (自动折扣)
// @Accept json
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Param request body dto.EnrollProductReq true "登记请求"
// @Success 200 {object} dto.DiscountProductResp "登记结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "商品已登记"
// @Router /api/shops/{shop_domain}/discounts [post]
func (c *DiscountController) Enroll(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	var req dto.EnrollProductReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.discountSvc.Enroll(ctx.Request.Context(), shopDomain, req)
	if err != nil {
		if errors.Is(err, service.ErrProductAlreadyEnrolled) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidPrice) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Unenroll 取消登记
// @Summary 取消商品的自动折扣
// @Description 取消后价格保持当时状态，不做回写；product_id 为 Shopify GID，经 query 传入
// @Tags Discount (自动折扣)
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Param product_id query string true "商品 GID"
// @Success 200 {object} map[string]string "取消成功"
// @Failure 404 {object} map[string]string "商品未登记"
// @Router /api/shops/{shop_domain}/discounts [delete]
func (c *DiscountController) Unenroll(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")
	productID := ctx.Query("product_id")
	if productID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "缺少 product_id 参数"})
		return
	}

	if err := c.discountSvc.Unenroll(ctx.Request.Context(), shopDomain, productID); err != nil {
		if errors.Is(err, service.ErrProductNotEnrolled) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已取消登记"})
}

// RunSweep 手动触发一轮扫描
// @Summary 手动触发价格振荡扫描
// @Description 与定时任务走同一个引擎，正在执行的店铺本轮跳过
// @Tags Discount (自动折扣)
// @Produce json
// @Success 200 {object} dto.SweepResult "扫描结果"
// @Failure 429 {object} map[string]interface{} "冷却中"
// @Failure 500 {object} map[string]string "扫描失败"
// @Router /api/discounts/sweep [post]
func (c *DiscountController) RunSweep(ctx *gin.Context) {
	result, err := c.sweepTask.RunNow(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
