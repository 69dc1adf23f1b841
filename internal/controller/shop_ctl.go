package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopify_discount_v1_202608/internal/repository"
	"shopify_discount_v1_202608/internal/service"
)

type ShopController struct {
	shopSvc *service.ShopService
}

func NewShopController(shopSvc *service.ShopService) *ShopController {
	return &ShopController{shopSvc: shopSvc}
}

// ListShops 获取店铺列表
// @Summary 获取已接入店铺列表
// @Description 分页查询，支持按域名、状态筛选
// @Tags Shop (店铺管理)
// @Produce json
// @Param keyword query string false "域名关键词"
// @Param status query int false "状态筛选 (-1 不筛选)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ShopListResp "店铺列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/shops [get]
func (c *ShopController) ListShops(ctx *gin.Context) {
	status := -1
	if s := ctx.Query("status"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的状态参数"})
			return
		}
		status = parsed
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.shopSvc.List(ctx.Request.Context(), repository.ShopFilter{
		ShopDomain: ctx.Query("keyword"),
		Status:     status,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetShop 获取店铺详情
// @Summary 获取店铺详情
// @Tags Shop (店铺管理)
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Success 200 {object} dto.ShopResp "店铺详情"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{shop_domain} [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	resp, err := c.shopSvc.GetByDomain(ctx.Request.Context(), shopDomain)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "店铺不存在"})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DisableShop 停用店铺
// @Summary 停用店铺
// @Description 停用后店铺不再参与任何扫描
// @Tags Shop (店铺管理)
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Success 200 {object} map[string]string "停用成功"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/shops/{shop_domain}/disable [put]
func (c *ShopController) DisableShop(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	if err := c.shopSvc.Disable(ctx.Request.Context(), shopDomain); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "店铺不存在"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "店铺已停用"})
}
