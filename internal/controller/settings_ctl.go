package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopify_discount_v1_202608/internal/api/dto"
	"shopify_discount_v1_202608/internal/service"
)

type SettingsController struct {
	settingsSvc *service.SettingsService
}

func NewSettingsController(settingsSvc *service.SettingsService) *SettingsController {
	return &SettingsController{settingsSvc: settingsSvc}
}

// GetSettings 获取店铺折扣配置
// @Summary 获取店铺折扣配置
// @Description 首次访问时自动创建默认配置（自动折扣关闭）
// @Tags Settings (店铺配置)
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Success 200 {object} dto.SettingsResp "店铺配置"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/shops/{shop_domain}/settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	resp, err := c.settingsSvc.Get(ctx.Request.Context(), shopDomain)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateSettings 更新店铺折扣配置
// @Summary 更新店铺折扣配置
// @Description 开关自动折扣、调整振荡偏移量
// @Tags Settings (店铺配置)
// @Accept json
// @Produce json
// @Param shop_domain path string true "店铺域名"
// @Param request body dto.UpdateSettingsReq true "配置更新请求"
// @Success 200 {object} dto.SettingsResp "更新后的配置"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/shops/{shop_domain}/settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	shopDomain := ctx.Param("shop_domain")

	var req dto.UpdateSettingsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.settingsSvc.Update(ctx.Request.Context(), shopDomain, req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
