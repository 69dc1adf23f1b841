package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopify_discount_v1_202608/internal/service"
)

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Login 发起店铺授权
// @Summary 发起 Shopify 店铺授权
// @Description 生成授权链接并重定向到 Shopify 授权页
// @Tags Auth (店铺授权)
// @Param shop query string true "店铺域名 (*.myshopify.com)"
// @Success 302 "重定向到 Shopify"
// @Failure 400 {object} map[string]string "域名格式错误"
// @Router /api/auth/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	shopDomain := ctx.Query("shop")
	if shopDomain == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "缺少 shop 参数"})
		return
	}

	authURL, err := c.authSvc.GenerateLoginURL(ctx.Request.Context(), shopDomain)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.Redirect(http.StatusFound, authURL)
}

// Callback 处理授权回调
// @Summary Shopify 授权回调
// @Description 校验 state 与签名，用授权码换取 Token 并保存店铺
// @Tags Auth (店铺授权)
// @Produce json
// @Param code query string true "授权码"
// @Param shop query string true "店铺域名"
// @Param state query string true "防伪随机串"
// @Param hmac query string true "回调签名"
// @Success 200 {object} map[string]interface{} "授权成功"
// @Failure 400 {object} map[string]string "校验失败"
// @Router /api/auth/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	shopDomain := ctx.Query("shop")
	state := ctx.Query("state")
	if code == "" || shopDomain == "" || state == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "回调参数不完整"})
		return
	}

	shop, err := c.authSvc.HandleCallback(ctx.Request.Context(), shopDomain, code, state, ctx.Request.URL.Query())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "授权成功",
		"shop_domain": shop.ShopDomain,
		"shop_name":   shop.ShopName,
	})
}
