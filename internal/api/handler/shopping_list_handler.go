package handler

import (
	"net/http"

	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShoppingListHandler struct {
	shoppingListService *service.ShoppingListService
}

func NewShoppingListHandler(shoppingListService *service.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingListService: shoppingListService}
}

// Preview 查看购物清单
// @Summary 查看购物清单
// @Description 聚合购物车内所有菜谱的食材用量
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "获取成功"
// @Router /recipes/shopping_list [get]
func (h *ShoppingListHandler) Preview(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	items, err := h.shoppingListService.Build(userID)
	if err != nil {
		logger.Error("Build shopping list failed", zap.Error(err))
		response.InternalError(c, "获取购物清单失败")
		return
	}

	response.OK(c, "获取购物清单成功", gin.H{"items": items})
}

// Download 下载购物清单
// @Summary 下载购物清单
// @Description 以文本文件形式下载聚合后的购物清单
// @Tags 购物车
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "shopping_list.txt"
// @Router /recipes/download_shopping_cart [get]
func (h *ShoppingListHandler) Download(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	text, err := h.shoppingListService.Download(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Download shopping list failed", zap.Error(err))
		response.InternalError(c, "下载购物清单失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
