package handler

import (
	"errors"
	"strconv"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/model"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"
	"sabor-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	relationService *service.RelationService
	authService     *service.AuthService
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	relationService *service.RelationService,
	authService *service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		authService:     authService,
	}
}

// List 菜谱列表
// @Summary 菜谱列表
// @Description 分页获取菜谱，支持按作者、标签、收藏、购物车筛选
// @Tags 菜谱
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param author query int false "作者ID"
// @Param tags query []string false "标签 slug，可重复传递"
// @Param is_favorited query int false "仅我收藏的（1 生效）"
// @Param is_in_shopping_cart query int false "仅购物车内的（1 生效）"
// @Success 200 {object} response.Response{data=dto.RecipeListData} "获取成功"
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := service.RecipeListFilter{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      c.Query("is_favorited") == "1",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1",
	}
	if authorStr := c.Query("author"); authorStr != "" {
		authorID, err := strconv.ParseInt(authorStr, 10, 64)
		if err != nil {
			response.BadRequest(c, "无效的作者ID")
			return
		}
		filter.AuthorID = &authorID
	}

	data, err := h.recipeService.List(currentUserIDOrNil(c), page, pageSize, filter)
	if err != nil {
		logger.Error("List recipes failed", zap.Error(err))
		response.InternalError(c, "获取菜谱列表失败")
		return
	}

	response.OK(c, "获取菜谱列表成功", data)
}

// Get 菜谱详情
// @Summary 菜谱详情
// @Description 获取指定菜谱，登录后附带收藏与购物车状态
// @Tags 菜谱
// @Produce json
// @Param id path int true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	info, err := h.recipeService.GetByID(currentUserIDOrNil(c), recipeID)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "获取菜谱成功", info)
}

// Create 发布菜谱
// @Summary 发布菜谱
// @Description 发布新菜谱，标签与食材随菜谱一并写入
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecipeCreateRequest true "菜谱信息"
// @Success 201 {object} response.Response{data=dto.RecipeInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "参数校验失败"
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.recipeService.Create(userID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.Created(c, "发布菜谱成功", info)
}

// Update 更新菜谱
// @Summary 更新菜谱
// @Description 更新菜谱字段，标签与食材集合整体替换（仅作者）
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Param request body dto.RecipeUpdateRequest true "菜谱信息"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "非菜谱作者"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.recipeService.Update(userID, recipeID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "更新菜谱成功", info)
}

// Delete 删除菜谱
// @Summary 删除菜谱
// @Description 删除菜谱及其关联（作者或管理员）
// @Tags 菜谱
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204 "删除成功"
// @Failure 403 {object} response.ErrorResponse "非菜谱作者"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	isAdmin := false
	if info, err := h.authService.GetCurrentUser(userID); err == nil {
		isAdmin = info.UserRole == "admin"
	}

	if err := h.recipeService.Delete(userID, isAdmin, recipeID); err != nil {
		handleRecipeError(c, err)
		return
	}

	response.NoContent(c)
}

// Favorite 收藏菜谱
// @Summary 收藏菜谱
// @Description 收藏指定菜谱，返回菜谱预览
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipePreview} "收藏成功"
// @Failure 400 {object} response.ErrorResponse "已收藏"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{id}/favorite [post]
func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addRecipeRelation(c, model.RelationFavorite, "收藏成功")
}

// Unfavorite 取消收藏
// @Summary 取消收藏
// @Description 取消对指定菜谱的收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204 "取消成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在/未收藏"
// @Router /recipes/{id}/favorite [delete]
func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeRecipeRelation(c, model.RelationFavorite)
}

// AddToCart 加入购物车
// @Summary 加入购物车
// @Description 将菜谱加入购物车，返回菜谱预览
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipePreview} "加入成功"
// @Failure 400 {object} response.ErrorResponse "已在购物车中"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRecipeRelation(c, model.RelationCart, "加入购物车成功")
}

// RemoveFromCart 移出购物车
// @Summary 移出购物车
// @Description 将菜谱移出购物车
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204 "移出成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在/不在购物车中"
// @Router /recipes/{id}/shopping_cart [delete]
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRecipeRelation(c, model.RelationCart)
}

func (h *RecipeHandler) addRecipeRelation(c *gin.Context, kind model.RelationKind, message string) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	preview, err := h.relationService.AddRecipeRelation(kind, userID, recipeID)
	if err != nil {
		handleRelationError(c, err)
		return
	}

	response.Created(c, message, preview)
}

func (h *RecipeHandler) removeRecipeRelation(c *gin.Context, kind model.RelationKind) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.RemoveRecipeRelation(kind, userID, recipeID); err != nil {
		handleRelationError(c, err)
		return
	}

	response.NoContent(c)
}

func handleRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, utils.ErrInvalidImageData):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrIngredientNotFound):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotRecipeAuthor):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Recipe operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
