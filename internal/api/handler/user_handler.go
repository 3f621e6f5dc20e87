package handler

import (
	"errors"
	"strconv"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"
	"sabor-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService     *service.UserService
	relationService *service.RelationService
}

func NewUserHandler(userService *service.UserService, relationService *service.RelationService) *UserHandler {
	return &UserHandler{userService: userService, relationService: relationService}
}

// List 用户列表
// @Summary 用户列表
// @Description 分页获取用户列表，登录后附带订阅状态
// @Tags 用户
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.userService.ListUsers(currentUserIDOrNil(c), page, pageSize)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// GetProfile 获取用户主页
// @Summary 获取用户主页
// @Description 获取指定用户的公开信息，登录后附带订阅状态
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	info, err := h.userService.GetProfile(currentUserIDOrNil(c), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", info)
}

// SetAvatar 设置头像
// @Summary 设置头像
// @Description 上传 base64 编码的头像图片
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetAvatarRequest true "头像数据"
// @Success 200 {object} response.Response{data=dto.AvatarData} "设置成功"
// @Failure 400 {object} response.ErrorResponse "图片格式不正确"
// @Router /users/me/avatar [put]
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	var req dto.SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.userService.SetAvatar(userID, req.Avatar)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "头像设置成功", data)
}

// RemoveAvatar 删除头像
// @Summary 删除头像
// @Description 清除当前用户的头像
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 204 "删除成功"
// @Router /users/me/avatar [delete]
func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.userService.RemoveAvatar(userID); err != nil {
		handleUserError(c, err)
		return
	}

	response.NoContent(c)
}

// Subscribe 订阅作者
// @Summary 订阅作者
// @Description 订阅指定作者，返回作者信息及菜谱预览
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Param recipes_limit query int false "菜谱预览条数" default(5)
// @Success 201 {object} response.Response{data=dto.AuthorWithRecipes} "订阅成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己/已订阅"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id}/subscribe [post]
func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	recipesLimit := parseRecipesLimit(c)

	data, err := h.relationService.Subscribe(userID, authorID, recipesLimit)
	if err != nil {
		handleRelationError(c, err)
		return
	}

	response.Created(c, "订阅成功", data)
}

// Unsubscribe 取消订阅
// @Summary 取消订阅
// @Description 取消对指定作者的订阅
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Success 204 "取消成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在/未订阅"
// @Router /users/{id}/subscribe [delete]
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.relationService.Unsubscribe(userID, authorID); err != nil {
		handleRelationError(c, err)
		return
	}

	response.NoContent(c)
}

// ListSubscriptions 获取订阅列表
// @Summary 获取订阅列表
// @Description 获取当前用户订阅的作者列表，每位作者附菜谱预览
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param recipes_limit query int false "菜谱预览条数" default(5)
// @Success 200 {object} response.Response{data=dto.SubscriptionListData} "获取成功"
// @Router /users/subscriptions [get]
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)
	recipesLimit := parseRecipesLimit(c)

	data, err := h.relationService.ListSubscriptions(userID, page, pageSize, recipesLimit)
	if err != nil {
		logger.Error("List subscriptions failed", zap.Error(err))
		response.InternalError(c, "获取订阅列表失败")
		return
	}

	response.OK(c, "获取订阅列表成功", data)
}

func parseRecipesLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))
	return limit
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, utils.ErrInvalidImageData):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func handleRelationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfSubscription):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRelationExists):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRelationMissing):
		// 待删除的关系记录不存在视同资源缺失
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Relation operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
