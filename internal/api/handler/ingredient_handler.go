package handler

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List 食材列表
// @Summary 食材列表
// @Description 分页获取食材，支持按名称前缀搜索
// @Tags 食材
// @Produce json
// @Param name query string false "名称前缀"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.IngredientListData} "获取成功"
// @Router /ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	name := c.Query("name")

	data, err := h.ingredientService.List(name, page, pageSize)
	if err != nil {
		logger.Error("List ingredients failed", zap.Error(err))
		response.InternalError(c, "获取食材列表失败")
		return
	}

	response.OK(c, "获取食材列表成功", data)
}

// Get 食材详情
// @Summary 食材详情
// @Description 获取指定食材
// @Tags 食材
// @Produce json
// @Param id path int true "食材ID"
// @Success 200 {object} response.Response{data=dto.IngredientInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "食材不存在"
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的食材ID")
		return
	}

	ingredient, err := h.ingredientService.GetByID(id)
	if err != nil {
		handleIngredientError(c, err)
		return
	}

	response.OK(c, "获取食材成功", ingredient)
}

// Create 创建食材
// @Summary 创建食材
// @Description 创建新食材（管理员），名称 + 计量单位唯一
// @Tags 食材
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IngredientCreateRequest true "食材信息"
// @Success 201 {object} response.Response{data=dto.IngredientInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "食材已存在"
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c *gin.Context) {
	var req dto.IngredientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	ingredient, err := h.ingredientService.Create(&req)
	if err != nil {
		handleIngredientError(c, err)
		return
	}

	response.Created(c, "创建食材成功", ingredient)
}

func handleIngredientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIngredientExists):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrIngredientNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Ingredient operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
