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

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List 标签列表
// @Summary 标签列表
// @Description 获取全部标签
// @Tags 标签
// @Produce json
// @Success 200 {object} response.Response "获取成功"
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		logger.Error("List tags failed", zap.Error(err))
		response.InternalError(c, "获取标签列表失败")
		return
	}

	response.OK(c, "获取标签列表成功", gin.H{"tags": tags})
}

// Get 标签详情
// @Summary 标签详情
// @Description 获取指定标签
// @Tags 标签
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=dto.TagInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "标签不存在"
// @Router /tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的标签ID")
		return
	}

	tag, err := h.tagService.GetByID(id)
	if err != nil {
		handleTagError(c, err)
		return
	}

	response.OK(c, "获取标签成功", tag)
}

// Create 创建标签
// @Summary 创建标签
// @Description 创建新标签（管理员）
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TagCreateRequest true "标签信息"
// @Success 201 {object} response.Response{data=dto.TagInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "标签已存在"
// @Router /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	tag, err := h.tagService.Create(&req)
	if err != nil {
		handleTagError(c, err)
		return
	}

	response.Created(c, "创建标签成功", tag)
}

func handleTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTagExists):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrTagNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Tag operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
