package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("标签不存在")
	ErrTagExists   = errors.New("标签已存在")
)

type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List 获取全部标签（数量少，不分页）
func (s *TagService) List() ([]dto.TagInfo, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, err
	}

	items := make([]dto.TagInfo, 0, len(tags))
	for i := range tags {
		items = append(items, *toTagInfo(&tags[i]))
	}
	return items, nil
}

// GetByID 获取标签详情
func (s *TagService) GetByID(id int64) (*dto.TagInfo, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return toTagInfo(tag), nil
}

// Create 创建标签（管理员）
func (s *TagService) Create(req *dto.TagCreateRequest) (*dto.TagInfo, error) {
	tag := &model.Tag{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return toTagInfo(tag), nil
}

func toTagInfo(tag *model.Tag) *dto.TagInfo {
	return &dto.TagInfo{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}
