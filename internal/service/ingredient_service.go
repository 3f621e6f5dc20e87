package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("食材不存在")
	ErrIngredientExists   = errors.New("该食材已存在")
)

type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
}

func NewIngredientService(ingredientRepo *repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// List 食材列表，支持名称前缀搜索
func (s *IngredientService) List(name string, page, pageSize int) (*dto.IngredientListData, error) {
	skip := (page - 1) * pageSize
	ingredients, total, err := s.ingredientRepo.List(name, skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.IngredientInfo, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, *toIngredientInfo(&ingredients[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.IngredientListData{
		Ingredients: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}, nil
}

// GetByID 获取食材详情
func (s *IngredientService) GetByID(id int64) (*dto.IngredientInfo, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return toIngredientInfo(ingredient), nil
}

// Create 创建食材（管理员），名称 + 计量单位唯一
func (s *IngredientService) Create(req *dto.IngredientCreateRequest) (*dto.IngredientInfo, error) {
	ingredient := &model.Ingredient{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return toIngredientInfo(ingredient), nil
}

func toIngredientInfo(ingredient *model.Ingredient) *dto.IngredientInfo {
	return &dto.IngredientInfo{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
