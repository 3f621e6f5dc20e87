package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List 按名称前缀查询食材（name 为空时返回全部），分页
func (r *IngredientRepository) List(name string, skip, limit int) ([]model.Ingredient, int64, error) {
	query := r.db.Model(&model.Ingredient{})
	if name != "" {
		query = query.Where("name LIKE ?", name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ingredients []model.Ingredient
	err := query.Order("name").Offset(skip).Limit(limit).Find(&ingredients).Error
	if err != nil {
		return nil, 0, err
	}
	return ingredients, total, nil
}

// GetByID 根据 ID 获取食材
func (r *IngredientRepository) GetByID(id int64) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Where("id = ?", id).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetByIDs 批量查询食材
func (r *IngredientRepository) GetByIDs(ids []int64) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return []model.Ingredient{}, nil
	}
	var ingredients []model.Ingredient
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// Create 创建食材，(name, unit) 组合唯一
func (r *IngredientRepository) Create(ingredient *model.Ingredient) error {
	return r.db.Create(ingredient).Error
}
