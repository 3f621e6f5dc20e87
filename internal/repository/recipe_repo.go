package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// GetByID 根据 ID 获取菜谱（含作者、标签、食材明细）
func (r *RecipeRepository) GetByID(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDBare 根据 ID 获取菜谱（不加载关联，存在性/预览用）
func (r *RecipeRepository) GetByIDBare(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDAndAuthor 根据菜谱 ID + 作者 ID 查询（权限校验用）
func (r *RecipeRepository) GetByIDAndAuthor(recipeID, authorID int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ? AND author_id = ?", recipeID, authorID).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateWithAssociations 创建菜谱及其标签/食材关联，单事务完成
func (r *RecipeRepository) CreateWithAssociations(recipe *model.Recipe, tags []model.Tag, entries []model.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		for i := range entries {
			entries[i].RecipeID = recipe.ID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateWithAssociations 更新菜谱字段并整体替换标签/食材集合
// 旧关联先删后插，全部在一个事务内，读者不会看到半套集合
func (r *RecipeRepository) UpdateWithAssociations(recipeID int64, updates map[string]interface{}, tags []model.Tag, entries []model.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		recipe := model.Recipe{ID: recipeID}
		if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].RecipeID = recipeID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete 删除菜谱，同事务内清理食材关联、标签关联、收藏与购物车记录
func (r *RecipeRepository) Delete(recipeID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Cart{}).Error; err != nil {
			return err
		}

		recipe := model.Recipe{ID: recipeID}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&model.Recipe{}, recipeID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// RecipeFilter 菜谱列表筛选条件
type RecipeFilter struct {
	AuthorID    *int64
	TagSlugs    []string
	FavoritedBy *int64
	InCartOf    *int64
}

// List 菜谱列表查询（分页 + 筛选，按发布时间倒序）
func (r *RecipeRepository) List(skip, limit int, filter RecipeFilter) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.FavoritedBy != nil {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("favorites").Select("recipe_id").Where("user_id = ?", *filter.FavoritedBy))
	}
	if filter.InCartOf != nil {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("carts").Select("recipe_id").Where("user_id = ?", *filter.InCartOf))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListByAuthor 获取某作者的菜谱（订阅列表预览用，限制条数）
func (r *RecipeRepository) ListByAuthor(authorID int64, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

// CountByAuthor 统计某作者的菜谱数
func (r *RecipeRepository) CountByAuthor(authorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetByIDsWithAuthor 批量查询菜谱（含作者），搜索结果回表用
func (r *RecipeRepository) GetByIDsWithAuthor(ids []int64) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return []model.Recipe{}, nil
	}
	var recipes []model.Recipe
	err := r.db.Preload("Author").Preload("Tags").Where("id IN ?", ids).Find(&recipes).Error
	return recipes, err
}

// SearchByText 数据库内全文降级搜索（名称与描述模糊匹配）
func (r *RecipeRepository) SearchByText(q string, skip, limit int) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{}).
		Where("name ILIKE ? OR text ILIKE ?", "%"+q+"%", "%"+q+"%")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := query.Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// UpdateImageURL 更新菜谱图片地址（图片上传完成后回写）
func (r *RecipeRepository) UpdateImageURL(recipeID int64, imageURL string) error {
	return r.db.Model(&model.Recipe{}).Where("id = ?", recipeID).Update("image_url", imageURL).Error
}
