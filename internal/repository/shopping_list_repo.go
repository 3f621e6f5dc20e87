package repository

import (
	"gorm.io/gorm"
)

// ShoppingListItem 购物清单聚合行：同名同单位的食材跨菜谱求和
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Aggregate 聚合某用户购物车内所有菜谱的食材用量
// 按（名称、计量单位）分组求和，按名称排序，空购物车返回空列表
func (r *ShoppingListRepository) Aggregate(userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.Raw(`
		SELECT i.name AS name,
		       i.measurement_unit AS measurement_unit,
		       SUM(ri.amount) AS total
		FROM carts c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = ?
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit
	`, userID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ShoppingListItem{}
	}
	return items, nil
}

// UserIDsWithRecipe 查询购物车中含某菜谱的所有用户
func (r *ShoppingListRepository) UserIDsWithRecipe(recipeID int64) ([]int64, error) {
	var userIDs []int64
	err := r.db.Table("carts").
		Where("recipe_id = ?", recipeID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
