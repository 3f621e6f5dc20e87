package model

import "time"

// Recipe 菜谱模型
type Recipe struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:菜谱标识" json:"id"`
	AuthorID    int64     `gorm:"not null;index:idx_recipes_author_id;comment:菜谱作者ID" json:"author_id"`
	Name        string    `gorm:"size:200;not null;comment:菜谱名称" json:"name"`
	ImageURL    string    `gorm:"size:500;comment:菜谱图片地址" json:"image_url"`
	Text        string    `gorm:"type:text;not null;comment:菜谱描述" json:"text"`
	CookingTime int       `gorm:"not null;comment:烹饪时间（分钟）" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_recipes_created_at;comment:发布时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Author            User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags              []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 菜谱-食材关联模型，记录每个菜谱中食材的用量
type RecipeIngredient struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:关联记录ID" json:"id"`
	RecipeID     int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;index:idx_recipe_ingredients_recipe_id;comment:菜谱ID" json:"recipe_id"`
	IngredientID int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;comment:食材ID" json:"ingredient_id"`
	Amount       int   `gorm:"not null;comment:食材数量" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
