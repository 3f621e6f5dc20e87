package dto

import "time"

// RecipeIngredientInput 菜谱食材条目（创建/更新请求用）
type RecipeIngredientInput struct {
	ID     int64 `json:"id" binding:"required,min=1"`
	Amount int   `json:"amount" binding:"required,min=1,max=50"`
}

// RecipeCreateRequest 创建菜谱请求
// Image 为 data URI 形式的 base64 编码图片，可为空
type RecipeCreateRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=200"`
	Text        string                  `json:"text" binding:"required,min=1"`
	CookingTime int                     `json:"cooking_time" binding:"required,min=1,max=600"`
	Image       string                  `json:"image" binding:"omitempty"`
	Tags        []int64                 `json:"tags" binding:"required,min=1"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required,min=1,dive"`
}

// RecipeUpdateRequest 更新菜谱请求
// 标签与食材集合整体替换，不做增量合并
type RecipeUpdateRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=200"`
	Text        string                  `json:"text" binding:"required,min=1"`
	CookingTime int                     `json:"cooking_time" binding:"required,min=1,max=600"`
	Image       string                  `json:"image" binding:"omitempty"`
	Tags        []int64                 `json:"tags" binding:"required,min=1"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required,min=1,dive"`
}

// RecipeIngredientInfo 菜谱详情中的食材条目
type RecipeIngredientInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeInfo 菜谱详情
type RecipeInfo struct {
	ID               int64                  `json:"id"`
	Author           UserInfo               `json:"author"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	Tags             []TagInfo              `json:"tags"`
	Ingredients      []RecipeIngredientInfo `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	CreatedAt        time.Time              `json:"created_at"`
}

// RecipePreview 菜谱简要信息（收藏/购物车/订阅列表用）
type RecipePreview struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListData 菜谱列表响应数据
type RecipeListData struct {
	Recipes    []RecipeInfo `json:"recipes"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
