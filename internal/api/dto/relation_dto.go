package dto

// AuthorWithRecipes 订阅成功/订阅列表返回的作者信息（附菜谱预览）
type AuthorWithRecipes struct {
	UserInfo
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// SubscriptionListData 订阅列表响应数据
type SubscriptionListData struct {
	Authors    []AuthorWithRecipes `json:"authors"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int64               `json:"total_pages"`
}
