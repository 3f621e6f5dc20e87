package dto

// IngredientInfo 食材信息
type IngredientInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientCreateRequest 创建食材请求（管理员）
type IngredientCreateRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,min=1,max=200"`
}

// IngredientListData 食材列表响应数据
type IngredientListData struct {
	Ingredients []IngredientInfo `json:"ingredients"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int64            `json:"total_pages"`
}
