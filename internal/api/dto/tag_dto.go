package dto

// TagInfo 标签信息
type TagInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// TagCreateRequest 创建标签请求（管理员）
type TagCreateRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,min=1,max=200"`
}
