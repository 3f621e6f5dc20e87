package dto

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Avatar       *string `json:"avatar"`
	UserRole     string  `json:"user_role"`
	IsSubscribed bool    `json:"is_subscribed"`
}

// UserListData 用户列表响应数据
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}

// SetAvatarRequest 设置头像请求（base64 编码图片）
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// AvatarData 头像设置结果
type AvatarData struct {
	Avatar string `json:"avatar"`
}
