package model

// User 用户模型
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Email     string `gorm:"size:150;not null;uniqueIndex;comment:电子邮箱" json:"email"`
	UserName  string `gorm:"size:150;not null;uniqueIndex;comment:用户名" json:"user_name"`
	FirstName string `gorm:"size:150;not null;comment:名" json:"first_name"`
	LastName  string `gorm:"size:150;not null;comment:姓" json:"last_name"`
	Password  string `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	Avatar    *string `gorm:"size:500;comment:用户头像" json:"avatar"`
	UserRole  string `gorm:"size:256;not null;default:'user';comment:用户角色" json:"user_role"`

	// 关联关系
	Recipes   []Recipe   `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"favorites,omitempty"`
	Carts     []Cart     `gorm:"foreignKey:UserID" json:"carts,omitempty"`
}

func (User) TableName() string {
	return "users"
}
