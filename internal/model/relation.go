package model

import "time"

// RelationKind 关系种类，favorite/cart/subscription 共用一套 toggle 语义
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationCart         RelationKind = "cart"
	RelationSubscription RelationKind = "subscription"
)

// TargetsUser 判断该关系的目标是否为用户（订阅），否则为菜谱
func (k RelationKind) TargetsUser() bool {
	return k == RelationSubscription
}

// Favorite 收藏记录模型
type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:收藏记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_recipe_favorite;index:idx_favorites_user_id;comment:收藏用户ID" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:uq_user_recipe_favorite;index:idx_favorites_recipe_id;comment:被收藏菜谱ID" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:收藏时间" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Cart 购物车记录模型，结构与 Favorite 对称
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:购物车记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_carts_user_id;comment:用户ID" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_carts_recipe_id;comment:菜谱ID" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:加入时间" json:"created_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// Subscription 用户订阅关系模型，follower 关注 author
type Subscription struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	FollowerID int64     `gorm:"not null;uniqueIndex:uq_follower_author;index:idx_subscriptions_follower_id;comment:订阅者ID" json:"follower_id"`
	AuthorID   int64     `gorm:"not null;uniqueIndex:uq_follower_author;index:idx_subscriptions_author_id;comment:被订阅作者ID" json:"author_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
