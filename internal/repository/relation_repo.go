package repository

import (
	"fmt"

	"sabor-go/internal/model"

	"gorm.io/gorm"
)

// RelationRepository 统一管理三种二元关系表（收藏/购物车/订阅）
// 同一套 Add/Delete/Exists 语义，按 RelationKind 路由到具体表
type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// table 返回关系种类对应的模型与 (actor, target) 列名
func (r *RelationRepository) table(kind model.RelationKind) (interface{}, string, string) {
	switch kind {
	case model.RelationFavorite:
		return &model.Favorite{}, "user_id", "recipe_id"
	case model.RelationCart:
		return &model.Cart{}, "user_id", "recipe_id"
	case model.RelationSubscription:
		return &model.Subscription{}, "follower_id", "author_id"
	default:
		panic(fmt.Sprintf("unknown relation kind: %s", kind))
	}
}

// Create 创建关系记录
// 唯一索引冲突时返回 gorm.ErrDuplicatedKey（TranslateError），由上层翻译
func (r *RelationRepository) Create(kind model.RelationKind, actorID, targetID int64) error {
	switch kind {
	case model.RelationFavorite:
		return r.db.Create(&model.Favorite{UserID: actorID, RecipeID: targetID}).Error
	case model.RelationCart:
		return r.db.Create(&model.Cart{UserID: actorID, RecipeID: targetID}).Error
	case model.RelationSubscription:
		return r.db.Create(&model.Subscription{FollowerID: actorID, AuthorID: targetID}).Error
	default:
		return fmt.Errorf("unknown relation kind: %s", kind)
	}
}

// Delete 删除关系记录，返回是否确实删除了一行
func (r *RelationRepository) Delete(kind model.RelationKind, actorID, targetID int64) (bool, error) {
	m, actorCol, targetCol := r.table(kind)
	result := r.db.Where(fmt.Sprintf("%s = ? AND %s = ?", actorCol, targetCol), actorID, targetID).
		Delete(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查关系是否存在
func (r *RelationRepository) Exists(kind model.RelationKind, actorID, targetID int64) (bool, error) {
	m, actorCol, targetCol := r.table(kind)
	var count int64
	err := r.db.Model(m).
		Where(fmt.Sprintf("%s = ? AND %s = ?", actorCol, targetCol), actorID, targetID).
		Count(&count).Error
	return count > 0, err
}

// BatchCheck 批量查询关系状态，用于列表序列化时计算标记位
func (r *RelationRepository) BatchCheck(kind model.RelationKind, actorID int64, targetIDs []int64) (map[int64]bool, error) {
	if len(targetIDs) == 0 {
		return map[int64]bool{}, nil
	}

	m, actorCol, targetCol := r.table(kind)

	var matched []int64
	err := r.db.Model(m).
		Where(fmt.Sprintf("%s = ? AND %s IN ?", actorCol, targetCol), actorID, targetIDs).
		Pluck(targetCol, &matched).Error
	if err != nil {
		return nil, err
	}

	matchedSet := make(map[int64]bool, len(matched))
	for _, id := range matched {
		matchedSet[id] = true
	}

	result := make(map[int64]bool, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = matchedSet[id]
	}
	return result, nil
}

// ListTargetIDs 获取某用户在指定关系下的目标 ID 列表（分页，按时间倒序）
func (r *RelationRepository) ListTargetIDs(kind model.RelationKind, actorID int64, skip, limit int) ([]int64, error) {
	m, actorCol, targetCol := r.table(kind)
	var ids []int64
	err := r.db.Model(m).
		Where(fmt.Sprintf("%s = ?", actorCol), actorID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Pluck(targetCol, &ids).Error
	return ids, err
}

// CountByActor 统计某用户在指定关系下的记录数
func (r *RelationRepository) CountByActor(kind model.RelationKind, actorID int64) (int64, error) {
	m, actorCol, _ := r.table(kind)
	var count int64
	err := r.db.Model(m).Where(fmt.Sprintf("%s = ?", actorCol), actorID).Count(&count).Error
	return count, err
}
