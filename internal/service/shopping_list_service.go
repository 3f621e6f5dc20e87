package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sabor-go/internal/repository"
	"sabor-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 购物清单文本缓存，购物车变动时失效
const (
	shoppingListKeyFmt = "shopping_list:%d"
	shoppingListTTL    = 10 * time.Minute
)

type ShoppingListService struct {
	shoppingListRepo *repository.ShoppingListRepository
	rdb              *redis.Client
}

// NewShoppingListService 创建购物清单服务
// rdb 可为 nil，此时跳过缓存直接查库
func NewShoppingListService(shoppingListRepo *repository.ShoppingListRepository, rdb *redis.Client) *ShoppingListService {
	return &ShoppingListService{shoppingListRepo: shoppingListRepo, rdb: rdb}
}

// Build 聚合用户购物车内的食材清单
func (s *ShoppingListService) Build(userID int64) ([]repository.ShoppingListItem, error) {
	return s.shoppingListRepo.Aggregate(userID)
}

// Render 生成购物清单文本
// 每行格式为 "名称 (单位) - 总量"，行间以换行符连接，空购物车返回空串
func (s *ShoppingListService) Render(items []repository.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) - %d", item.Name, item.MeasurementUnit, item.Total))
	}
	return strings.Join(lines, "\n")
}

// Download 获取购物清单下载文本，优先读缓存
func (s *ShoppingListService) Download(ctx context.Context, userID int64) (string, error) {
	key := fmt.Sprintf(shoppingListKeyFmt, userID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			logger.Warn("shopping list cache read failed", zap.Error(err))
		}
	}

	items, err := s.Build(userID)
	if err != nil {
		return "", err
	}
	text := s.Render(items)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, text, shoppingListTTL).Err(); err != nil {
			logger.Warn("shopping list cache write failed", zap.Error(err))
		}
	}
	return text, nil
}

// InvalidateCache 购物车变动后清除缓存文本
func (s *ShoppingListService) InvalidateCache(userID int64) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(shoppingListKeyFmt, userID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("shopping list cache invalidate failed", zap.Error(err), zap.Int64("user_id", userID))
	}
}

// InvalidateForRecipe 菜谱内容变动后，清除所有购物车包含该菜谱的用户的缓存文本
func (s *ShoppingListService) InvalidateForRecipe(recipeID int64) {
	if s.rdb == nil {
		return
	}

	userIDs, err := s.shoppingListRepo.UserIDsWithRecipe(recipeID)
	if err != nil {
		logger.Warn("shopping list cache invalidate lookup failed",
			zap.Error(err), zap.Int64("recipe_id", recipeID))
		return
	}
	for _, userID := range userIDs {
		s.InvalidateCache(userID)
	}
}
