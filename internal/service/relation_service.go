package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound   = errors.New("菜谱不存在")
	ErrSelfSubscription = errors.New("不能订阅自己")
	ErrRelationExists   = errors.New("该关系已存在")
	ErrRelationMissing  = errors.New("该关系不存在")
	ErrUnknownRelation  = errors.New("未知的关系类型")
)

// DefaultRecipesLimit 订阅响应中作者菜谱预览的默认条数
const DefaultRecipesLimit = 5

type RelationService struct {
	relationRepo    *repository.RelationRepository
	userRepo        *repository.UserRepository
	recipeRepo      *repository.RecipeRepository
	shoppingListSvc *ShoppingListService
}

func NewRelationService(
	relationRepo *repository.RelationRepository,
	userRepo *repository.UserRepository,
	recipeRepo *repository.RecipeRepository,
	shoppingListSvc *ShoppingListService,
) *RelationService {
	return &RelationService{
		relationRepo:    relationRepo,
		userRepo:        userRepo,
		recipeRepo:      recipeRepo,
		shoppingListSvc: shoppingListSvc,
	}
}

// AddRecipeRelation 收藏菜谱或加入购物车
// 重复添加返回 ErrRelationExists，不产生第二条记录
func (s *RelationService) AddRecipeRelation(kind model.RelationKind, userID, recipeID int64) (*dto.RecipePreview, error) {
	if kind.TargetsUser() {
		return nil, ErrUnknownRelation
	}

	recipe, err := s.recipeRepo.GetByIDBare(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.relationRepo.Exists(kind, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRelationExists
	}

	if err := s.relationRepo.Create(kind, userID, recipeID); err != nil {
		return nil, translateRelationCreateError(err)
	}

	if kind == model.RelationCart {
		s.shoppingListSvc.InvalidateCache(userID)
	}

	return toRecipePreview(recipe), nil
}

// RemoveRecipeRelation 取消收藏或移出购物车
// 关系不存在返回 ErrRelationMissing
func (s *RelationService) RemoveRecipeRelation(kind model.RelationKind, userID, recipeID int64) error {
	if kind.TargetsUser() {
		return ErrUnknownRelation
	}

	if _, err := s.recipeRepo.GetByIDBare(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.relationRepo.Delete(kind, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRelationMissing
	}

	if kind == model.RelationCart {
		s.shoppingListSvc.InvalidateCache(userID)
	}
	return nil
}

// Subscribe 订阅作者，返回作者信息及其菜谱预览
func (s *RelationService) Subscribe(followerID, authorID int64, recipesLimit int) (*dto.AuthorWithRecipes, error) {
	if followerID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.relationRepo.Exists(model.RelationSubscription, followerID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRelationExists
	}

	if err := s.relationRepo.Create(model.RelationSubscription, followerID, authorID); err != nil {
		return nil, translateRelationCreateError(err)
	}

	return s.buildAuthorWithRecipes(author, true, recipesLimit)
}

// Unsubscribe 取消订阅
func (s *RelationService) Unsubscribe(followerID, authorID int64) error {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	deleted, err := s.relationRepo.Delete(model.RelationSubscription, followerID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRelationMissing
	}
	return nil
}

// ListSubscriptions 获取订阅列表，每位作者附菜谱预览
func (s *RelationService) ListSubscriptions(followerID int64, page, pageSize, recipesLimit int) (*dto.SubscriptionListData, error) {
	skip := (page - 1) * pageSize
	authorIDs, err := s.relationRepo.ListTargetIDs(model.RelationSubscription, followerID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.relationRepo.CountByActor(model.RelationSubscription, followerID)
	if err != nil {
		return nil, err
	}

	authors, err := s.userRepo.GetByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	authorMap := make(map[int64]*model.User, len(authors))
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	// 按订阅时间倒序输出
	items := make([]dto.AuthorWithRecipes, 0, len(authorIDs))
	for _, id := range authorIDs {
		author, ok := authorMap[id]
		if !ok {
			continue
		}
		entry, err := s.buildAuthorWithRecipes(author, true, recipesLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, *entry)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SubscriptionListData{
		Authors:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// translateRelationCreateError 唯一索引兜底
// 并发下绕过存在性检查的重复插入同样映射为已存在
func translateRelationCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRelationExists
	}
	return err
}

// CheckRecipeRelations 批量查询收藏/购物车状态（菜谱列表标注用）
func (s *RelationService) CheckRecipeRelations(kind model.RelationKind, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return s.relationRepo.BatchCheck(kind, userID, recipeIDs)
}

func (s *RelationService) buildAuthorWithRecipes(author *model.User, subscribed bool, recipesLimit int) (*dto.AuthorWithRecipes, error) {
	if recipesLimit <= 0 {
		recipesLimit = DefaultRecipesLimit
	}

	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	previews := make([]dto.RecipePreview, 0, len(recipes))
	for i := range recipes {
		previews = append(previews, *toRecipePreview(&recipes[i]))
	}

	info := toUserInfo(author)
	info.IsSubscribed = subscribed
	return &dto.AuthorWithRecipes{
		UserInfo:     *info,
		Recipes:      previews,
		RecipesCount: count,
	}, nil
}

func toRecipePreview(r *model.Recipe) *dto.RecipePreview {
	return &dto.RecipePreview{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
