package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/config"
	infraKafka "sabor-go/internal/infra/kafka"
	infraMinio "sabor-go/internal/infra/minio"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"
	"sabor-go/pkg/logger"
	"sabor-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCookingTime  = errors.New("烹饪时间必须在 1 到 600 分钟之间")
	ErrInvalidAmount       = errors.New("食材数量必须在 1 到 50 之间")
	ErrDuplicateIngredient = errors.New("同一食材在菜谱中不能重复出现")
	ErrNotRecipeAuthor     = errors.New("只有作者可以修改该菜谱")
)

const (
	maxCookingTime      = 600
	maxIngredientAmount = 50
)

type RecipeService struct {
	recipeRepo      *repository.RecipeRepository
	tagRepo         *repository.TagRepository
	ingredientRepo  *repository.IngredientRepository
	relationRepo    *repository.RelationRepository
	shoppingListSvc *ShoppingListService
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	tagRepo *repository.TagRepository,
	ingredientRepo *repository.IngredientRepository,
	relationRepo *repository.RelationRepository,
	shoppingListSvc *ShoppingListService,
) *RecipeService {
	return &RecipeService{
		recipeRepo:      recipeRepo,
		tagRepo:         tagRepo,
		ingredientRepo:  ingredientRepo,
		relationRepo:    relationRepo,
		shoppingListSvc: shoppingListSvc,
	}
}

// Create 发布菜谱
// 标签与食材在校验后随菜谱一起写入，同一事务内完成
func (s *RecipeService) Create(authorID int64, req *dto.RecipeCreateRequest) (*dto.RecipeInfo, error) {
	tags, entries, err := s.validateWritePayload(req.CookingTime, req.Tags, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepo.CreateWithAssociations(recipe, tags, entries); err != nil {
		return nil, err
	}

	if req.Image != "" {
		if url, err := s.uploadImage(recipe.ID, req.Image); err != nil {
			return nil, err
		} else if err := s.recipeRepo.UpdateImageURL(recipe.ID, url); err != nil {
			return nil, err
		}
	}

	s.publishEvent(recipe.ID, infraKafka.RecipeActionUpsert)

	return s.GetByID(&authorID, recipe.ID)
}

// Update 更新菜谱，标签与食材集合整体替换
func (s *RecipeService) Update(userID, recipeID int64, req *dto.RecipeUpdateRequest) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByIDBare(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotRecipeAuthor
	}

	tags, entries, err := s.validateWritePayload(req.CookingTime, req.Tags, req.Ingredients)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"text":         req.Text,
		"cooking_time": req.CookingTime,
	}
	if err := s.recipeRepo.UpdateWithAssociations(recipeID, updates, tags, entries); err != nil {
		return nil, err
	}

	// 食材用量变动影响他人购物清单的缓存文本
	s.shoppingListSvc.InvalidateForRecipe(recipeID)

	if req.Image != "" {
		if url, err := s.uploadImage(recipeID, req.Image); err != nil {
			return nil, err
		} else if err := s.recipeRepo.UpdateImageURL(recipeID, url); err != nil {
			return nil, err
		}
	}

	s.publishEvent(recipeID, infraKafka.RecipeActionUpsert)

	return s.GetByID(&userID, recipeID)
}

// Delete 删除菜谱（作者本人或管理员）
func (s *RecipeService) Delete(userID int64, isAdmin bool, recipeID int64) error {
	recipe, err := s.recipeRepo.GetByIDBare(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != userID && !isAdmin {
		return ErrNotRecipeAuthor
	}

	// 级联删除会清掉购物车记录，先按当前购物车失效相关用户的缓存
	s.shoppingListSvc.InvalidateForRecipe(recipeID)

	if err := s.recipeRepo.Delete(recipeID); err != nil {
		return err
	}

	s.publishEvent(recipeID, infraKafka.RecipeActionDelete)
	return nil
}

// GetByID 获取菜谱详情
// viewerID 为 nil 时收藏/购物车状态均为 false
func (s *RecipeService) GetByID(viewerID *int64, recipeID int64) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	info := s.toRecipeInfo(recipe)
	if viewerID != nil {
		favorited, err := s.relationRepo.Exists(model.RelationFavorite, *viewerID, recipeID)
		if err != nil {
			return nil, err
		}
		inCart, err := s.relationRepo.Exists(model.RelationCart, *viewerID, recipeID)
		if err != nil {
			return nil, err
		}
		info.IsFavorited = favorited
		info.IsInShoppingCart = inCart
	}
	return info, nil
}

// RecipeListFilter 菜谱列表筛选参数
type RecipeListFilter struct {
	AuthorID         *int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// List 菜谱列表（分页 + 筛选）
// 收藏/购物车筛选仅对已登录用户生效
func (s *RecipeService) List(viewerID *int64, page, pageSize int, filter RecipeListFilter) (*dto.RecipeListData, error) {
	repoFilter := repository.RecipeFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
	}
	if viewerID != nil {
		if filter.IsFavorited {
			repoFilter.FavoritedBy = viewerID
		}
		if filter.IsInShoppingCart {
			repoFilter.InCartOf = viewerID
		}
	}

	skip := (page - 1) * pageSize
	recipes, total, err := s.recipeRepo.List(skip, pageSize, repoFilter)
	if err != nil {
		return nil, err
	}

	items, err := s.annotateRecipes(viewerID, recipes)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.RecipeListData{
		Recipes:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// validateWritePayload 校验写入参数并解析标签与食材
func (s *RecipeService) validateWritePayload(cookingTime int, tagIDs []int64, inputs []dto.RecipeIngredientInput) ([]model.Tag, []model.RecipeIngredient, error) {
	if cookingTime < 1 || cookingTime > maxCookingTime {
		return nil, nil, ErrInvalidCookingTime
	}

	seen := make(map[int64]struct{}, len(inputs))
	ingredientIDs := make([]int64, 0, len(inputs))
	for _, input := range inputs {
		if input.Amount < 1 || input.Amount > maxIngredientAmount {
			return nil, nil, ErrInvalidAmount
		}
		if _, dup := seen[input.ID]; dup {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[input.ID] = struct{}{}
		ingredientIDs = append(ingredientIDs, input.ID)
	}

	tags, err := s.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return nil, nil, ErrTagNotFound
	}

	ingredients, err := s.ingredientRepo.GetByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, ErrIngredientNotFound
	}

	entries := make([]model.RecipeIngredient, 0, len(inputs))
	for _, input := range inputs {
		entries = append(entries, model.RecipeIngredient{
			IngredientID: input.ID,
			Amount:       input.Amount,
		})
	}
	return tags, entries, nil
}

// annotateRecipes 批量标注收藏与购物车状态并转换为 DTO
func (s *RecipeService) annotateRecipes(viewerID *int64, recipes []model.Recipe) ([]dto.RecipeInfo, error) {
	favorited := map[int64]bool{}
	inCart := map[int64]bool{}

	if viewerID != nil && len(recipes) > 0 {
		ids := make([]int64, 0, len(recipes))
		for i := range recipes {
			ids = append(ids, recipes[i].ID)
		}

		var err error
		favorited, err = s.relationRepo.BatchCheck(model.RelationFavorite, *viewerID, ids)
		if err != nil {
			return nil, err
		}
		inCart, err = s.relationRepo.BatchCheck(model.RelationCart, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.RecipeInfo, 0, len(recipes))
	for i := range recipes {
		info := s.toRecipeInfo(&recipes[i])
		info.IsFavorited = favorited[recipes[i].ID]
		info.IsInShoppingCart = inCart[recipes[i].ID]
		items = append(items, *info)
	}
	return items, nil
}

func (s *RecipeService) toRecipeInfo(r *model.Recipe) *dto.RecipeInfo {
	tags := make([]dto.TagInfo, 0, len(r.Tags))
	for i := range r.Tags {
		tags = append(tags, *toTagInfo(&r.Tags[i]))
	}

	ingredients := make([]dto.RecipeIngredientInfo, 0, len(r.RecipeIngredients))
	for i := range r.RecipeIngredients {
		entry := &r.RecipeIngredients[i]
		ingredients = append(ingredients, dto.RecipeIngredientInfo{
			ID:              entry.IngredientID,
			Name:            entry.Ingredient.Name,
			MeasurementUnit: entry.Ingredient.MeasurementUnit,
			Amount:          entry.Amount,
		})
	}

	return &dto.RecipeInfo{
		ID:          r.ID,
		Author:      *toUserInfo(&r.Author),
		Name:        r.Name,
		Image:       r.ImageURL,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
	}
}

// uploadImage 解码 base64 图片并上传到 MinIO，返回公开访问 URL
func (s *RecipeService) uploadImage(recipeID int64, data string) (string, error) {
	contentType, ext, payload, err := utils.DecodeBase64Image(data)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectName := fmt.Sprintf("recipes/%d/image%s", recipeID, ext)
	if _, err := infraMinio.UploadFile(ctx, infraMinio.RecipeImageBucket, objectName,
		bytes.NewReader(payload), int64(len(payload)), contentType); err != nil {
		return "", err
	}

	minioCfg := config.GetMinIO()
	return infraMinio.GetPublicURL(minioCfg.Endpoint, minioCfg.UseSSL, infraMinio.RecipeImageBucket, objectName), nil
}

// publishEvent 发送菜谱变更事件（搜索索引异步同步），失败仅记录日志
func (s *RecipeService) publishEvent(recipeID int64, action string) {
	topic := config.GetKafka().Topics["recipe_events"]
	if topic == "" {
		topic = "recipe-events"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := &infraKafka.RecipeEvent{RecipeID: recipeID, Action: action}
	if err := infraKafka.SendRecipeEvent(ctx, topic, event); err != nil {
		logger.Warn("failed to publish recipe event",
			zap.Int64("recipe_id", recipeID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
