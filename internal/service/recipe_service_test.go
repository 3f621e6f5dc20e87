package service

import (
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecipeService(db *gorm.DB) *RecipeService {
	return NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewTagRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewRelationRepository(db),
		NewShoppingListService(repository.NewShoppingListRepository(db), nil),
	)
}

func validCreateRequest(tagID, ingredientID int64) *dto.RecipeCreateRequest {
	return &dto.RecipeCreateRequest{
		Name:        "红烧肉",
		Text:        "先焯水，再炖煮",
		CookingTime: 90,
		Tags:        []int64{tagID},
		Ingredients: []dto.RecipeIngredientInput{
			{ID: ingredientID, Amount: 40},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")
	salt := createTestIngredient(t, db, "盐", "克")

	req := validCreateRequest(tag.ID, pork.ID)
	req.Ingredients = append(req.Ingredients, dto.RecipeIngredientInput{ID: salt.ID, Amount: 5})

	info, err := svc.Create(author.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "红烧肉", info.Name)
	assert.Equal(t, author.ID, info.Author.ID)
	require.Len(t, info.Tags, 1)
	assert.Equal(t, "dinner", info.Tags[0].Slug)
	require.Len(t, info.Ingredients, 2)
	assert.Equal(t, 40, info.Ingredients[0].Amount)
}

func TestCreateRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	t.Run("烹饪时间必须为正", func(t *testing.T) {
		req := validCreateRequest(tag.ID, pork.ID)
		req.CookingTime = 0
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrInvalidCookingTime)
	})

	t.Run("烹饪时间不超过600分钟", func(t *testing.T) {
		req := validCreateRequest(tag.ID, pork.ID)
		req.CookingTime = 601
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrInvalidCookingTime)
	})

	t.Run("食材数量必须为正", func(t *testing.T) {
		req := validCreateRequest(tag.ID, pork.ID)
		req.Ingredients[0].Amount = 0
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("食材数量不超过50", func(t *testing.T) {
		req := validCreateRequest(tag.ID, pork.ID)
		req.Ingredients[0].Amount = 51
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("食材不能重复", func(t *testing.T) {
		req := validCreateRequest(tag.ID, pork.ID)
		req.Ingredients = append(req.Ingredients, dto.RecipeIngredientInput{ID: pork.ID, Amount: 20})
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrDuplicateIngredient)
	})

	t.Run("标签必须存在", func(t *testing.T) {
		req := validCreateRequest(9999, pork.ID)
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrTagNotFound)
	})

	t.Run("食材必须存在", func(t *testing.T) {
		req := validCreateRequest(tag.ID, 9999)
		_, err := svc.Create(author.ID, req)
		assert.ErrorIs(t, err, ErrIngredientNotFound)
	})

	// 校验失败不应留下任何菜谱
	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateRecipeReplacesAssociations(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	dinner := createTestTag(t, db, "晚餐", "dinner")
	lunch := createTestTag(t, db, "午餐", "lunch")
	pork := createTestIngredient(t, db, "五花肉", "克")
	beef := createTestIngredient(t, db, "牛肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(dinner.ID, pork.ID))
	require.NoError(t, err)

	updateReq := &dto.RecipeUpdateRequest{
		Name:        "红烧牛肉",
		Text:        "换用牛肉炖煮",
		CookingTime: 120,
		Tags:        []int64{lunch.ID},
		Ingredients: []dto.RecipeIngredientInput{
			{ID: beef.ID, Amount: 30},
		},
	}

	updated, err := svc.Update(author.ID, created.ID, updateReq)
	require.NoError(t, err)
	assert.Equal(t, "红烧牛肉", updated.Name)
	assert.Equal(t, 120, updated.CookingTime)

	// 旧集合被整体替换，不保留残留
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "lunch", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "牛肉", updated.Ingredients[0].Name)

	var entryCount int64
	require.NoError(t, db.Model(&model.RecipeIngredient{}).
		Where("recipe_id = ?", created.ID).Count(&entryCount).Error)
	assert.Equal(t, int64(1), entryCount)
}

func TestUpdateRecipeValidationLeavesRecipeIntact(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(tag.ID, pork.ID))
	require.NoError(t, err)

	badReq := &dto.RecipeUpdateRequest{
		Name:        "坏更新",
		Text:        "坏更新",
		CookingTime: 0,
		Tags:        []int64{tag.ID},
		Ingredients: []dto.RecipeIngredientInput{{ID: pork.ID, Amount: 20}},
	}
	_, err = svc.Update(author.ID, created.ID, badReq)
	assert.ErrorIs(t, err, ErrInvalidCookingTime)

	// 校验失败时菜谱保持原样
	current, err := svc.GetByID(nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "红烧肉", current.Name)
	require.Len(t, current.Ingredients, 1)
	assert.Equal(t, 40, current.Ingredients[0].Amount)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	other := createTestUser(t, db, "ana@example.com", "ana")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(tag.ID, pork.ID))
	require.NoError(t, err)

	updateReq := &dto.RecipeUpdateRequest{
		Name:        "别人的修改",
		Text:        "不应成功",
		CookingTime: 10,
		Tags:        []int64{tag.ID},
		Ingredients: []dto.RecipeIngredientInput{{ID: pork.ID, Amount: 20}},
	}
	_, err = svc.Update(other.ID, created.ID, updateReq)
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)
	relationSvc := newRelationService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	fan := createTestUser(t, db, "ana@example.com", "ana")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(tag.ID, pork.ID))
	require.NoError(t, err)

	_, err = relationSvc.AddRecipeRelation(model.RelationFavorite, fan.ID, created.ID)
	require.NoError(t, err)
	_, err = relationSvc.AddRecipeRelation(model.RelationCart, fan.ID, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(author.ID, false, created.ID))

	_, err = svc.GetByID(nil, created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	// 收藏、购物车与食材关联一并清理
	for _, m := range []interface{}{&model.Favorite{}, &model.Cart{}, &model.RecipeIngredient{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}

func TestDeleteRecipePermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	other := createTestUser(t, db, "ana@example.com", "ana")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(tag.ID, pork.ID))
	require.NoError(t, err)

	err = svc.Delete(other.ID, false, created.ID)
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)

	// 管理员可删除他人菜谱
	require.NoError(t, svc.Delete(other.ID, true, created.ID))
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)
	relationSvc := newRelationService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	other := createTestUser(t, db, "carla@example.com", "carla")
	viewer := createTestUser(t, db, "ana@example.com", "ana")
	dinner := createTestTag(t, db, "晚餐", "dinner")
	lunch := createTestTag(t, db, "午餐", "lunch")
	pork := createTestIngredient(t, db, "五花肉", "克")

	first, err := svc.Create(author.ID, validCreateRequest(dinner.ID, pork.ID))
	require.NoError(t, err)

	secondReq := validCreateRequest(lunch.ID, pork.ID)
	secondReq.Name = "午餐便当"
	second, err := svc.Create(other.ID, secondReq)
	require.NoError(t, err)

	_, err = relationSvc.AddRecipeRelation(model.RelationFavorite, viewer.ID, first.ID)
	require.NoError(t, err)
	_, err = relationSvc.AddRecipeRelation(model.RelationCart, viewer.ID, second.ID)
	require.NoError(t, err)

	t.Run("按作者筛选", func(t *testing.T) {
		data, err := svc.List(nil, 1, 20, RecipeListFilter{AuthorID: &author.ID})
		require.NoError(t, err)
		require.Len(t, data.Recipes, 1)
		assert.Equal(t, first.ID, data.Recipes[0].ID)
	})

	t.Run("按标签筛选", func(t *testing.T) {
		data, err := svc.List(nil, 1, 20, RecipeListFilter{TagSlugs: []string{"lunch"}})
		require.NoError(t, err)
		require.Len(t, data.Recipes, 1)
		assert.Equal(t, second.ID, data.Recipes[0].ID)
	})

	t.Run("按收藏筛选", func(t *testing.T) {
		data, err := svc.List(&viewer.ID, 1, 20, RecipeListFilter{IsFavorited: true})
		require.NoError(t, err)
		require.Len(t, data.Recipes, 1)
		assert.Equal(t, first.ID, data.Recipes[0].ID)
		assert.True(t, data.Recipes[0].IsFavorited)
	})

	t.Run("按购物车筛选", func(t *testing.T) {
		data, err := svc.List(&viewer.ID, 1, 20, RecipeListFilter{IsInShoppingCart: true})
		require.NoError(t, err)
		require.Len(t, data.Recipes, 1)
		assert.Equal(t, second.ID, data.Recipes[0].ID)
		assert.True(t, data.Recipes[0].IsInShoppingCart)
	})

	t.Run("匿名用户忽略收藏筛选", func(t *testing.T) {
		data, err := svc.List(nil, 1, 20, RecipeListFilter{IsFavorited: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), data.Total)
	})
}

func TestGetRecipeAnnotations(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db)
	relationSvc := newRelationService(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	viewer := createTestUser(t, db, "ana@example.com", "ana")
	tag := createTestTag(t, db, "晚餐", "dinner")
	pork := createTestIngredient(t, db, "五花肉", "克")

	created, err := svc.Create(author.ID, validCreateRequest(tag.ID, pork.ID))
	require.NoError(t, err)

	_, err = relationSvc.AddRecipeRelation(model.RelationFavorite, viewer.ID, created.ID)
	require.NoError(t, err)

	info, err := svc.GetByID(&viewer.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, info.IsFavorited)
	assert.False(t, info.IsInShoppingCart)

	anonymous, err := svc.GetByID(nil, created.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)
}
