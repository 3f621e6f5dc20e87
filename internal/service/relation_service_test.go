package service

import (
	"testing"

	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRelationService(db *gorm.DB) *RelationService {
	relationRepo := repository.NewRelationRepository(db)
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	shoppingListSvc := NewShoppingListService(repository.NewShoppingListRepository(db), nil)
	return NewRelationService(relationRepo, userRepo, recipeRepo, shoppingListSvc)
}

func TestAddRecipeRelation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")
	recipe := createTestRecipe(t, db, author.ID, "红烧肉")

	preview, err := svc.AddRecipeRelation(model.RelationFavorite, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, preview.ID)
	assert.Equal(t, "红烧肉", preview.Name)
	assert.Equal(t, 30, preview.CookingTime)

	// 重复收藏不产生第二条记录
	_, err = svc.AddRecipeRelation(model.RelationFavorite, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	var count int64
	require.NoError(t, db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 收藏与购物车互不影响
	_, err = svc.AddRecipeRelation(model.RelationCart, user.ID, recipe.ID)
	require.NoError(t, err)
}

func TestRelationUniqueIndexBackstop(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRelationRepository(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")
	recipe := createTestRecipe(t, db, author.ID, "红烧肉")

	// 绕过服务层存在性检查，模拟并发下两次插入同一关系
	require.NoError(t, repo.Create(model.RelationFavorite, user.ID, recipe.ID))
	err := repo.Create(model.RelationFavorite, user.ID, recipe.ID)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, translateRelationCreateError(err), ErrRelationExists)

	var count int64
	require.NoError(t, db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddRecipeRelationMissingRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.AddRecipeRelation(model.RelationFavorite, user.ID, 9999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestAddRecipeRelationRejectsSubscriptionKind(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.AddRecipeRelation(model.RelationSubscription, user.ID, 1)
	assert.ErrorIs(t, err, ErrUnknownRelation)
}

func TestRemoveRecipeRelation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")
	recipe := createTestRecipe(t, db, author.ID, "酸辣汤")

	// 未收藏时取消收藏报错
	err := svc.RemoveRecipeRelation(model.RelationFavorite, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrRelationMissing)

	_, err = svc.AddRecipeRelation(model.RelationFavorite, user.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveRecipeRelation(model.RelationFavorite, user.ID, recipe.ID))

	// 再次取消仍然报错，操作不是幂等的
	err = svc.RemoveRecipeRelation(model.RelationFavorite, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrRelationMissing)
}

func TestSubscribe(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	follower := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")
	for _, name := range []string{"菜谱一", "菜谱二", "菜谱三"} {
		createTestRecipe(t, db, author.ID, name)
	}

	data, err := svc.Subscribe(follower.ID, author.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, author.ID, data.ID)
	assert.True(t, data.IsSubscribed)
	assert.Equal(t, int64(3), data.RecipesCount)
	// recipes_limit 截断预览条数
	assert.Len(t, data.Recipes, 2)

	_, err = svc.Subscribe(follower.ID, author.ID, 2)
	assert.ErrorIs(t, err, ErrRelationExists)
}

func TestSubscribeSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.Subscribe(user.ID, user.ID, 0)
	assert.ErrorIs(t, err, ErrSelfSubscription)
}

func TestSubscribeMissingAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")

	_, err := svc.Subscribe(user.ID, 9999, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	follower := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")

	err := svc.Unsubscribe(follower.ID, author.ID)
	assert.ErrorIs(t, err, ErrRelationMissing)

	_, err = svc.Subscribe(follower.ID, author.ID, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(follower.ID, author.ID))

	var count int64
	require.NoError(t, db.Model(&model.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListSubscriptions(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelationService(db)

	follower := createTestUser(t, db, "ana@example.com", "ana")
	first := createTestUser(t, db, "luis@example.com", "luis")
	second := createTestUser(t, db, "carla@example.com", "carla")
	createTestRecipe(t, db, first.ID, "菜谱一")

	_, err := svc.Subscribe(follower.ID, first.ID, 0)
	require.NoError(t, err)
	_, err = svc.Subscribe(follower.ID, second.ID, 0)
	require.NoError(t, err)

	data, err := svc.ListSubscriptions(follower.ID, 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
	require.Len(t, data.Authors, 2)

	for _, entry := range data.Authors {
		assert.True(t, entry.IsSubscribed)
	}
}
