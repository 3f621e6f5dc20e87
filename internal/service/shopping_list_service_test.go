package service

import (
	"context"
	"testing"

	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newShoppingListService(db *gorm.DB) *ShoppingListService {
	return NewShoppingListService(repository.NewShoppingListRepository(db), nil)
}

func addToCart(t *testing.T, db *gorm.DB, userID, recipeID int64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Cart{UserID: userID, RecipeID: recipeID}).Error)
}

func TestBuildEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")

	items, err := svc.Build(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "", svc.Render(items))
}

func TestBuildSumsAcrossRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")

	salt := createTestIngredient(t, db, "盐", "克")
	egg := createTestIngredient(t, db, "鸡蛋", "个")

	first := createTestRecipe(t, db, author.ID, "炒鸡蛋")
	addRecipeIngredient(t, db, first.ID, salt.ID, 5)
	addRecipeIngredient(t, db, first.ID, egg.ID, 3)

	second := createTestRecipe(t, db, author.ID, "蛋花汤")
	addRecipeIngredient(t, db, second.ID, salt.ID, 10)

	addToCart(t, db, user.ID, first.ID)
	addToCart(t, db, user.ID, second.ID)

	items, err := svc.Build(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 同名同单位跨菜谱求和：盐 5 + 10 = 15
	assert.Equal(t, "盐", items[0].Name)
	assert.Equal(t, 15, items[0].Total)
	assert.Equal(t, "鸡蛋", items[1].Name)
	assert.Equal(t, 3, items[1].Total)
}

func TestBuildKeepsDifferentUnitsSeparate(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")

	sugarGrams := createTestIngredient(t, db, "糖", "克")
	sugarSpoons := createTestIngredient(t, db, "糖", "勺")

	recipe := createTestRecipe(t, db, author.ID, "甜品")
	addRecipeIngredient(t, db, recipe.ID, sugarGrams.ID, 20)
	addRecipeIngredient(t, db, recipe.ID, sugarSpoons.ID, 2)

	addToCart(t, db, user.ID, recipe.ID)

	items, err := svc.Build(user.ID)
	require.NoError(t, err)
	// 名称相同但单位不同的食材不合并
	require.Len(t, items, 2)
}

func TestBuildIgnoresOtherUsersCarts(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	other := createTestUser(t, db, "luis@example.com", "luis")

	salt := createTestIngredient(t, db, "盐", "克")
	recipe := createTestRecipe(t, db, other.ID, "红烧肉")
	addRecipeIngredient(t, db, recipe.ID, salt.ID, 5)

	addToCart(t, db, other.ID, recipe.ID)

	items, err := svc.Build(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUserIDsWithRecipe(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewShoppingListRepository(db)

	author := createTestUser(t, db, "luis@example.com", "luis")
	ana := createTestUser(t, db, "ana@example.com", "ana")
	carla := createTestUser(t, db, "carla@example.com", "carla")

	recipe := createTestRecipe(t, db, author.ID, "红烧肉")
	other := createTestRecipe(t, db, author.ID, "蛋花汤")

	addToCart(t, db, ana.ID, recipe.ID)
	addToCart(t, db, carla.ID, recipe.ID)
	addToCart(t, db, carla.ID, other.ID)

	// 菜谱变动时需要失效缓存的用户集合
	userIDs, err := repo.UserIDsWithRecipe(recipe.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{ana.ID, carla.ID}, userIDs)

	userIDs, err = repo.UserIDsWithRecipe(9999)
	require.NoError(t, err)
	assert.Empty(t, userIDs)
}

func TestRenderFormat(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	items := []repository.ShoppingListItem{
		{Name: "盐", MeasurementUnit: "克", Total: 15},
		{Name: "鸡蛋", MeasurementUnit: "个", Total: 3},
	}

	assert.Equal(t, "盐 (克) - 15\n鸡蛋 (个) - 3", svc.Render(items))
}

func TestDownloadWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	svc := newShoppingListService(db)

	user := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")

	salt := createTestIngredient(t, db, "盐", "克")
	recipe := createTestRecipe(t, db, author.ID, "红烧肉")
	addRecipeIngredient(t, db, recipe.ID, salt.ID, 5)
	addToCart(t, db, user.ID, recipe.ID)

	text, err := svc.Download(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "盐 (克) - 5", text)
}
