package service

import (
	"fmt"
	"hash/crc32"
	"testing"

	"sabor-go/internal/config"
	"sabor-go/internal/model"
	"sabor-go/pkg/logger"
	"sabor-go/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB 创建内存数据库并迁移全部表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	require.NoError(t, logger.Init("error", "console", "stdout", ""))
	config.Set(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Favorite{},
		&model.Cart{},
		&model.Subscription{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string) *model.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Email:     email,
		UserName:  username,
		FirstName: "测试",
		LastName:  "用户",
		Password:  hashed,
		UserRole:  "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *model.Tag {
	t.Helper()

	// 颜色全局唯一，从 slug 派生避免冲突
	color := fmt.Sprintf("#%06X", crc32.ChecksumIEEE([]byte(slug))&0xFFFFFF)
	tag := &model.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *model.Ingredient {
	t.Helper()

	ingredient := &model.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID int64, name string) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "做法描述",
		CookingTime: 30,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func addRecipeIngredient(t *testing.T, db *gorm.DB, recipeID, ingredientID int64, amount int) {
	t.Helper()

	entry := &model.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
	}
	require.NoError(t, db.Create(entry).Error)
}
