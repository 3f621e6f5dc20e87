package service

import (
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientListPrefixSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	createTestIngredient(t, db, "土豆", "克")
	createTestIngredient(t, db, "土豆粉", "克")
	createTestIngredient(t, db, "西红柿", "个")

	data, err := svc.List("土豆", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
	for _, item := range data.Ingredients {
		assert.Contains(t, item.Name, "土豆")
	}

	all, err := svc.List("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}

func TestIngredientCreateUniquePerUnit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(repository.NewIngredientRepository(db))

	_, err := svc.Create(&dto.IngredientCreateRequest{Name: "糖", MeasurementUnit: "克"})
	require.NoError(t, err)

	// 同名同单位重复
	_, err = svc.Create(&dto.IngredientCreateRequest{Name: "糖", MeasurementUnit: "克"})
	assert.ErrorIs(t, err, ErrIngredientExists)

	// 同名不同单位允许
	_, err = svc.Create(&dto.IngredientCreateRequest{Name: "糖", MeasurementUnit: "勺"})
	require.NoError(t, err)
}

func TestTagCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	created, err := svc.Create(&dto.TagCreateRequest{Name: "早餐", Color: "#00FF00", Slug: "breakfast"})
	require.NoError(t, err)

	_, err = svc.Create(&dto.TagCreateRequest{Name: "早餐", Color: "#00FF00", Slug: "breakfast2"})
	assert.ErrorIs(t, err, ErrTagExists)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Slug)

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrTagNotFound)

	tags, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
