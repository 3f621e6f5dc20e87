package service

import (
	"testing"

	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db), repository.NewRelationRepository(db))
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	viewer := createTestUser(t, db, "ana@example.com", "ana")
	author := createTestUser(t, db, "luis@example.com", "luis")
	require.NoError(t, db.Create(&model.Subscription{FollowerID: viewer.ID, AuthorID: author.ID}).Error)

	info, err := svc.GetProfile(&viewer.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, info.IsSubscribed)

	// 匿名查看时订阅状态为 false
	anonymous, err := svc.GetProfile(nil, author.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)

	_, err = svc.GetProfile(nil, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	viewer := createTestUser(t, db, "ana@example.com", "ana")
	subscribed := createTestUser(t, db, "luis@example.com", "luis")
	createTestUser(t, db, "carla@example.com", "carla")
	require.NoError(t, db.Create(&model.Subscription{FollowerID: viewer.ID, AuthorID: subscribed.ID}).Error)

	data, err := svc.ListUsers(&viewer.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), data.Total)

	for _, user := range data.Users {
		if user.ID == subscribed.ID {
			assert.True(t, user.IsSubscribed)
		} else {
			assert.False(t, user.IsSubscribed)
		}
	}
}
