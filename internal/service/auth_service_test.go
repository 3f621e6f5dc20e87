package service

import (
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(email, username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "测试",
		LastName:  "用户",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	info, err := svc.Register(registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", info.Email)
	assert.Equal(t, "user", info.UserRole)

	data, err := svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "bearer", data.TokenType)
	assert.Equal(t, info.ID, data.User.ID)
}

func TestRegisterDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Register(registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	_, err = svc.Register(registerRequest("ana@example.com", "ana2"))
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Register(registerRequest("ana2@example.com", "ana"))
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLoginFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Register(registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	// 不存在的用户与密码错误返回同一个错误
	_, err = svc.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	info, err := svc.Register(registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	err = svc.ChangePassword(info.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "newpassword123",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(info.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword123",
	}))

	_, err = svc.Login(&dto.LoginRequest{Email: "ana@example.com", Password: "newpassword123"})
	require.NoError(t, err)
}
