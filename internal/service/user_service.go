package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/config"
	infraMinio "sabor-go/internal/infra/minio"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"
	"sabor-go/pkg/utils"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo     *repository.UserRepository
	relationRepo *repository.RelationRepository
}

func NewUserService(userRepo *repository.UserRepository, relationRepo *repository.RelationRepository) *UserService {
	return &UserService{userRepo: userRepo, relationRepo: relationRepo}
}

// GetProfile 获取用户主页信息
// viewerID 为查看者 ID，未登录时传 nil，is_subscribed 返回 false
func (s *UserService) GetProfile(viewerID *int64, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	info := toUserInfo(user)
	if viewerID != nil && *viewerID != userID {
		subscribed, err := s.relationRepo.Exists(model.RelationSubscription, *viewerID, userID)
		if err != nil {
			return nil, err
		}
		info.IsSubscribed = subscribed
	}
	return info, nil
}

// ListUsers 用户列表（分页），附带查看者的订阅状态
func (s *UserService) ListUsers(viewerID *int64, page, pageSize int) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.List(skip, pageSize)
	if err != nil {
		return nil, err
	}

	subscribed := map[int64]bool{}
	if viewerID != nil && len(users) > 0 {
		ids := make([]int64, 0, len(users))
		for i := range users {
			ids = append(ids, users[i].ID)
		}
		subscribed, err = s.relationRepo.BatchCheck(model.RelationSubscription, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		info := toUserInfo(&users[i])
		info.IsSubscribed = subscribed[users[i].ID]
		items = append(items, *info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.UserListData{
		Users:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SetAvatar 设置当前用户头像（base64 图片，存入 MinIO）
func (s *UserService) SetAvatar(userID int64, data string) (*dto.AvatarData, error) {
	contentType, ext, payload, err := utils.DecodeBase64Image(data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectName := fmt.Sprintf("avatars/%d%s", userID, ext)
	if _, err := infraMinio.UploadFile(ctx, infraMinio.RecipeImageBucket, objectName,
		bytes.NewReader(payload), int64(len(payload)), contentType); err != nil {
		return nil, err
	}

	minioCfg := config.GetMinIO()
	url := infraMinio.GetPublicURL(minioCfg.Endpoint, minioCfg.UseSSL, infraMinio.RecipeImageBucket, objectName)

	if err := s.userRepo.UpdateAvatar(userID, &url); err != nil {
		return nil, err
	}
	return &dto.AvatarData{Avatar: url}, nil
}

// RemoveAvatar 清除当前用户头像
func (s *UserService) RemoveAvatar(userID int64) error {
	return s.userRepo.UpdateAvatar(userID, nil)
}
