package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/config"
	infraES "sabor-go/internal/infra/elasticsearch"
	infraKafka "sabor-go/internal/infra/kafka"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"
	"sabor-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchService struct {
	recipeRepo *repository.RecipeRepository
	recipeSvc  *RecipeService
}

func NewSearchService(recipeRepo *repository.RecipeRepository, recipeSvc *RecipeService) *SearchService {
	return &SearchService{recipeRepo: recipeRepo, recipeSvc: recipeSvc}
}

// SearchRecipes 搜索菜谱（ES 优先，失败则降级到 DB 模糊匹配）
func (s *SearchService) SearchRecipes(viewerID *int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(viewerID, req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(viewerID, req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(viewerID *int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["recipes"]
	if indexName == "" {
		indexName = "recipes"
	}

	query := s.buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	recipeIDs := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		recipeIDs = append(recipeIDs, h.Source.ID)
	}

	total := esResp.Hits.Total.Value
	if len(recipeIDs) == 0 {
		return s.buildSearchData(nil, total, req.Page, req.PageSize), nil
	}

	recipes, err := s.recipeRepo.GetByIDsWithAuthor(recipeIDs)
	if err != nil {
		return nil, err
	}

	// 按 ES 相关性排序输出
	recipeMap := make(map[int64]*model.Recipe, len(recipes))
	for i := range recipes {
		recipeMap[recipes[i].ID] = &recipes[i]
	}
	ordered := make([]model.Recipe, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		if r, ok := recipeMap[id]; ok {
			ordered = append(ordered, *r)
		}
	}

	items, err := s.recipeSvc.annotateRecipes(viewerID, ordered)
	if err != nil {
		return nil, err
	}
	return s.buildSearchDataFromItems(items, total, req.Page, req.PageSize), nil
}

func (s *SearchService) buildESQuery(req *dto.SearchRequest) map[string]interface{} {
	q := strings.TrimSpace(req.Keyword)

	boolQ := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q,
					"fields":   []string{"name^3", "text^1", "author_name^2"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		},
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQ,
		},
		"_source": []string{"id"},
		"from":    (req.Page - 1) * req.PageSize,
		"size":    req.PageSize,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}

func (s *SearchService) searchFromDB(viewerID *int64, req *dto.SearchRequest) (*dto.SearchData, error) {
	skip := (req.Page - 1) * req.PageSize
	recipes, total, err := s.recipeRepo.SearchByText(strings.TrimSpace(req.Keyword), skip, req.PageSize)
	if err != nil {
		return nil, err
	}

	items, err := s.recipeSvc.annotateRecipes(viewerID, recipes)
	if err != nil {
		return nil, err
	}
	return s.buildSearchDataFromItems(items, total, req.Page, req.PageSize), nil
}

func (s *SearchService) buildSearchData(recipes []model.Recipe, total int64, page, pageSize int) *dto.SearchData {
	items, _ := s.recipeSvc.annotateRecipes(nil, recipes)
	return s.buildSearchDataFromItems(items, total, page, pageSize)
}

func (s *SearchService) buildSearchDataFromItems(items []dto.RecipeInfo, total int64, page, pageSize int) *dto.SearchData {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SearchData{
		Recipes:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SyncRecipeToES 同步单个菜谱到 ES 索引
func (s *SearchService) SyncRecipeToES(recipeID int64) error {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return infraES.SyncRecipe(ctx, recipe, recipe.Author.UserName)
}

// DeleteRecipeFromES 从 ES 索引删除菜谱文档
func (s *SearchService) DeleteRecipeFromES(recipeID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return infraES.DeleteRecipe(ctx, recipeID)
}

// HandleRecipeEvent 处理菜谱变更事件（worker 消费 Kafka 后调用）
func (s *SearchService) HandleRecipeEvent(event *infraKafka.RecipeEvent) error {
	switch event.Action {
	case infraKafka.RecipeActionUpsert:
		err := s.SyncRecipeToES(event.RecipeID)
		// 事件落后于删除时菜谱可能已不存在，直接改为删索引
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.DeleteRecipeFromES(event.RecipeID)
		}
		return err
	case infraKafka.RecipeActionDelete:
		return s.DeleteRecipeFromES(event.RecipeID)
	default:
		logger.Warn("unknown recipe event action", zap.String("action", event.Action))
		return nil
	}
}
